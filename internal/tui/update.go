package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/tui/components/dashboard"
	"github.com/julianstephens/lifetrack/internal/tui/components/notes"
	"github.com/julianstephens/lifetrack/internal/tui/components/tasks"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddTask || m.state == StateAddNote {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		h := msg.Height - 6
		m.dashboard.SetSize(msg.Width, h)
		m.taskList.SetSize(msg.Width-4, h)
		m.noteList.SetSize(msg.Width-4, h)
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case dashboard.TickMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case tasks.AddTaskMsg:
		m.taskForm = &TaskFormModel{Category: constants.TaskPersonal}
		m.form = newTaskForm(m.taskForm)
		m.previousState, m.state = m.state, StateAddTask
		return m, m.form.Init()

	case tasks.ToggleTaskMsg:
		done, err := m.store.ToggleTask(m.ctx, msg.ID)
		m.report(err, "")
		if err == nil && done {
			m.statusMsg = "Task completed"
		}
		m.refresh()
		return m, nil

	case tasks.DeleteTaskMsg:
		m.pendingDelete, m.deleteLabel = msg.ID, fmt.Sprintf("task %q", msg.Title)
		m.previousState, m.state = m.state, StateConfirmDelete
		return m, nil

	case notes.AddNoteMsg:
		m.noteForm = &NoteFormModel{}
		m.form = newNoteForm(m.noteForm)
		m.previousState, m.state = m.state, StateAddNote
		return m, m.form.Init()

	case notes.DeleteNoteMsg:
		m.pendingDelete, m.deleteLabel = msg.ID, "this note"
		m.previousState, m.state = m.state, StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		if m.state == StateConfirmDelete {
			return m.updateConfirm(msg)
		}
		switch {
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit) && !m.filtering():
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab) && !m.filtering():
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab) && !m.filtering():
			m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
			return m, nil
		case key.Matches(msg, m.keys.Help) && !m.filtering():
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		m.statusMsg = ""
	}

	var cmd tea.Cmd
	switch m.state {
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	case StateNotes:
		m.noteList, cmd = m.noteList.Update(msg)
	}
	return m, cmd
}

// filtering reports whether the visible list is capturing keys for its filter.
func (m Model) filtering() bool {
	switch m.state {
	case StateTasks:
		return m.taskList.Filtering()
	case StateNotes:
		return m.noteList.Filtering()
	}
	return false
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		var err error
		if m.previousState == StateNotes {
			err = m.store.DeleteNote(m.ctx, m.pendingDelete)
		} else {
			err = m.store.DeleteTask(m.ctx, m.pendingDelete)
		}
		m.report(err, "Deleted "+m.deleteLabel)
		m.refresh()
		fallthrough
	case key.Matches(msg, m.keys.Cancel):
		m.pendingDelete, m.deleteLabel = "", ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == StateAddTask {
			_, err = m.store.AddTask(m.ctx, m.taskForm.Title, m.taskForm.Category, "")
		} else {
			_, err = m.store.AddNote(m.ctx, models.LifeNote{
				Content:      m.noteForm.Content,
				LinkedSystem: m.noteForm.LinkedSystem,
				Mood:         m.noteForm.Mood,
			})
		}
		m.report(err, "Saved")
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, tea.Batch(cmds...)
}

// report puts the outcome of a store call in the status line.
func (m *Model) report(err error, ok string) {
	if err != nil {
		logger.Warn("TUI action failed", "error", err)
		m.statusMsg = "Error: " + err.Error()
		return
	}
	m.statusMsg = ok
}
