// Package tui is the interactive dashboard for today's tasks, notes and streaks.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
	"github.com/julianstephens/lifetrack/internal/tui/components/dashboard"
	"github.com/julianstephens/lifetrack/internal/tui/components/notes"
	"github.com/julianstephens/lifetrack/internal/tui/components/tasks"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateTasks
	StateNotes
	StateAddTask
	StateAddNote
	StateConfirmDelete
)

var tabTitles = []string{"Dashboard", "Tasks", "Notes"}

const notesShown = 50

type TaskFormModel struct {
	Title    string
	Category constants.TaskCategory
}

type NoteFormModel struct {
	Content      string
	LinkedSystem constants.LinkedSystem
	Mood         int
}

// stateChangedMsg is sent when the store commits or reloads.
type stateChangedMsg struct{}

type Model struct {
	ctx           context.Context
	store         *store.Store
	changes       chan struct{}
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	dashboard     dashboard.Model
	taskList      tasks.Model
	noteList      notes.Model
	form          *huh.Form
	taskForm      *TaskFormModel
	noteForm      *NoteFormModel
	pendingDelete string
	deleteLabel   string
	statusMsg     string
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx context.Context, st *store.Store) Model {
	return Model{
		ctx:       ctx,
		store:     st,
		changes:   make(chan struct{}, 1),
		state:     StateDashboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		dashboard: dashboard.New(st.DashboardStats()),
		taskList:  tasks.New(st.TodayTasks(), 0, 0),
		noteList:  notes.New(st.Notes(notesShown), 0, 0),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, st *store.Store) error {
	m := NewModel(ctx, st)
	unsubscribe := st.Subscribe(func(models.State) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) refresh() {
	m.dashboard.SetStats(m.store.DashboardStats())
	m.taskList.SetTasks(m.store.TodayTasks())
	m.noteList.SetNotes(m.store.Notes(notesShown))
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateConfirmDelete {
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dashboard.Init(), m.waitForChange())
}
