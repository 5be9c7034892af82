package tasks

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetrack/internal/models"
)

type AddTaskMsg struct{}

type ToggleTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID    string
	Title string
}

type Item struct {
	Task models.DailyTask
}

func (i Item) Title() string {
	if i.Task.Completed {
		return "✓ " + i.Task.Title
	}
	return "○ " + i.Task.Title
}

func (i Item) Description() string { return string(i.Task.Category) }

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.DailyTask, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(tasks []models.DailyTask) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

func (m *Model) SetTasks(tasks []models.DailyTask) {
	m.list.SetItems(items(tasks))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: i.Task.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Task.ID, Title: i.Task.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks for today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list's filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
