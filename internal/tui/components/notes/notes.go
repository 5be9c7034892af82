package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetrack/internal/models"
)

type AddNoteMsg struct{}

type DeleteNoteMsg struct {
	ID string
}

type Item struct {
	Note models.LifeNote
}

func (i Item) Title() string {
	first, _, _ := strings.Cut(i.Note.Content, "\n")
	return first
}

func (i Item) Description() string {
	desc := i.Note.Date
	if i.Note.LinkedSystem != "" {
		desc += " · " + string(i.Note.LinkedSystem)
	}
	if i.Note.Mood > 0 {
		desc += fmt.Sprintf(" · mood %d/5", i.Note.Mood)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Note.Content }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
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

func New(notes []models.LifeNote, width, height int) Model {
	l := list.New(items(notes), list.NewDefaultDelegate(), width, height)
	l.Title = "Notes"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(notes []models.LifeNote) []list.Item {
	out := make([]list.Item, len(notes))
	for i, n := range notes {
		out[i] = Item{Note: n}
	}
	return out
}

func (m *Model) SetNotes(notes []models.LifeNote) {
	m.list.SetItems(items(notes))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddNoteMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteNoteMsg{ID: i.Note.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No notes yet.\n  Press 'a' to write one."
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
