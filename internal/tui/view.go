package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.dashboard.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateNotes:
		content = docStyle.Render(m.noteList.View())
	case StateAddTask, StateAddNote:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	current := m.state
	if current > StateNotes {
		current = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if current == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return tabBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete "+m.deleteLabel+"?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
