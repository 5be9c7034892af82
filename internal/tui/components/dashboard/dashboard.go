package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetrack/internal/stats"
)

var (
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(24).
			Align(lipgloss.Center)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(26)

	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	Stats  stats.DashboardStats
	Time   time.Time
	width  int
	height int
}

func New(s stats.DashboardStats) Model {
	return Model{Stats: s, Time: time.Now()}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetStats(s stats.DashboardStats) {
	m.Stats = s
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(TickMsg); ok {
		m.Time = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

func check(done bool) string {
	if done {
		return doneStyle.Render("✓ done today")
	}
	return mutedStyle.Render("○ not yet today")
}

func (m Model) View() string {
	s := m.Stats
	score := scoreStyle.Render(fmt.Sprintf("Life Score\n%d", s.LifeScore))

	header := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render(m.Time.Format("Monday, January 2")),
		fmt.Sprintf("Tasks %d/%d (%d%%)", s.Tasks.Completed, s.Tasks.Total, s.Tasks.Rate),
		fmt.Sprintf("Weekly goals %d/%d", s.WeeklyGoals.Completed, s.WeeklyGoals.Total),
	)
	if s.DailyFocus != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header, focusStyle.Render("Focus: "+s.DailyFocus))
	}

	meditation := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("Meditation"),
		check(s.Meditation.TodayCompleted),
		fmt.Sprintf("%d min this week", s.Meditation.WeekMinutes),
		fmt.Sprintf("streak %d (best %d)", s.Meditation.Streak, s.Meditation.LongestStreak),
	}, "\n"))
	reading := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("Reading"),
		check(s.Reading.TodayCompleted),
		fmt.Sprintf("%d pages this week", s.Reading.PagesThisWeek),
		fmt.Sprintf("streak %d (best %d)", s.Reading.Streak, s.Reading.LongestStreak),
	}, "\n"))
	coding := cardStyle.Render(strings.Join([]string{
		headingStyle.Render("Coding"),
		fmt.Sprintf("%d problems this week", s.Coding.ProblemsSolvedThisWeek),
		fmt.Sprintf("%d skills due", s.Coding.SkillsDueForRevision),
		fmt.Sprintf("streak %d (best %d)", s.Coding.Streak, s.Coding.LongestStreak),
	}, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, score, "  ", header),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, meditation, reading, coding),
	)
}
