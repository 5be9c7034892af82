// Package report prints the dashboard and per-system statistics.
package report

import (
	"encoding/json"
	"sort"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/stats"
	"github.com/julianstephens/lifetrack/internal/store"
)

// StatsCmd prints one system's statistics, or the dashboard when no system is given.
type StatsCmd struct {
	System string `arg:"" optional:"" enum:",dashboard,meditation,reading,coding,tasks,goals,networking,branding" default:"dashboard" help:"System to report (${enum})."`
	JSON   bool   `help:"Print machine-readable JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	v := collect(st, c.System)
	if c.JSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}
	switch v := v.(type) {
	case stats.DashboardStats:
		printDashboard(ctx, v)
	case stats.MeditationStats:
		printMeditation(ctx, v)
	case stats.ReadingStats:
		printReading(ctx, v)
	case stats.CodingStats:
		printCoding(ctx, v)
	case stats.Ratio:
		ctx.Printf("%d/%d completed (%d%%)\n", v.Completed, v.Total, v.Rate)
	case stats.NetworkingStats:
		printNetworking(ctx, v)
	case stats.BrandingStats:
		ctx.Printf("Content: %d idea, %d draft, %d published, %d analyzed\n",
			v.ByStatus[constants.ContentIdea], v.ByStatus[constants.ContentDraft], v.ByStatus[constants.ContentPublished], v.Analyzed)
		ctx.Printf("Average consistency: %.1f\n", v.AvgConsistency)
	}
	return nil
}

func collect(st *store.Store, system string) any {
	switch system {
	case "meditation":
		return st.MeditationStats()
	case "reading":
		return st.ReadingStats()
	case "coding":
		return st.CodingStats()
	case "tasks":
		return st.TaskStats()
	case "goals":
		return st.GoalStats()
	case "networking":
		return st.NetworkingStats()
	case "branding":
		return st.BrandingStats()
	default:
		return st.DashboardStats()
	}
}

func printDashboard(ctx *cli.Context, d stats.DashboardStats) {
	ctx.Printf("Life score: %d/100\n", d.LifeScore)
	if d.DailyFocus != "" {
		ctx.Printf("Focus: %s\n", d.DailyFocus)
	}
	ctx.Printf("Tasks today:  %d/%d\n", d.Tasks.Completed, d.Tasks.Total)
	ctx.Printf("Weekly goals: %d/%d\n", d.WeeklyGoals.Completed, d.WeeklyGoals.Total)
	ctx.Printf("Meditation:   %s, %d min this week\n", doneToday(d.Meditation.TodayCompleted), d.Meditation.WeekMinutes)
	ctx.Printf("Reading:      %s, %d pages this week\n", doneToday(d.Reading.TodayCompleted), d.Reading.PagesThisWeek)
	ctx.Printf("Coding:       %d solved this week\n", d.Coding.ProblemsSolvedThisWeek)
	if len(d.ActiveStreaks) > 0 {
		ctx.Println("Streaks:")
		for _, s := range d.ActiveStreaks {
			ctx.Printf("  %-11s %d day(s) (best %d)\n", s.SystemID, s.Current, s.Longest)
		}
	}
}

func doneToday(b bool) string {
	if b {
		return "✓ today"
	}
	return "not yet today"
}

func printMeditation(ctx *cli.Context, m stats.MeditationStats) {
	ctx.Printf("Today: %d min\n", m.TodayMinutes)
	ctx.Printf("This week: %d min\n", m.WeekMinutes)
	ctx.Printf("Sessions: %d, average mood change %+.1f\n", m.TotalSessions, m.AvgMoodImprovement)
	ctx.Printf("Streak: %d (best %d)\n", m.Streak, m.LongestStreak)
}

func printReading(ctx *cli.Context, r stats.ReadingStats) {
	ctx.Printf("Pages this week: %d\n", r.PagesThisWeek)
	ctx.Printf("Books: %d in progress, %d completed, %d%% overall\n", r.BooksInProgress, r.BooksCompleted, r.OverallProgress)
	ctx.Printf("Active folders: %d\n", r.TotalActiveFolders)
	ctx.Printf("Streak: %d (best %d)\n", r.Streak, r.LongestStreak)
	if r.LastOpenedBook != nil {
		ctx.Printf("Last opened: %s, page %d/%d\n", r.LastOpenedBook.Title, r.LastOpenedBook.CurrentPage, r.LastOpenedBook.TotalPages)
	}
}

func printCoding(ctx *cli.Context, c stats.CodingStats) {
	ctx.Printf("Problems solved this week: %d\n", c.ProblemsSolvedThisWeek)
	ctx.Printf("Debug logs this week: %d\n", c.DebugLogsThisWeek)
	ctx.Printf("Projects completed: %d\n", c.ProjectsCompleted)
	ctx.Printf("Skills due for revision: %d\n", c.SkillsDueForRevision)
	ctx.Printf("Streak: %d (best %d)\n", c.Streak, c.LongestStreak)
}

func printNetworking(ctx *cli.Context, n stats.NetworkingStats) {
	ctx.Printf("Connections: %d, average score %.1f\n", n.Total, n.AvgRelationshipScore)
	statuses := make([]string, 0, len(n.ByStatus))
	for s := range n.ByStatus {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		ctx.Printf("  %-10s %d\n", s, n.ByStatus[constants.ConnectionStatus(s)])
	}
	ctx.Printf("Outcomes: %d\n", n.Outcomes)
	ctx.Printf("Need follow-up: %d\n", len(n.NeedsFollowUp))
}
