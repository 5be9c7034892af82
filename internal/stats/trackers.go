package stats

import (
	"math"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/utils"
)

type MeditationStats struct {
	TodayCompleted     bool    `json:"todayCompleted"`
	TodayMinutes       int     `json:"todayMinutes"`
	WeekMinutes        int     `json:"weekMinutes"`
	TotalSessions      int     `json:"totalSessions"`
	AvgMoodImprovement float64 `json:"avgMoodImprovement"`
	Streak             int     `json:"streak"`
	LongestStreak      int     `json:"longestStreak"`
}

func Meditation(st *models.State, now time.Time) MeditationStats {
	today := utils.DateOf(now)
	out := MeditationStats{
		TotalSessions: len(st.MeditationSessions),
		Streak:        st.MeditationStreak.CurrentStreak,
		LongestStreak: st.MeditationStreak.LongestStreak,
	}
	moodDelta := 0
	for _, s := range st.MeditationSessions {
		if s.Date == today {
			out.TodayCompleted = true
			out.TodayMinutes += s.Duration
		}
		if InTrailingWeek(s.Date, now) {
			out.WeekMinutes += s.Duration
		}
		moodDelta += s.MoodAfter - s.MoodBefore
	}
	if out.TotalSessions > 0 {
		out.AvgMoodImprovement = round1(float64(moodDelta) / float64(out.TotalSessions))
	}
	return out
}

type ReadingStats struct {
	TodayCompleted     bool         `json:"todayCompleted"`
	PagesThisWeek      int          `json:"pagesThisWeek"`
	BooksInProgress    int          `json:"booksInProgress"`
	BooksCompleted     int          `json:"booksCompleted"`
	Streak             int          `json:"streak"`
	LongestStreak      int          `json:"longestStreak"`
	OverallProgress    int          `json:"overallProgress"`
	TotalActiveFolders int          `json:"totalActiveFolders"`
	LastOpenedBook     *models.Book `json:"lastOpenedBook,omitempty"`
}

func Reading(st *models.State, now time.Time) ReadingStats {
	today := utils.DateOf(now)
	out := ReadingStats{
		Streak:             st.ReadingStreak.CurrentStreak,
		LongestStreak:      st.ReadingStreak.LongestStreak,
		TotalActiveFolders: len(st.Folders),
	}
	for _, s := range st.ReadingSessions {
		if s.Date == today {
			out.TodayCompleted = true
		}
		if InTrailingWeek(s.Date, now) {
			out.PagesThisWeek += s.PagesRead
		}
	}

	progress := 0.0
	for i := range st.Books {
		b := &st.Books[i]
		switch b.Status {
		case constants.BookReading:
			out.BooksInProgress++
			progress += b.Progress()
		case constants.BookCompleted:
			out.BooksCompleted++
		}
		if out.LastOpenedBook == nil || b.StartedAt.After(out.LastOpenedBook.StartedAt) {
			book := *b
			out.LastOpenedBook = &book
		}
	}
	if out.BooksInProgress > 0 {
		out.OverallProgress = int(math.Round(progress / float64(out.BooksInProgress) * 100))
	}
	return out
}

type CodingStats struct {
	ProblemsSolvedThisWeek int `json:"problemsSolvedThisWeek"`
	ProjectsCompleted      int `json:"projectsCompleted"`
	SkillsDueForRevision   int `json:"skillsDueForRevision"`
	DebugLogsThisWeek      int `json:"debugLogsThisWeek"`
	Streak                 int `json:"streak"`
	LongestStreak          int `json:"longestStreak"`
}

func Coding(st *models.State, now time.Time) CodingStats {
	today := utils.DateOf(now)
	out := CodingStats{
		Streak:        st.CodingStreak.CurrentStreak,
		LongestStreak: st.CodingStreak.LongestStreak,
	}
	for _, p := range st.DSAProblems {
		if p.Status == constants.ProblemSolved && InTrailingWeek(p.DateSolved, now) {
			out.ProblemsSolvedThisWeek++
		}
	}
	for _, p := range st.CodingProjects {
		if p.Status == constants.ProjectCompleted {
			out.ProjectsCompleted++
		}
	}
	for _, s := range st.SkillMastery {
		if s.NextRevision != "" && s.NextRevision <= today {
			out.SkillsDueForRevision++
		}
	}
	for _, d := range st.DebugLogs {
		if InTrailingWeek(d.Date, now) {
			out.DebugLogsThisWeek++
		}
	}
	return out
}

type Ratio struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Rate      int `json:"rate"`
}

// Tasks summarises the tasks dated today.
func Tasks(st *models.State, now time.Time) Ratio {
	today := utils.DateOf(now)
	var r Ratio
	for _, t := range st.DailyTasks {
		if t.Date != today {
			continue
		}
		r.Total++
		if t.Completed {
			r.Completed++
		}
	}
	r.Rate = CompletionRate(r.Completed, r.Total)
	return r
}

// Goals summarises the goals of the current week.
func Goals(st *models.State, now time.Time) Ratio {
	weekStart := utils.WeekStart(now)
	var r Ratio
	for _, g := range st.WeeklyGoals {
		if g.WeekStart != weekStart {
			continue
		}
		r.Total++
		if g.Completed {
			r.Completed++
		}
	}
	r.Rate = CompletionRate(r.Completed, r.Total)
	return r
}
