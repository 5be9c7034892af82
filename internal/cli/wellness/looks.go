package wellness

import (
	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/looks"
)

// LooksShowCmd checks in for today and prints course progress.
type LooksShowCmd struct{}

func (c *LooksShowCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	p, err := st.LooksCheckIn(ctx.Ctx)
	if err != nil {
		return err
	}

	ctx.Printf("Streak: %d day(s)  XP: %d  Overall: %d%%\n", p.Streak, p.TotalXP, looks.TotalProgress(&p))
	for _, pillar := range looks.Pillars {
		pct, _ := looks.PillarProgress(&p, pillar.ID)
		ctx.Printf("  %-28s %3d%%\n", pillar.Title, pct)
	}

	today := looks.TodayHabits(&p, st.Now())
	ctx.Println("\nToday's habits:")
	for _, h := range looks.DailyHabits {
		mark := " "
		if today[h.ID] {
			mark = "x"
		}
		ctx.Printf("  [%s] %-14s %s\n", mark, h.ID, h.Label)
	}
	if len(p.Badges) > 0 {
		ctx.Printf("\nBadges: %v\n", p.Badges)
	}
	return nil
}

type LooksLessonCmd struct {
	ID string `arg:"" help:"Lesson ID, e.g. d1."`
}

func (c *LooksLessonCmd) Run(ctx *cli.Context) error {
	lesson, pillar, ok := looks.FindLesson(c.ID)
	if !ok {
		return &looks.UnknownError{Kind: "lesson", ID: c.ID}
	}
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	added, err := st.CompleteLesson(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	if !added {
		ctx.Printf("%q was already completed\n", lesson.Title)
		return nil
	}
	ctx.Printf("✓ Completed %q (%s) +%d XP\n", lesson.Title, pillar.Title, looks.LessonXP)
	return nil
}

type LooksHabitCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *LooksHabitCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	done, err := st.ToggleHabit(ctx.Ctx, c.ID)
	if err != nil {
		return err
	}
	if done {
		ctx.Printf("✓ %s done for today\n", c.ID)
	} else {
		ctx.Printf("%s unchecked\n", c.ID)
	}
	return nil
}
