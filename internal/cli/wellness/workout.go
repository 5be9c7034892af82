package wellness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
)

// parseExercise reads "Name:WEIGHTxREPS,WEIGHTxREPS". Every parsed set counts as completed.
func parseExercise(s string) (stats.Exercise, error) {
	name, sets, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return stats.Exercise{}, fmt.Errorf("exercise %q: expected NAME:WEIGHTxREPS[,WEIGHTxREPS...]", s)
	}
	ex := stats.Exercise{Name: name}
	for _, raw := range strings.Split(sets, ",") {
		w, r, ok := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
		if !ok {
			return stats.Exercise{}, fmt.Errorf("exercise %q: set %q is not WEIGHTxREPS", name, raw)
		}
		weight, err := strconv.ParseFloat(w, 64)
		if err != nil || weight < 0 {
			return stats.Exercise{}, fmt.Errorf("exercise %q: invalid weight %q", name, w)
		}
		reps, err := strconv.Atoi(r)
		if err != nil || reps <= 0 {
			return stats.Exercise{}, fmt.Errorf("exercise %q: invalid reps %q", name, r)
		}
		ex.Sets = append(ex.Sets, models.ExerciseSet{Weight: weight, Reps: reps, Completed: true})
	}
	return ex, nil
}

type WorkoutLogCmd struct {
	Workout   string   `arg:"" help:"Workout name or ID, e.g. push-day."`
	Exercises []string `short:"e" sep:"none" help:"Exercise as NAME:WEIGHTxREPS,... (repeatable)."`
	Effort    int      `required:"" help:"Effort level, 1-5."`
	Fatigue   string   `enum:"low,moderate,high" default:"low" help:"Fatigue after the session (${enum})."`
	Minutes   int      `help:"Session length in minutes."`
	Date      string   `short:"d" help:"Day of the session. Defaults to today."`
	Notes     string   `short:"n" help:"Session notes."`
}

func (c *WorkoutLogCmd) Run(ctx *cli.Context) error {
	exercises := make([]stats.Exercise, 0, len(c.Exercises))
	for _, raw := range c.Exercises {
		ex, err := parseExercise(raw)
		if err != nil {
			return err
		}
		exercises = append(exercises, ex)
	}

	st, err := ctx.Store()
	if err != nil {
		return err
	}
	date, err := cli.ParseDate(c.Date, st)
	if err != nil {
		return err
	}
	summary, err := st.LogWorkoutSession(ctx.Ctx, models.SessionSummary{
		WorkoutID:     c.Workout,
		Date:          date,
		EffortLevel:   c.Effort,
		FatigueStatus: constants.FatigueStatus(c.Fatigue),
		Duration:      c.Minutes,
		Notes:         c.Notes,
	}, exercises)
	if err != nil {
		return err
	}
	ctx.Printf("Logged %s: %d exercise(s), volume %.0f\n", summary.WorkoutID, summary.ExercisesCompleted, summary.TotalVolume)
	printRecommendation(ctx, st.Recommend(c.Workout))
	return nil
}

func printRecommendation(ctx *cli.Context, next stats.NextSession) {
	ctx.Printf("Next %s: %s", next.WorkoutID, next.Recommendation)
	if next.PercentageChange != 0 {
		ctx.Printf(" (%+d%%)", next.PercentageChange)
	}
	ctx.Println()
	if next.Reason != "" {
		ctx.Printf("  %s\n", next.Reason)
	}
	if next.DeloadRecommended {
		ctx.Println("  Consider a deload week.")
	}
}

type WorkoutNextCmd struct {
	Workout string `arg:"" help:"Workout name or ID."`
}

func (c *WorkoutNextCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	printRecommendation(ctx, st.Recommend(c.Workout))
	return nil
}

type InjuryAddCmd struct {
	BodyPart    string `arg:"" help:"Injured body part."`
	Pain        int    `short:"p" required:"" help:"Pain level, 1 mild to 5 severe."`
	Workout     string `short:"w" help:"Workout the injury affects."`
	Description string `help:"What happened."`
}

func (c *InjuryAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	note, err := st.AddInjury(ctx.Ctx, models.InjuryNote{
		BodyPart:    c.BodyPart,
		PainLevel:   c.Pain,
		WorkoutID:   c.Workout,
		Description: c.Description,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Recorded injury: %s (ID: %s)\n", note.BodyPart, cli.ShortID(note.ID))
	return nil
}

type InjuryResolveCmd struct {
	ID string `arg:"" help:"Injury ID or unique prefix."`
}

func (c *InjuryResolveCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := cli.Resolve(c.ID, cli.IDs(st.State().Workouts.Injuries, func(n models.InjuryNote) string { return n.ID }))
	if err != nil {
		return err
	}
	if err := st.ResolveInjury(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Injury %s marked healed\n", cli.ShortID(id))
	return nil
}
