package wellness

import (
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/looks"
)

func TestMeditation(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&MeditateLogCmd{Minutes: 15, Type: "breathing", Before: 2, After: 4}).Run(ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	if !strings.Contains(out.String(), "Streak: 1 day(s)") {
		t.Errorf("log output = %q", out.String())
	}
	if err := (&MeditateLogCmd{Minutes: 0, Type: "guided", Before: 3, After: 3}).Run(ctx); err == nil {
		t.Error("expected error for zero-minute session")
	}

	out.Reset()
	if err := (&MeditateListCmd{Limit: 10}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "mood 2 -> 4") || !strings.Contains(out.String(), "+2.0") {
		t.Errorf("list output = %q", out.String())
	}

	id := st.State().MeditationSessions[0].ID
	if err := (&MeditateDeleteCmd{ID: id[:8]}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	out.Reset()
	if err := (&MeditateListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No meditation sessions found") {
		t.Errorf("list after delete = %q", out.String())
	}
}

func TestParseExercise(t *testing.T) {
	tests := []struct {
		in      string
		sets    int
		volume  float64
		wantErr bool
	}{
		{"Squat:100x5,100x5", 2, 1000, false},
		{" Bench : 60x8 ", 1, 480, false},
		{"Pullup:0x10", 1, 0, false},
		{"Squat", 0, 0, true},
		{":100x5", 0, 0, true},
		{"Squat:100", 0, 0, true},
		{"Squat:abcx5", 0, 0, true},
		{"Squat:100x0", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ex, err := parseExercise(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExercise(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(ex.Sets) != tt.sets {
				t.Errorf("sets = %d, want %d", len(ex.Sets), tt.sets)
			}
			var vol float64
			for _, s := range ex.Sets {
				vol += s.Weight * float64(s.Reps)
			}
			if vol != tt.volume {
				t.Errorf("volume = %v, want %v", vol, tt.volume)
			}
		})
	}
}

func TestWorkout(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)

	cmd := &WorkoutLogCmd{
		Workout:   "push-day",
		Exercises: []string{"Bench:60x8,60x8", "Dips:0x12"},
		Effort:    3,
		Fatigue:   "low",
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	summaries := st.State().Workouts.Summaries
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	if summaries[0].TotalVolume != 960 || summaries[0].ExercisesCompleted != 2 {
		t.Errorf("summary = %+v", summaries[0])
	}
	if !strings.Contains(out.String(), "Next push-day:") {
		t.Errorf("log output = %q", out.String())
	}

	bad := &WorkoutLogCmd{Workout: "push-day", Exercises: []string{"Bench"}, Effort: 3, Fatigue: "low"}
	if err := bad.Run(ctx); err == nil {
		t.Error("expected error for malformed exercise")
	}
	if err := (&WorkoutLogCmd{Workout: "push-day", Effort: 9, Fatigue: "low"}).Run(ctx); err == nil {
		t.Error("expected error for effort out of range")
	}

	out.Reset()
	if err := (&WorkoutNextCmd{Workout: "push-day"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Next push-day:") {
		t.Errorf("next output = %q", out.String())
	}
}

func TestInjury(t *testing.T) {
	ctx, _ := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&InjuryAddCmd{BodyPart: "knee", Pain: 6}).Run(ctx); err == nil {
		t.Error("expected error for pain level 6")
	}
	if err := (&InjuryAddCmd{BodyPart: "knee", Pain: 2, Workout: "leg-day"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	injuries := st.State().Workouts.Injuries
	if len(injuries) != 1 || !injuries[0].IsActive {
		t.Fatalf("injuries = %+v", injuries)
	}
	if err := (&InjuryResolveCmd{ID: injuries[0].ID[:8]}).Run(ctx); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if st.State().Workouts.Injuries[0].IsActive {
		t.Error("injury should be resolved")
	}
	if err := (&InjuryResolveCmd{ID: "nope"}).Run(ctx); err == nil {
		t.Error("expected error for unknown injury")
	}
}

func TestLooks(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&LooksShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Streak: 1 day(s)") || !strings.Contains(out.String(), "Today's habits:") {
		t.Errorf("show output = %q", out.String())
	}

	lesson := looks.Pillars[0].Lessons[0]
	if err := (&LooksLessonCmd{ID: lesson.ID}).Run(ctx); err != nil {
		t.Fatalf("lesson failed: %v", err)
	}
	out.Reset()
	if err := (&LooksLessonCmd{ID: lesson.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "already completed") {
		t.Errorf("repeat lesson output = %q", out.String())
	}
	if got := st.Looks().TotalXP; got != looks.LessonXP {
		t.Errorf("TotalXP = %d, want %d", got, looks.LessonXP)
	}
	if err := (&LooksLessonCmd{ID: "zz"}).Run(ctx); err == nil {
		t.Error("expected error for unknown lesson")
	}

	habit := looks.DailyHabits[0].ID
	if err := (&LooksHabitCmd{ID: habit}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !looks.TodayHabits(ptr(st.Looks()), st.Now())[habit] {
		t.Error("habit should be done")
	}
	if err := (&LooksHabitCmd{ID: "flying"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func ptr[T any](v T) *T { return &v }
