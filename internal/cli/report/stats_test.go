package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
)

func TestStats_Dashboard(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	task, err := st.AddTask(ctx.Ctx, "Stretch", constants.TaskPhysical, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.ToggleTask(ctx.Ctx, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := st.AddMeditationSession(ctx.Ctx, models.MeditationSession{
		Duration: 10, Type: constants.MeditationGuided, MoodBefore: 3, MoodAfter: 4,
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&StatsCmd{System: "dashboard"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Life score: 50/100", "Tasks today:  1/1", "Meditation:   ✓ today, 10 min this week", "Streaks:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("dashboard missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := (&StatsCmd{System: "dashboard", JSON: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	var d stats.DashboardStats
	if err := json.Unmarshal(out.Bytes(), &d); err != nil {
		t.Fatalf("dashboard JSON: %v\n%s", err, out.String())
	}
	if d.LifeScore != 50 || d.Tasks.Completed != 1 || !d.Meditation.TodayCompleted {
		t.Errorf("dashboard = %+v", d)
	}
}

func TestStats_Systems(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)

	tests := []struct {
		system string
		want   string
	}{
		{"meditation", "Sessions: 0"},
		{"reading", "Pages this week: 0"},
		{"coding", "Problems solved this week: 0"},
		{"tasks", "0/0 completed (0%)"},
		{"goals", "0/0 completed"},
		{"networking", "Connections: 0"},
		{"branding", "Content: 0 idea"},
	}
	for _, tt := range tests {
		t.Run(tt.system, func(t *testing.T) {
			out.Reset()
			if err := (&StatsCmd{System: tt.system}).Run(ctx); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.want)
			}
		})
	}
}
