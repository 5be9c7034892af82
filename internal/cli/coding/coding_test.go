package coding

import (
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
)

func TestLearningWeeks(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&WeekAddCmd{Path: "fs", Number: 1, Topics: []string{"HTTP", "SQL"}}).Run(ctx); err != nil {
		t.Fatalf("add week failed: %v", err)
	}
	if err := (&WeekAddCmd{Path: "nope", Number: 1}).Run(ctx); err == nil {
		t.Error("expected error for unknown path")
	}
	if err := (&WeekAddCmd{Path: "fs", Number: 0}).Run(ctx); err == nil {
		t.Error("expected error for week 0")
	}

	week := st.State().CodingLearningPaths[0].Weeks[0]
	if err := (&WeekStatusCmd{Path: "fs", ID: week.ID[:8], Status: "completed"}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if got := st.State().CodingLearningPaths[0].Weeks[0].Status; got != constants.WeekCompleted {
		t.Errorf("status = %q", got)
	}

	out.Reset()
	if err := (&WeekListCmd{Path: "fs"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "HTTP, SQL") || strings.Contains(out.String(), "DevOps") {
		t.Errorf("list output = %q", out.String())
	}

	if err := (&WeekDeleteCmd{Path: "fs", ID: week.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n := len(st.State().CodingLearningPaths[0].Weeks); n != 0 {
		t.Errorf("weeks after delete = %d", n)
	}
}

func TestProblems(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)

	add := &ProblemAddCmd{Title: "Two Sum", Difficulty: "easy", Category: "DSA", Status: "pending"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := st.State().DSAProblems[0].ID
	if err := (&ProblemStatusCmd{ID: id[:6], Status: "solved", Learnings: "hash maps"}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	p := st.State().DSAProblems[0]
	if p.Status != constants.ProblemSolved || p.DateSolved == "" || p.Learnings != "hash maps" {
		t.Errorf("problem = %+v", p)
	}
	if st.CodingStats().Streak != 1 {
		t.Errorf("coding streak = %d, want 1", st.CodingStats().Streak)
	}

	out.Reset()
	if err := (&ProblemListCmd{Status: "pending"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No problems found") {
		t.Errorf("pending list = %q", out.String())
	}
	out.Reset()
	if err := (&ProblemListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Two Sum") || !strings.Contains(out.String(), "1 solved this week") {
		t.Errorf("list = %q", out.String())
	}

	if err := (&ProblemDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ProblemDeleteCmd{ID: id}).Run(ctx); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestResources(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&CSNoteAddCmd{Title: "CAP theorem", Category: "System Design", Tags: []string{"dist"}}).Run(ctx); err != nil {
		t.Fatalf("note add failed: %v", err)
	}
	if err := (&VideoAddCmd{Title: "Raft", URL: "https://www.youtube.com/watch?v=abc"}).Run(ctx); err != nil {
		t.Fatalf("video add failed: %v", err)
	}
	if got := st.State().VideoResources[0].Domain; got != "youtube.com" {
		t.Errorf("video domain = %q", got)
	}
	if err := (&DebugAddCmd{Issue: "deadlock in worker", Solution: "release lock before send"}).Run(ctx); err != nil {
		t.Fatalf("debug add failed: %v", err)
	}

	out.Reset()
	if err := (&CSNoteListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&VideoListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&DebugListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"CAP theorem", "#dist", "youtube.com", "-> release lock before send"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q: %q", want, out.String())
		}
	}

	s := st.State()
	if err := (&CSNoteDeleteCmd{ID: s.CSNotes[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&VideoDeleteCmd{ID: s.VideoResources[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&DebugDeleteCmd{ID: s.DebugLogs[0].ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	s = st.State()
	if len(s.CSNotes)+len(s.VideoResources)+len(s.DebugLogs) != 0 {
		t.Error("resources should all be deleted")
	}
}

func TestProjects(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&ProjectAddCmd{Title: "lifetrack", Stack: []string{"Go", "SQLite"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	id := st.State().CodingProjects[0].ID
	if err := (&ProjectStatusCmd{ID: id[:8], Status: "completed", Outcome: []string{"shipped"}}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	p := st.State().CodingProjects[0]
	if p.Status != constants.ProjectCompleted || len(p.Outcomes) != 1 {
		t.Errorf("project = %+v", p)
	}
	out.Reset()
	if err := (&ProjectListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[Go, SQLite]") {
		t.Errorf("list = %q", out.String())
	}
	if err := (&ProjectDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestSkills(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&SkillAddCmd{Name: "Concurrency", Depth: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&SkillAddCmd{Name: "Bad", Depth: 9}).Run(ctx); err == nil {
		t.Error("expected error for depth 9")
	}
	id := st.State().SkillMastery[0].ID

	out.Reset()
	if err := (&SkillListCmd{Due: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No skills due") {
		t.Errorf("due list = %q", out.String())
	}

	if err := (&SkillRateCmd{ID: id[:8], Readiness: "can-explain"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := st.State().SkillMastery[0].Readiness; got != constants.ReadinessCanExplain {
		t.Errorf("readiness = %q", got)
	}

	if err := (&SkillErrorCmd{ID: id, Description: "forgets to close channels"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	pattern := st.State().SkillMastery[0].ErrorPatterns[0].ID
	if err := (&SkillErrorCmd{ID: id, Pattern: pattern[:8]}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if f := st.State().SkillMastery[0].ErrorPatterns[0].Frequency; f != 2 {
		t.Errorf("frequency = %d, want 2", f)
	}
	if err := (&SkillErrorCmd{ID: id}).Run(ctx); err == nil {
		t.Error("expected error for empty description")
	}

	if err := (&SkillReviseCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.State().SkillMastery[0].RevisionHistory); n != 1 {
		t.Errorf("revision history = %d, want 1", n)
	}
	if err := (&SkillDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
}
