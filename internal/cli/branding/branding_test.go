package branding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

// withOpenAI points the context's LLM config at a fake chat-completions endpoint.
func withOpenAI(t *testing.T, ctx *cli.Context, reply string) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	ctx.Config.OpenAIKey = "sk-test"
	ctx.Config.LLMProvider = constants.ProviderOpenAI
	ctx.Config.LLMBaseURL = srv.URL
	return &calls
}

func TestContentLifecycle(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&ThemeAddCmd{Text: "Go performance"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&PlatformAddCmd{Name: "LinkedIn", Frequency: "3x/week"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	b := st.State().Branding
	add := &ContentAddCmd{
		Title:     "Profiling a hot loop",
		Intent:    "Teaching",
		Path:      "Newsletter",
		Platforms: []string{b.Platforms[0].ID[:8]},
		Pillar:    b.Positioning.CoreThemes[0].ID[:8],
	}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	item := st.State().Branding.ContentItems[0]
	if item.Status != constants.ContentIdea || len(item.PlatformIDs) != 1 || item.PillarID == "" {
		t.Errorf("item = %+v", item)
	}

	if err := (&ContentStatusCmd{ID: item.ID[:8], Status: "draft"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&ContentListCmd{Status: "draft"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Profiling a hot loop") {
		t.Errorf("draft list = %q", out.String())
	}

	out.Reset()
	if err := (&OverviewCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 draft") || !strings.Contains(out.String(), "Go performance") {
		t.Errorf("overview = %q", out.String())
	}

	if err := (&ContentDeleteCmd{ID: item.ID}).Run(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestContentAnalyze(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)
	calls := withOpenAI(t, ctx, "SECTION A - Positioning\nStrong hook.")

	if err := (&ContentAddCmd{Title: "Why I left ORMs", Intent: "Authority", Path: "None"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	id := st.State().Branding.ContentItems[0].ID

	out.Reset()
	if err := (&ContentAnalyzeCmd{ID: id[:8], Raw: true}).Run(ctx); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("LLM calls = %d, want 1", calls.Load())
	}
	if !strings.Contains(out.String(), "Strong hook.") {
		t.Errorf("analyze output = %q", out.String())
	}
	stored, err := st.ContentItem(id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stored.Analysis, "Strong hook.") {
		t.Errorf("stored analysis = %q", stored.Analysis)
	}

	out.Reset()
	if err := (&ContentShowCmd{ID: id, Raw: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Strong hook.") {
		t.Errorf("show output = %q", out.String())
	}
}

func TestContentAnalyze_NoKey(t *testing.T) {
	ctx, _ := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)
	ctx.Config.OpenAIKey = ""
	ctx.Config.GeminiKey = ""
	item, err := st.AddContentItem(ctx.Ctx, models.BrandingContentItem{Title: "untested", Intent: constants.IntentTrust})
	if err != nil {
		t.Fatal(err)
	}
	if err := (&ContentAnalyzeCmd{ID: item.ID, Raw: true}).Run(ctx); err == nil {
		t.Error("expected error without an API key")
	}
}

func TestContentCompare(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	withOpenAI(t, ctx, "Theirs is punchier.")

	theirs := filepath.Join(t.TempDir(), "theirs.txt")
	if err := os.WriteFile(theirs, []byte("Short post."), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := (&ContentCompareCmd{Mine: "A long post.", Theirs: "@" + theirs, Raw: true}).Run(ctx); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out.String(), "Theirs is punchier.") {
		t.Errorf("compare output = %q", out.String())
	}
	if err := (&ContentCompareCmd{Mine: "x", Theirs: "@" + filepath.Join(t.TempDir(), "missing")}).Run(ctx); err == nil {
		t.Error("expected error for missing file")
	}
	if err := (&ContentCompareCmd{Mine: " ", Theirs: "y", Raw: true}).Run(ctx); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestPositioning(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)

	known := "pragmatic Go"
	cmd := &PositioningCmd{KnownFor: &known, Anti: []string{"hype"}, Segments: []string{"backend devs"}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}
	b := st.State().Branding
	if b.Positioning.KnownFor != known || len(b.Positioning.AntiThemes) != 1 || len(b.AudienceIntelligence.TopSegments) != 1 {
		t.Errorf("branding = %+v", b)
	}
	if !strings.Contains(out.String(), "Known for: pragmatic Go") || !strings.Contains(out.String(), "Intent:    (none)") {
		t.Errorf("output = %q", out.String())
	}

	if err := (&ScoreCmd{Voice: 8, Rhythm: 6, Repetition: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ScoreCmd{Voice: 11, Rhythm: 6, Repetition: 7}).Run(ctx); err == nil {
		t.Error("expected error for score 11")
	}
	if st.BrandingStats().AvgConsistency != 7 {
		t.Errorf("avg consistency = %v, want 7", st.BrandingStats().AvgConsistency)
	}
}
