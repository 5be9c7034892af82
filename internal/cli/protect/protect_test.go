package protect

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/lifetrack/internal/cli/clitest"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/protection"
)

func TestProtectionFlow(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&EnableCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := st.Protection().ProtectionLevel; got != constants.ProtectionLight {
		t.Errorf("level after enable = %q, want light", got)
	}
	if err := (&BlockCmd{Kind: "domain", Value: "Example.org"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&CheckCmd{Input: "https://www.example.org/page"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Blocked") || !strings.Contains(out.String(), "example.org") {
		t.Errorf("check output = %q", out.String())
	}
	out.Reset()
	if err := (&CheckCmd{Input: "https://go.dev"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Allowed") {
		t.Errorf("check output = %q", out.String())
	}
	if n := len(st.Protection().BlockHistory); n != 1 {
		t.Errorf("history = %d, want 1", n)
	}

	if err := (&PINCmd{New: "4321"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !st.HasPIN() {
		t.Fatal("PIN should be set")
	}

	if err := (&DisableCmd{PIN: "0000"}).Run(ctx); !errors.Is(err, protection.ErrWrongPIN) {
		t.Errorf("disable with wrong PIN error = %v", err)
	}
	if err := (&LevelCmd{Level: "off", PIN: "0000"}).Run(ctx); !errors.Is(err, protection.ErrWrongPIN) {
		t.Errorf("lowering level with wrong PIN error = %v", err)
	}
	if err := (&LevelCmd{Level: "strict", PIN: "0000"}).Run(ctx); err != nil {
		t.Errorf("raising level should not need the PIN: %v", err)
	}
	if err := (&UnblockCmd{Kind: "domain", Value: "example.org", PIN: "0000"}).Run(ctx); !errors.Is(err, protection.ErrWrongPIN) {
		t.Errorf("unblock with wrong PIN error = %v", err)
	}
	if err := (&UnblockCmd{Kind: "domain", Value: "example.org", PIN: "4321"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.Protection().CustomBlockedDomains); n != 0 {
		t.Errorf("custom domains = %d, want 0", n)
	}

	out.Reset()
	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "www.example.org") {
		t.Errorf("history output = %q", out.String())
	}
	if err := (&HistoryCmd{Clear: true, PIN: "4321"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n := len(st.Protection().BlockHistory); n != 0 {
		t.Errorf("history after clear = %d", n)
	}

	if err := (&DisableCmd{PIN: "4321"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Protection: disabled (level off)") || !strings.Contains(out.String(), "PIN: set") {
		t.Errorf("status = %q", out.String())
	}
}

func TestKeywordsAndVital(t *testing.T) {
	ctx, out := clitest.New(t, constants.BackendJSON)
	st := clitest.Store(t, ctx)

	if err := (&LevelCmd{Level: "light"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&BlockCmd{Kind: "keyword", Value: "doomscroll"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&BlockCmd{Kind: "keyword", Value: "  "}).Run(ctx); err == nil {
		t.Error("expected error for blank keyword")
	}
	out.Reset()
	if err := (&CheckCmd{Input: "time to doomscroll"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `matched keyword "doomscroll"`) {
		t.Errorf("check output = %q", out.String())
	}
	if err := (&UnblockCmd{Kind: "keyword", Value: "doomscroll"}).Run(ctx); err != nil {
		t.Fatalf("unblock without PIN set: %v", err)
	}

	if err := (&VitalCmd{State: "on"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !st.Protection().VitalBlockingEnabled {
		t.Error("vital blocking should be on")
	}
	if err := (&VitalCmd{State: "off"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestPartner(t *testing.T) {
	ctx, out := clitest.New(t, clitest.SQLite)
	st := clitest.Store(t, ctx)

	if err := (&PartnerCmd{}).Validate(); err == nil {
		t.Error("expected validation error with neither email nor --clear")
	}
	if err := (&PartnerCmd{Email: "a@b.c", Clear: true}).Validate(); err == nil {
		t.Error("expected validation error with both email and --clear")
	}
	if err := (&PartnerCmd{Email: "friend@example.com", OnBlock: true, Weekly: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&StatusCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "friend@example.com (on block on, daily off, weekly on)") {
		t.Errorf("status = %q", out.String())
	}

	if err := (&PINCmd{New: "9999"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&PartnerCmd{Clear: true, PIN: "1111"}).Run(ctx); !errors.Is(err, protection.ErrWrongPIN) {
		t.Errorf("clear with wrong PIN error = %v", err)
	}
	if err := (&PartnerCmd{Clear: true, PIN: "9999"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if st.Protection().AccountabilityPartner != nil {
		t.Error("partner should be cleared")
	}
}
