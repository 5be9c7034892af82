package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

var (
	partner = models.AccountabilityPartner{Email: "friend@example.com", NotifyOnBlock: true}
	when    = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
)

func TestNotify(t *testing.T) {
	tests := []struct {
		name     string
		attempt  models.BlockedAttempt
		wantKind string
		want     string
	}{
		{
			name:     "url",
			attempt:  models.BlockedAttempt{URL: "https://reddit.com/r/x", Reason: "Blocked domain", ProtectionLevel: constants.ProtectionStrong, Timestamp: when},
			wantKind: "url",
			want:     "https://reddit.com/r/x",
		},
		{
			name:     "keyword",
			attempt:  models.BlockedAttempt{Keyword: "nsfw", Reason: "Blocked keyword", ProtectionLevel: constants.ProtectionLight, Timestamp: when},
			wantKind: "keyword",
			want:     "nsfw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got WebhookPayload
			var secret string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				secret = r.Header.Get(constants.WebhookSecretHeader)
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode: %v", err)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			if err := New(srv.URL, "s3cret").Notify(context.Background(), partner, tt.attempt); err != nil {
				t.Fatalf("Notify() error = %v", err)
			}
			if secret != "s3cret" {
				t.Errorf("secret header = %q", secret)
			}
			if got.Kind != tt.wantKind || got.Blocked != tt.want {
				t.Errorf("payload = %+v", got)
			}
			if got.Partner != partner.Email || got.Level != tt.attempt.ProtectionLevel || !got.Timestamp.Equal(when) {
				t.Errorf("payload = %+v", got)
			}
		})
	}
}

func TestNotify_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL, "").Notify(context.Background(), partner, models.BlockedAttempt{URL: "https://x.com"})
	if err == nil {
		t.Fatal("expected error for 403")
	}

	if err := New("", "").Notify(context.Background(), partner, models.BlockedAttempt{}); !errors.Is(err, ErrNoURL) {
		t.Errorf("Notify() without URL error = %v, want ErrNoURL", err)
	}
}

func TestHook(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook := New(srv.URL, "").Hook()
	hook(partner, models.BlockedAttempt{Keyword: "porn"})
	if calls != 1 {
		t.Errorf("webhook calls = %d, want 1", calls)
	}

	// A dead endpoint is logged, not raised.
	srv.Close()
	hook(partner, models.BlockedAttempt{Keyword: "porn"})
}
