package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	return c
}

func TestOpenAI_Complete(t *testing.T) {
	var got chatRequest
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"SECTION A — ok"}}]}`))
	})

	msgs := []Message{{Role: RoleSystem, Content: "be brief"}, {Role: RoleUser, Content: "hi"}}
	reply, err := c.Complete(context.Background(), msgs)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if reply != "SECTION A — ok" {
		t.Errorf("reply = %q", reply)
	}
	want := chatRequest{Model: "gpt-4o", Messages: msgs, Temperature: 0.7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body (-want +got):\n%s", diff)
	}
}

func TestOpenAI_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
		wantErr  error
	}{
		{"api error message", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key"}}`, 401, "Incorrect API key", nil},
		{"plain body", http.StatusBadGateway, "upstream down", 502, "upstream down", nil},
		{"no choices", http.StatusOK, `{"choices":[]}`, 0, "", ErrNoChoices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var serr *StatusError
			if !errors.As(err, &serr) {
				t.Fatalf("error = %v, want StatusError", err)
			}
			if serr.Code != tt.wantCode || serr.Message != tt.wantMsg {
				t.Errorf("StatusError = %+v, want %d %q", serr, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestOpenAI_ContextCancel(t *testing.T) {
	block := make(chan struct{})
	c := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Complete(ctx, []Message{{Role: RoleUser, Content: "hi"}}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}

func TestNewOpenAI_RequiresKey(t *testing.T) {
	if _, err := NewOpenAI(Config{}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Config{Provider: "llama", APIKey: "k"}); !errors.Is(err, ErrNoProvider) {
		t.Errorf("error = %v, want ErrNoProvider", err)
	}
}

type stubClient struct {
	reply string
	err   error
	calls int
}

func (s *stubClient) Complete(context.Context, []Message) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestFallback(t *testing.T) {
	failing := &stubClient{err: errors.New("quota")}
	working := &stubClient{reply: "ok"}
	unused := &stubClient{reply: "unused"}

	reply, err := Fallback{failing, working, unused}.Complete(context.Background(), nil)
	if err != nil || reply != "ok" {
		t.Fatalf("Complete() = %q, %v", reply, err)
	}
	if unused.calls != 0 {
		t.Errorf("client after success was called")
	}

	_, err = Fallback{failing, &stubClient{err: errors.New("down")}}.Complete(context.Background(), nil)
	if err == nil || !errors.Is(err, failing.err) {
		t.Errorf("error = %v, want joined provider errors", err)
	}
}

func TestToGemini(t *testing.T) {
	system, contents := toGemini([]Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "answer"},
	})
	if system != "rules" {
		t.Errorf("system = %q", system)
	}
	if len(contents) != 2 || contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("contents roles = %v", contents)
	}
}
