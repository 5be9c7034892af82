package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/store"
)

type stubAnalyzer struct {
	err error
}

func (a stubAnalyzer) AnalyzeContent(_ context.Context, id string) (string, error) {
	return "analysis of " + id, a.err
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	provider := storage.NewJSONStore(t.TempDir(), constants.StorageKey)
	if err := provider.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s, err := store.Open(context.Background(), provider)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty tool result")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

func TestAddAndToggleTask(t *testing.T) {
	st := setupTestStore(t)
	s := New(st, nil)
	ctx := context.Background()

	res, err := s.addTask(ctx, call("add_task", map[string]interface{}{"title": "Stretch", "category": "physical"}))
	if err != nil || res.IsError {
		t.Fatalf("add_task = %v, %v", res, err)
	}
	tasks := st.TodayTasks()
	if len(tasks) != 1 || tasks[0].Category != constants.TaskPhysical {
		t.Fatalf("tasks = %+v", tasks)
	}
	if !strings.Contains(text(t, res), tasks[0].ID) {
		t.Errorf("add_task result missing id: %s", text(t, res))
	}

	res, err = s.toggleTask(ctx, call("toggle_task", map[string]interface{}{"id": tasks[0].ID}))
	if err != nil || res.IsError {
		t.Fatalf("toggle_task = %v, %v", res, err)
	}
	if got := text(t, res); got != "Task completed" {
		t.Errorf("toggle_task = %q", got)
	}
	if !st.TodayTasks()[0].Completed {
		t.Errorf("task not completed")
	}
}

func TestToolErrors(t *testing.T) {
	s := New(setupTestStore(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		fn   func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args map[string]interface{}
	}{
		{"missing title", s.addTask, map[string]interface{}{}},
		{"bad category", s.addTask, map[string]interface{}{"title": "x", "category": "spiritual"}},
		{"unknown task", s.toggleTask, map[string]interface{}{"id": "nope"}},
		{"bad mood", s.addNote, map[string]interface{}{"content": "hi", "mood": float64(9)}},
		{"missing input", s.checkContent, map[string]interface{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.fn(ctx, call(tt.name, tt.args))
			if err != nil {
				t.Fatalf("protocol error = %v", err)
			}
			if !res.IsError {
				t.Errorf("IsError = false, result %s", text(t, res))
			}
		})
	}
}

func TestAddNote(t *testing.T) {
	st := setupTestStore(t)
	s := New(st, nil)

	res, err := s.addNote(context.Background(), call("add_note", map[string]interface{}{
		"content":       "Calm sit",
		"linked_system": "meditation",
		"mood":          float64(4),
	}))
	if err != nil || res.IsError {
		t.Fatalf("add_note = %v, %v", res, err)
	}
	notes := st.Notes(0)
	if len(notes) != 1 || notes[0].Mood != 4 || notes[0].LinkedSystem != constants.SystemMeditation {
		t.Errorf("notes = %+v", notes)
	}
}

func TestCheckContent(t *testing.T) {
	st := setupTestStore(t)
	if err := st.AddBlockedKeyword(context.Background(), "casino"); err != nil {
		t.Fatal(err)
	}
	s := New(st, nil)

	res, err := s.checkContent(context.Background(), call("check_content", map[string]interface{}{"input": "casino tonight"}))
	if err != nil || res.IsError {
		t.Fatalf("check_content = %v, %v", res, err)
	}
	var got struct {
		Blocked        bool   `json:"blocked"`
		MatchedKeyword string `json:"matchedKeyword"`
	}
	if err := json.Unmarshal([]byte(text(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Blocked || got.MatchedKeyword != "casino" {
		t.Errorf("result = %+v", got)
	}
	if len(st.Protection().BlockHistory) != 1 {
		t.Errorf("blocked attempt not recorded")
	}
}

func TestAnalyzeContent(t *testing.T) {
	s := New(setupTestStore(t), stubAnalyzer{})
	res, err := s.analyzeContent(context.Background(), call("analyze_content", map[string]interface{}{"id": "c1"}))
	if err != nil || res.IsError {
		t.Fatalf("analyze_content = %v, %v", res, err)
	}
	if got := text(t, res); got != "analysis of c1" {
		t.Errorf("analyze_content = %q", got)
	}

	s = New(setupTestStore(t), stubAnalyzer{err: errors.New("quota")})
	res, _ = s.analyzeContent(context.Background(), call("analyze_content", map[string]interface{}{"id": "c1"}))
	if !res.IsError {
		t.Errorf("IsError = false on analyzer failure")
	}
}

type rpcResponse struct {
	ID     int             `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func TestServe_Stdio(t *testing.T) {
	st := setupTestStore(t)
	s := New(st, nil)

	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, inR, outW)
		outW.Close()
	}()
	lines := bufio.NewScanner(outR)
	lines.Buffer(make([]byte, 1<<20), 1<<20)

	send := func(id int, method string, params string) rpcResponse {
		t.Helper()
		msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":%q,"params":%s}`+"\n", id, method, params)
		if _, err := io.WriteString(inW, msg); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !lines.Scan() {
			t.Fatalf("no response to %s: %v", method, lines.Err())
		}
		var resp rpcResponse
		if err := json.Unmarshal(lines.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s: %v", lines.Text(), err)
		}
		if resp.Error != nil {
			t.Fatalf("%s error: %s", method, resp.Error.Message)
		}
		return resp
	}

	send(1, "initialize", `{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}`)

	resp := send(2, "tools/list", `{}`)
	var list struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &list); err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range list.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"dashboard_stats", "reading_stats", "today_tasks", "add_task", "toggle_task", "add_note", "check_content"} {
		if !names[want] {
			t.Errorf("tool %s not listed", want)
		}
	}
	if names["analyze_content"] {
		t.Errorf("analyze_content listed without an analyzer")
	}

	send(3, "tools/call", `{"name":"add_task","arguments":{"title":"Over the wire"}}`)
	if tasks := st.TodayTasks(); len(tasks) != 1 || tasks[0].Title != "Over the wire" {
		t.Errorf("tasks = %+v", tasks)
	}

	cancel()
	inW.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}
