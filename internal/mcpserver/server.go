// Package mcpserver exposes the tracker as Model Context Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

type Analyzer interface {
	AnalyzeContent(ctx context.Context, id string) (string, error)
}

type Server struct {
	store    *store.Store
	analyzer Analyzer
	mcp      *server.MCPServer
}

// New registers the tools. analyzer may be nil, in which case analyze_content is not offered.
func New(st *store.Store, analyzer Analyzer) *Server {
	s := &Server{
		store:    st,
		analyzer: analyzer,
		mcp:      server.NewMCPServer(constants.AppName, constants.Version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// Serve reads JSON-RPC requests from in and writes responses to out until ctx is done.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logger.Info("MCP server starting")
	err := server.NewStdioServer(s.mcp).Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("dashboard_stats",
		mcp.WithDescription("Life score, per-system streaks and today's task progress"),
	), s.dashboardStats)

	s.mcp.AddTool(mcp.NewTool("reading_stats",
		mcp.WithDescription("Pages read this week, books in progress and the reading streak"),
	), s.readingStats)

	s.mcp.AddTool(mcp.NewTool("today_tasks",
		mcp.WithDescription("List today's daily tasks"),
	), s.todayTasks)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Add a daily task"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("category",
			mcp.Description("Life area of the task"),
			mcp.Enum(string(constants.TaskPhysical), string(constants.TaskMental), string(constants.TaskWork), string(constants.TaskPersonal)),
		),
		mcp.WithString("date", mcp.Description("YYYY-MM-DD, defaults to today")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip a task between done and not done"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Task id")),
	), s.toggleTask)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Record a life note"),
		mcp.WithString("content", mcp.Required()),
		mcp.WithString("linked_system", mcp.Description("meditation, reading, workout or general")),
		mcp.WithNumber("mood", mcp.Description("1 to 5")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("check_content",
		mcp.WithDescription("Run text or a URL through the content protection filter"),
		mcp.WithString("input", mcp.Required()),
	), s.checkContent)

	if s.analyzer != nil {
		s.mcp.AddTool(mcp.NewTool("analyze_content",
			mcp.WithDescription("Run the strategic authority analysis of a branding content item"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Content item id")),
		), s.analyzeContent)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

// toolError reports err to the client as a failed tool call rather than a protocol error.
func toolError(msg string, err error) (*mcp.CallToolResult, error) {
	logger.Warn(msg, "error", err)
	return mcp.NewToolResultErrorFromErr(msg, err), nil
}

func (s *Server) dashboardStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.DashboardStats())
}

func (s *Server) readingStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.ReadingStats())
}

func (s *Server) todayTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.store.TodayTasks())
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := constants.TaskCategory(req.GetString("category", string(constants.TaskPersonal)))
	task, err := s.store.AddTask(ctx, title, category, req.GetString("date", ""))
	if err != nil {
		return toolError("failed to add task", err)
	}
	return jsonResult(task)
}

func (s *Server) toggleTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	done, err := s.store.ToggleTask(ctx, id)
	if err != nil {
		return toolError("failed to toggle task", err)
	}
	if done {
		return mcp.NewToolResultText("Task completed"), nil
	}
	return mcp.NewToolResultText("Task reopened"), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.store.AddNote(ctx, models.LifeNote{
		Content:      content,
		LinkedSystem: constants.LinkedSystem(req.GetString("linked_system", "")),
		Mood:         req.GetInt("mood", 0),
	})
	if err != nil {
		return toolError("failed to add note", err)
	}
	return jsonResult(note)
}

func (s *Server) checkContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.store.CheckContent(ctx, input)
	if err != nil {
		return toolError("failed to check content", err)
	}
	return jsonResult(res)
}

func (s *Server) analyzeContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reply, err := s.analyzer.AnalyzeContent(ctx, id)
	if err != nil {
		return toolError("analysis failed", err)
	}
	return mcp.NewToolResultText(reply), nil
}
