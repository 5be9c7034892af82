package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
)

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.State())
}

func (s *Server) dashboardStats(c *gin.Context)  { c.JSON(http.StatusOK, s.store.DashboardStats()) }
func (s *Server) readingStats(c *gin.Context)    { c.JSON(http.StatusOK, s.store.ReadingStats()) }
func (s *Server) meditationStats(c *gin.Context) { c.JSON(http.StatusOK, s.store.MeditationStats()) }
func (s *Server) codingStats(c *gin.Context)     { c.JSON(http.StatusOK, s.store.CodingStats()) }

// tasks

type taskRequest struct {
	Title    string                 `json:"title" binding:"required"`
	Category constants.TaskCategory `json:"category"`
	Date     string                 `json:"date"`
}

func (s *Server) listTasks(c *gin.Context) {
	if c.Query("all") == "true" {
		c.JSON(http.StatusOK, s.store.State().DailyTasks)
		return
	}
	c.JSON(http.StatusOK, s.store.TodayTasks())
}

func (s *Server) addTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Category == "" {
		req.Category = constants.TaskPersonal
	}
	task, err := s.store.AddTask(c.Request.Context(), req.Title, req.Category, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateTask(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) toggleTask(c *gin.Context) {
	done, err := s.store.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": done})
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.store.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// goals

type goalRequest struct {
	Title    string `json:"title" binding:"required"`
	SystemID string `json:"systemId"`
}

func (s *Server) listGoals(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.CurrentWeekGoals())
}

func (s *Server) addGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	goal, err := s.store.AddGoal(c.Request.Context(), req.Title, req.SystemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) goalProgress(c *gin.Context) {
	var req struct {
		Progress *int `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateGoalProgress(c.Request.Context(), c.Param("id"), *req.Progress); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteGoal(c *gin.Context) {
	if err := s.store.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// notes

func (s *Server) listNotes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	c.JSON(http.StatusOK, s.store.Notes(limit))
}

func (s *Server) addNote(c *gin.Context) {
	var note models.LifeNote
	if err := c.ShouldBindJSON(&note); err != nil {
		badRequest(c, err)
		return
	}
	note, err := s.store.AddNote(c.Request.Context(), note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *Server) updateNote(c *gin.Context) {
	var patch models.NotePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateNote(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteNote(c *gin.Context) {
	if err := s.store.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// books

func (s *Server) listBooks(c *gin.Context) {
	if folder := c.Query("folder"); folder != "" {
		c.JSON(http.StatusOK, s.store.BooksInFolder(folder))
		return
	}
	c.JSON(http.StatusOK, s.store.State().Books)
}

func (s *Server) addBook(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		badRequest(c, err)
		return
	}
	book, err := s.store.AddBook(c.Request.Context(), book)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (s *Server) updateBook(c *gin.Context) {
	var patch models.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateBook(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteBook(c *gin.Context) {
	if err := s.store.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addReadingSession(c *gin.Context) {
	var session models.ReadingSession
	if err := c.ShouldBindJSON(&session); err != nil {
		badRequest(c, err)
		return
	}
	session.BookID = c.Param("id")
	session, err := s.store.AddReadingSession(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// connections

func (s *Server) listConnections(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.State().Networking.Connections)
}

func (s *Server) addConnection(c *gin.Context) {
	var conn models.NetworkingConnection
	if err := c.ShouldBindJSON(&conn); err != nil {
		badRequest(c, err)
		return
	}
	conn, err := s.store.AddConnection(c.Request.Context(), conn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conn)
}

func (s *Server) updateConnection(c *gin.Context) {
	var patch models.ConnectionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateConnection(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteConnection(c *gin.Context) {
	if err := s.store.DeleteConnection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addOutcome(c *gin.Context) {
	var outcome models.ConnectionOutcome
	if err := c.ShouldBindJSON(&outcome); err != nil {
		badRequest(c, err)
		return
	}
	outcome, err := s.store.AddOutcome(c.Request.Context(), c.Param("id"), outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, outcome)
}

// content

func (s *Server) listContent(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		c.JSON(http.StatusOK, s.store.ContentByStatus(constants.ContentStatus(status)))
		return
	}
	c.JSON(http.StatusOK, s.store.State().Branding.ContentItems)
}

func (s *Server) addContent(c *gin.Context) {
	var item models.BrandingContentItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	item, err := s.store.AddContentItem(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) updateContent(c *gin.Context) {
	var patch models.ContentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.store.UpdateContentItem(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteContent(c *gin.Context) {
	if err := s.store.DeleteContentItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) analyzeContent(c *gin.Context) {
	if s.cfg.Analyzer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return
	}
	id := c.Param("id")
	if _, err := s.store.ContentItem(id); err != nil {
		respondError(c, err)
		return
	}
	reply, err := s.cfg.Analyzer.AnalyzeContent(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": reply})
}

// protection

func (s *Server) checkContent(c *gin.Context) {
	var req struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.store.CheckContent(c.Request.Context(), req.Input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
