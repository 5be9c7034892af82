package models

import (
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
)

type Book struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Author      string               `json:"author"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
	Status      constants.BookStatus `json:"status"`
	CoverColor  string               `json:"coverColor,omitempty"`
	StartedAt   time.Time            `json:"startedAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	FolderID    string               `json:"folderId,omitempty"`
	FileName    string               `json:"pdfFileName,omitempty"`
	FileSize    int64                `json:"pdfFileSize,omitempty"`
	FileRef     string               `json:"fileRef,omitempty"`    // storage path of the uploaded file
	CoverImage  string               `json:"coverImage,omitempty"` // storage path of the cover
	Description string               `json:"description,omitempty"`
}

func (b *Book) Validate() error {
	if err := requireText("book", "title", b.Title); err != nil {
		return err
	}
	if b.TotalPages <= 0 {
		return invalid("book", "totalPages", "must be positive, got %d", b.TotalPages)
	}
	if b.CurrentPage < 0 || b.CurrentPage > b.TotalPages {
		return invalid("book", "currentPage", "must be between 0 and %d, got %d", b.TotalPages, b.CurrentPage)
	}
	return requireOneOf("book", "status", b.Status, constants.BookReading, constants.BookCompleted, constants.BookPaused)
}

// Progress returns the fraction of the book read, in [0,1].
func (b *Book) Progress() float64 {
	if b.TotalPages <= 0 {
		return 0
	}
	return float64(b.CurrentPage) / float64(b.TotalPages)
}

type BookPatch struct {
	Title       *string
	Author      *string
	TotalPages  *int
	CurrentPage *int
	Status      *constants.BookStatus
	CoverColor  *string
	FolderID    *string
	FileName    *string
	FileSize    *int64
	FileRef     *string
	CoverImage  *string
	Description *string
}

func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.TotalPages != nil {
		b.TotalPages = *p.TotalPages
	}
	if p.CurrentPage != nil {
		b.CurrentPage = *p.CurrentPage
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.CoverColor != nil {
		b.CoverColor = *p.CoverColor
	}
	if p.FolderID != nil {
		b.FolderID = *p.FolderID
	}
	if p.FileName != nil {
		b.FileName = *p.FileName
	}
	if p.FileSize != nil {
		b.FileSize = *p.FileSize
	}
	if p.FileRef != nil {
		b.FileRef = *p.FileRef
	}
	if p.CoverImage != nil {
		b.CoverImage = *p.CoverImage
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
}

type ReadingFolder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	BookIDs     []string  `json:"bookIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (f *ReadingFolder) Validate() error {
	return requireText("folder", "name", f.Name)
}

type FolderPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

func (p FolderPatch) Apply(f *ReadingFolder) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.Color != nil {
		f.Color = *p.Color
	}
	if p.Icon != nil {
		f.Icon = *p.Icon
	}
}

type ReadingSession struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Date      string    `json:"date"`
	PagesRead int       `json:"pagesRead"`
	StartPage int       `json:"startPage"`
	EndPage   int       `json:"endPage"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *ReadingSession) Validate() error {
	if err := requireText("reading session", "bookId", r.BookID); err != nil {
		return err
	}
	if err := requireDate("reading session", "date", r.Date); err != nil {
		return err
	}
	if r.PagesRead < 0 || r.StartPage < 0 {
		return invalid("reading session", "pagesRead", "pages cannot be negative")
	}
	if r.EndPage != r.StartPage+r.PagesRead {
		return invalid("reading session", "endPage", "must equal startPage+pagesRead (%d), got %d", r.StartPage+r.PagesRead, r.EndPage)
	}
	return nil
}

type CoreIdea struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	LinkedQuotes []string `json:"linkedQuotes"`
}

type ActionTakeaway struct {
	ID           string   `json:"id"`
	Action       string   `json:"action"`
	Completed    bool     `json:"completed"`
	LinkedQuotes []string `json:"linkedQuotes"`
}

type BeliefChange struct {
	ID           string   `json:"id"`
	BeliefBefore string   `json:"beliefBefore"`
	BeliefAfter  string   `json:"beliefAfter"`
	LinkedQuotes []string `json:"linkedQuotes"`
}

type BookQuote struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Page    int    `json:"page,omitempty"`
	Note    string `json:"note,omitempty"`
}

type RevisitReminder struct {
	ID           string `json:"id"`
	ReminderDate string `json:"reminderDate"`
	Prompt       string `json:"prompt"`
	Completed    bool   `json:"completed"`
}

// BookInsight is the one-per-book reflection record.
type BookInsight struct {
	ID               string            `json:"id"`
	BookID           string            `json:"bookId"`
	CoreIdeas        []CoreIdea        `json:"coreIdeas"`
	ActionTakeaways  []ActionTakeaway  `json:"actionTakeaways"`
	BeliefChanges    []BeliefChange    `json:"beliefChanges"`
	Quotes           []BookQuote       `json:"quotes"`
	RevisitReminders []RevisitReminder `json:"revisitReminders"`
	FinalSummary     string            `json:"finalSummary"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func (i *BookInsight) Validate() error {
	if err := requireText("insight", "bookId", i.BookID); err != nil {
		return err
	}
	for _, r := range i.RevisitReminders {
		if err := requireDate("insight", "reminderDate", r.ReminderDate); err != nil {
			return err
		}
	}
	for _, q := range i.Quotes {
		if q.Page < 0 {
			return invalid("insight", "quote page", "cannot be negative")
		}
	}
	return nil
}

// Normalize replaces nil sub-collections with empty ones.
func (i *BookInsight) Normalize() {
	if i.CoreIdeas == nil {
		i.CoreIdeas = []CoreIdea{}
	}
	if i.ActionTakeaways == nil {
		i.ActionTakeaways = []ActionTakeaway{}
	}
	if i.BeliefChanges == nil {
		i.BeliefChanges = []BeliefChange{}
	}
	if i.Quotes == nil {
		i.Quotes = []BookQuote{}
	}
	if i.RevisitReminders == nil {
		i.RevisitReminders = []RevisitReminder{}
	}
}

// InsightItemKind selects a sub-collection of a BookInsight.
type InsightItemKind string

const (
	InsightCoreIdea InsightItemKind = "idea"
	InsightAction   InsightItemKind = "action"
	InsightBelief   InsightItemKind = "belief"
	InsightQuote    InsightItemKind = "quote"
	InsightReminder InsightItemKind = "reminder"
)
