package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/stats"
)

func bookID(b *models.Book) string               { return b.ID }
func folderID(f *models.ReadingFolder) string    { return f.ID }
func sessionID(r *models.ReadingSession) string  { return r.ID }
func insightBookID(i *models.BookInsight) string { return i.BookID }

// AddBook starts a book at page 0 with status reading.
func (s *Store) AddBook(ctx context.Context, book models.Book) (models.Book, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		if book.FolderID != "" && indexByID(st.Folders, book.FolderID, folderID) < 0 {
			return notFound("folder", book.FolderID)
		}
		return addBook(st, &book, now)
	})
	return book, err
}

// AddBookToFolder adds a book and records it in the folder's book list.
func (s *Store) AddBookToFolder(ctx context.Context, folder string, book models.Book) (models.Book, error) {
	book.FolderID = folder
	return s.AddBook(ctx, book)
}

func addBook(st *models.State, book *models.Book, now time.Time) error {
	book.ID = models.NewID()
	book.CurrentPage = 0
	book.Status = constants.BookReading
	book.StartedAt = now
	book.CompletedAt = nil
	if err := book.Validate(); err != nil {
		return err
	}
	if book.FolderID != "" {
		i := indexByID(st.Folders, book.FolderID, folderID)
		st.Folders[i].BookIDs = append(st.Folders[i].BookIDs, book.ID)
	}
	st.Books = append(st.Books, *book)
	return nil
}

// UpdateBook applies patch. Moving a book between folders keeps folder lists in step.
func (s *Store) UpdateBook(ctx context.Context, id string, patch models.BookPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		if patch.FolderID != nil && *patch.FolderID != "" && indexByID(st.Folders, *patch.FolderID, folderID) < 0 {
			return notFound("folder", *patch.FolderID)
		}
		return updateByID(st.Books, "book", id, bookID, func(b *models.Book) error {
			from := b.FolderID
			patch.Apply(b)
			if b.Status == constants.BookCompleted && b.CompletedAt == nil {
				b.CompletedAt = &now
			}
			if err := b.Validate(); err != nil {
				return err
			}
			if b.FolderID != from {
				moveBook(st, id, from, b.FolderID)
			}
			return nil
		})
	})
}

func moveBook(st *models.State, id, from, to string) {
	for i := range st.Folders {
		f := &st.Folders[i]
		switch f.ID {
		case from:
			f.BookIDs = removeString(f.BookIDs, id)
		case to:
			if !slices.Contains(f.BookIDs, id) {
				f.BookIDs = append(f.BookIDs, id)
			}
		}
	}
}

// DeleteBook removes the book, its reading sessions, its insight and its folder membership.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		i := indexByID(st.Books, id, bookID)
		if i < 0 {
			return notFound("book", id)
		}
		deleteBooks(st, func(b *models.Book) bool { return b.ID == id })
		return nil
	})
}

func deleteBooks(st *models.State, match func(*models.Book) bool) {
	removed := map[string]bool{}
	st.Books = slices.DeleteFunc(st.Books, func(b models.Book) bool {
		if match(&b) {
			removed[b.ID] = true
			return true
		}
		return false
	})
	st.ReadingSessions = slices.DeleteFunc(st.ReadingSessions, func(r models.ReadingSession) bool {
		return removed[r.BookID]
	})
	st.BookInsights = slices.DeleteFunc(st.BookInsights, func(in models.BookInsight) bool {
		return removed[in.BookID]
	})
	for i := range st.Folders {
		st.Folders[i].BookIDs = slices.DeleteFunc(st.Folders[i].BookIDs, func(id string) bool {
			return removed[id]
		})
	}
}

func (s *Store) AddFolder(ctx context.Context, folder models.ReadingFolder) (models.ReadingFolder, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		folder.ID = models.NewID()
		folder.BookIDs = []string{}
		folder.CreatedAt = now
		if err := folder.Validate(); err != nil {
			return err
		}
		st.Folders = append(st.Folders, folder)
		return nil
	})
	return folder, err
}

func (s *Store) UpdateFolder(ctx context.Context, id string, patch models.FolderPatch) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		return updateByID(st.Folders, "folder", id, folderID, func(f *models.ReadingFolder) error {
			patch.Apply(f)
			return f.Validate()
		})
	})
}

// DeleteFolder removes the folder and every book filed in it.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.Folders, err = removeByID(st.Folders, "folder", id, folderID)
		if err != nil {
			return err
		}
		deleteBooks(st, func(b *models.Book) bool { return b.FolderID == id })
		return nil
	})
}

// BooksInFolder returns the books filed in a folder.
func (s *Store) BooksInFolder(id string) []models.Book {
	var out []models.Book
	s.view(func(st *models.State, now time.Time) {
		for _, b := range st.Books {
			if b.FolderID == id {
				out = append(out, b)
			}
		}
	})
	return out
}

// AddReadingSession logs pages read. Without explicit pages the session starts at the
// book's current page. The book advances to the session's end page, is completed when
// it reaches the last page, and the reading streak moves.
func (s *Store) AddReadingSession(ctx context.Context, session models.ReadingSession) (models.ReadingSession, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		i := indexByID(st.Books, session.BookID, bookID)
		if i < 0 {
			return notFound("book", session.BookID)
		}
		book := &st.Books[i]

		session.ID = models.NewID()
		session.CreatedAt = now
		if session.Date == "" {
			session.Date = today(now)
		}
		if session.StartPage == 0 && session.EndPage == 0 {
			session.StartPage = book.CurrentPage
			session.EndPage = session.StartPage + session.PagesRead
		}
		if err := session.Validate(); err != nil {
			return err
		}

		book.CurrentPage = min(max(book.CurrentPage, session.EndPage), book.TotalPages)
		if book.CurrentPage >= book.TotalPages && book.Status != constants.BookCompleted {
			book.Status = constants.BookCompleted
			book.CompletedAt = &now
		}

		st.ReadingSessions = append(st.ReadingSessions, session)
		st.ReadingStreak = stats.NextStreak(st.ReadingStreak, session.Date, now)
		return nil
	})
	return session, err
}

func (s *Store) DeleteReadingSession(ctx context.Context, id string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.ReadingSessions, err = removeByID(st.ReadingSessions, "reading session", id, sessionID)
		return err
	})
}

// SaveBookInsight creates or replaces the insight of a book, keeping id and creation time.
func (s *Store) SaveBookInsight(ctx context.Context, insight models.BookInsight) (models.BookInsight, error) {
	err := s.mutate(ctx, func(st *models.State, now time.Time) error {
		if indexByID(st.Books, insight.BookID, bookID) < 0 {
			return notFound("book", insight.BookID)
		}
		insight.Normalize()
		insight.UpdatedAt = now
		if err := insight.Validate(); err != nil {
			return err
		}
		if i := indexByID(st.BookInsights, insight.BookID, insightBookID); i >= 0 {
			insight.ID = st.BookInsights[i].ID
			insight.CreatedAt = st.BookInsights[i].CreatedAt
			st.BookInsights[i] = insight
			return nil
		}
		insight.ID = models.NewID()
		insight.CreatedAt = now
		st.BookInsights = append(st.BookInsights, insight)
		return nil
	})
	return insight, err
}

// BookInsight returns the insight of a book.
func (s *Store) BookInsight(book string) (models.BookInsight, bool) {
	st := s.State()
	if i := indexByID(st.BookInsights, book, insightBookID); i >= 0 {
		return st.BookInsights[i], true
	}
	return models.BookInsight{}, false
}

func (s *Store) DeleteBookInsight(ctx context.Context, book string) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) (err error) {
		st.BookInsights, err = removeByID(st.BookInsights, "insight", book, insightBookID)
		return err
	})
}

// editInsight runs fn on the insight of bookID, creating an empty one for a known book.
func (s *Store) editInsight(ctx context.Context, book string, fn func(in *models.BookInsight) error) error {
	return s.mutate(ctx, func(st *models.State, now time.Time) error {
		i := indexByID(st.BookInsights, book, insightBookID)
		if i < 0 {
			if indexByID(st.Books, book, bookID) < 0 {
				return notFound("book", book)
			}
			in := models.BookInsight{ID: models.NewID(), BookID: book, CreatedAt: now}
			in.Normalize()
			st.BookInsights = append(st.BookInsights, in)
			i = len(st.BookInsights) - 1
		}
		in := &st.BookInsights[i]
		if err := fn(in); err != nil {
			return err
		}
		in.UpdatedAt = now
		return in.Validate()
	})
}

func (s *Store) AddCoreIdea(ctx context.Context, bookID, content string) (models.CoreIdea, error) {
	idea := models.CoreIdea{ID: models.NewID(), Content: content, LinkedQuotes: []string{}}
	return idea, s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.CoreIdeas = append(in.CoreIdeas, idea)
		return nil
	})
}

func (s *Store) AddActionTakeaway(ctx context.Context, bookID, action string) (models.ActionTakeaway, error) {
	a := models.ActionTakeaway{ID: models.NewID(), Action: action, LinkedQuotes: []string{}}
	return a, s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.ActionTakeaways = append(in.ActionTakeaways, a)
		return nil
	})
}

func (s *Store) AddBeliefChange(ctx context.Context, bookID, before, after string) (models.BeliefChange, error) {
	b := models.BeliefChange{ID: models.NewID(), BeliefBefore: before, BeliefAfter: after, LinkedQuotes: []string{}}
	return b, s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.BeliefChanges = append(in.BeliefChanges, b)
		return nil
	})
}

func (s *Store) AddQuote(ctx context.Context, bookID string, quote models.BookQuote) (models.BookQuote, error) {
	quote.ID = models.NewID()
	return quote, s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.Quotes = append(in.Quotes, quote)
		return nil
	})
}

func (s *Store) AddRevisitReminder(ctx context.Context, bookID, date, prompt string) (models.RevisitReminder, error) {
	r := models.RevisitReminder{ID: models.NewID(), ReminderDate: date, Prompt: prompt}
	return r, s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.RevisitReminders = append(in.RevisitReminders, r)
		return nil
	})
}

func (s *Store) SetInsightSummary(ctx context.Context, bookID, summary string) error {
	return s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		in.FinalSummary = summary
		return nil
	})
}

// RemoveInsightItem deletes one sub-item. Removing a quote also drops every link to it.
func (s *Store) RemoveInsightItem(ctx context.Context, bookID string, kind models.InsightItemKind, itemID string) error {
	return s.editInsight(ctx, bookID, func(in *models.BookInsight) (err error) {
		switch kind {
		case models.InsightCoreIdea:
			in.CoreIdeas, err = removeByID(in.CoreIdeas, "core idea", itemID, func(x *models.CoreIdea) string { return x.ID })
		case models.InsightAction:
			in.ActionTakeaways, err = removeByID(in.ActionTakeaways, "action", itemID, func(x *models.ActionTakeaway) string { return x.ID })
		case models.InsightBelief:
			in.BeliefChanges, err = removeByID(in.BeliefChanges, "belief change", itemID, func(x *models.BeliefChange) string { return x.ID })
		case models.InsightReminder:
			in.RevisitReminders, err = removeByID(in.RevisitReminders, "reminder", itemID, func(x *models.RevisitReminder) string { return x.ID })
		case models.InsightQuote:
			in.Quotes, err = removeByID(in.Quotes, "quote", itemID, func(x *models.BookQuote) string { return x.ID })
			if err == nil {
				unlinkQuote(in, itemID)
			}
		default:
			return fmt.Errorf("unknown insight item kind %q", kind)
		}
		return err
	})
}

func unlinkQuote(in *models.BookInsight, quoteID string) {
	for i := range in.CoreIdeas {
		in.CoreIdeas[i].LinkedQuotes = removeString(in.CoreIdeas[i].LinkedQuotes, quoteID)
	}
	for i := range in.ActionTakeaways {
		in.ActionTakeaways[i].LinkedQuotes = removeString(in.ActionTakeaways[i].LinkedQuotes, quoteID)
	}
	for i := range in.BeliefChanges {
		in.BeliefChanges[i].LinkedQuotes = removeString(in.BeliefChanges[i].LinkedQuotes, quoteID)
	}
}

// LinkQuote toggles a link between a quote and an idea, action or belief change.
// It returns whether the link now exists.
func (s *Store) LinkQuote(ctx context.Context, bookID string, kind models.InsightItemKind, itemID, quoteID string) (bool, error) {
	var linked bool
	err := s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		if !slices.ContainsFunc(in.Quotes, func(q models.BookQuote) bool { return q.ID == quoteID }) {
			return notFound("quote", quoteID)
		}
		toggle := func(links *[]string) {
			if slices.Contains(*links, quoteID) {
				*links = removeString(*links, quoteID)
				linked = false
				return
			}
			*links = append(*links, quoteID)
			linked = true
		}
		switch kind {
		case models.InsightCoreIdea:
			return updateByID(in.CoreIdeas, "core idea", itemID, func(x *models.CoreIdea) string { return x.ID },
				func(x *models.CoreIdea) error { toggle(&x.LinkedQuotes); return nil })
		case models.InsightAction:
			return updateByID(in.ActionTakeaways, "action", itemID, func(x *models.ActionTakeaway) string { return x.ID },
				func(x *models.ActionTakeaway) error { toggle(&x.LinkedQuotes); return nil })
		case models.InsightBelief:
			return updateByID(in.BeliefChanges, "belief change", itemID, func(x *models.BeliefChange) string { return x.ID },
				func(x *models.BeliefChange) error { toggle(&x.LinkedQuotes); return nil })
		default:
			return fmt.Errorf("quotes cannot be linked to %q", kind)
		}
	})
	return linked, err
}

func (s *Store) ToggleActionTakeaway(ctx context.Context, bookID, actionID string) error {
	return s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		return updateByID(in.ActionTakeaways, "action", actionID, func(x *models.ActionTakeaway) string { return x.ID },
			func(x *models.ActionTakeaway) error { x.Completed = !x.Completed; return nil })
	})
}

func (s *Store) ToggleRevisitReminder(ctx context.Context, bookID, reminderID string) error {
	return s.editInsight(ctx, bookID, func(in *models.BookInsight) error {
		return updateByID(in.RevisitReminders, "reminder", reminderID, func(x *models.RevisitReminder) string { return x.ID },
			func(x *models.RevisitReminder) error { x.Completed = !x.Completed; return nil })
	})
}
