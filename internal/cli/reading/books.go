// Package reading holds the book, folder, session and insight commands.
package reading

import (
	"fmt"

	"github.com/julianstephens/lifetrack/internal/cli"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/store"
)

func resolveBook(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().Books, func(b models.Book) string { return b.ID }))
}

func resolveFolder(st *store.Store, prefix string) (string, error) {
	return cli.Resolve(prefix, cli.IDs(st.State().Folders, func(f models.ReadingFolder) string { return f.ID }))
}

type BookAddCmd struct {
	Title       string `arg:"" help:"Book title."`
	Author      string `short:"a" help:"Author."`
	Pages       int    `short:"p" required:"" help:"Total number of pages."`
	Folder      string `short:"f" help:"Folder ID or unique prefix to file the book in."`
	Description string `help:"Short description."`
}

func (c *BookAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	book := models.Book{Title: c.Title, Author: c.Author, TotalPages: c.Pages, Description: c.Description}
	if c.Folder != "" {
		var folder string
		if folder, err = resolveFolder(st, c.Folder); err != nil {
			return err
		}
		book, err = st.AddBookToFolder(ctx.Ctx, folder, book)
	} else {
		book, err = st.AddBook(ctx.Ctx, book)
	}
	if err != nil {
		return err
	}
	ctx.Printf("Added book: %s (ID: %s)\n", book.Title, cli.ShortID(book.ID))
	return nil
}

type BookListCmd struct {
	Folder string `short:"f" help:"Only books in this folder."`
}

func (c *BookListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	books := st.State().Books
	if c.Folder != "" {
		folder, err := resolveFolder(st, c.Folder)
		if err != nil {
			return err
		}
		books = st.BooksInFolder(folder)
	}
	if len(books) == 0 {
		ctx.Println("No books found")
		return nil
	}
	for _, b := range books {
		ctx.Printf("  %s  %-32s %-20s %4d/%-4d %3.0f%%  %s\n",
			cli.ShortID(b.ID), b.Title, b.Author, b.CurrentPage, b.TotalPages, b.Progress()*100, b.Status)
	}
	return nil
}

type BookStatusCmd struct {
	ID     string `arg:"" help:"Book ID or unique prefix."`
	Status string `arg:"" enum:"reading,completed,paused" help:"New status (${enum})."`
}

func (c *BookStatusCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveBook(st, c.ID)
	if err != nil {
		return err
	}
	status := constants.BookStatus(c.Status)
	if err := st.UpdateBook(ctx.Ctx, id, models.BookPatch{Status: &status}); err != nil {
		return err
	}
	ctx.Printf("Book %s is now %s\n", cli.ShortID(id), status)
	return nil
}

type BookMoveCmd struct {
	ID     string `arg:"" help:"Book ID or unique prefix."`
	Folder string `arg:"" optional:"" help:"Target folder ID or prefix; omit to remove from its folder."`
}

func (c *BookMoveCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveBook(st, c.ID)
	if err != nil {
		return err
	}
	folder := ""
	if c.Folder != "" {
		if folder, err = resolveFolder(st, c.Folder); err != nil {
			return err
		}
	}
	if err := st.UpdateBook(ctx.Ctx, id, models.BookPatch{FolderID: &folder}); err != nil {
		return err
	}
	ctx.Printf("Moved book %s\n", cli.ShortID(id))
	return nil
}

type BookDeleteCmd struct {
	ID string `arg:"" help:"Book ID or unique prefix."`
}

func (c *BookDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveBook(st, c.ID)
	if err != nil {
		return err
	}
	if err := st.DeleteBook(ctx.Ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	ctx.Printf("Deleted book %s and its sessions\n", cli.ShortID(id))
	return nil
}

type FolderAddCmd struct {
	Name        string `arg:"" help:"Folder name."`
	Description string `help:"Description."`
	Color       string `help:"Display color."`
}

func (c *FolderAddCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	f, err := st.AddFolder(ctx.Ctx, models.ReadingFolder{Name: c.Name, Description: c.Description, Color: c.Color})
	if err != nil {
		return err
	}
	ctx.Printf("Added folder: %s (ID: %s)\n", f.Name, cli.ShortID(f.ID))
	return nil
}

type FolderListCmd struct{}

func (c *FolderListCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	folders := st.State().Folders
	if len(folders) == 0 {
		ctx.Println("No folders found")
		return nil
	}
	for _, f := range folders {
		ctx.Printf("  %s  %-24s %d book(s)\n", cli.ShortID(f.ID), f.Name, len(f.BookIDs))
	}
	return nil
}

type FolderDeleteCmd struct {
	ID  string `arg:"" help:"Folder ID or unique prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *FolderDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.Store()
	if err != nil {
		return err
	}
	id, err := resolveFolder(st, c.ID)
	if err != nil {
		return err
	}
	books := st.BooksInFolder(id)
	if len(books) > 0 && !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete the folder and its %d book(s) with their sessions?", len(books)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}
	if err := st.DeleteFolder(ctx.Ctx, id); err != nil {
		return err
	}
	ctx.Printf("Deleted folder %s and %d book(s)\n", cli.ShortID(id), len(books))
	return nil
}
