package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory of book files and re-index on change",
	Long: `Watches dir for book text files. When a file is created or modified,
the matching book (by title, from the file name) is re-indexed; a book
is created automatically for new files. Removing a file leaves the
book and its index untouched.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil || indexingService == nil {
		return errors.New("library and indexing services not configured")
	}
	if newWatcher == nil {
		return errors.New("watcher not configured")
	}

	watcher, err := newWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Stop() //nolint:errcheck // best-effort cleanup on exit

	ctx := cmd.Context()
	events, err := watcher.Watch(ctx, args[0])
	if err != nil {
		return fmt.Errorf("watching %s: %w", args[0], err)
	}

	cmd.Printf("Watching %s for book files...\n", args[0])

	for event := range events {
		if event.Op == driven.FileRemoved {
			logger.Info("File removed, keeping existing index: %s", event.Path)
			continue
		}
		if err := reindexFile(ctx, event.Path); err != nil {
			logger.Warn("Re-index failed for %s: %v", event.Path, err)
			continue
		}
		cmd.Printf("Re-indexed %s\n", filepath.Base(event.Path))
	}
	return nil
}

// reindexFile re-indexes the book matching the file, creating the book
// record on first sight. The book title is the file name without its
// extension.
func reindexFile(ctx context.Context, path string) error {
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	book, err := findBookByTitle(ctx, title)
	if err != nil {
		return err
	}
	if book == nil {
		book, err = libraryService.AddBook(ctx, ownerID, title, "")
		if err != nil {
			return fmt.Errorf("creating book: %w", err)
		}
		logger.Info("Created book %s for %s", book.ID, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	summary, err := indexingService.Reindex(ctx, ownerID, book.ID, string(content))
	if err != nil {
		return err
	}
	logger.Info("Indexed %d/%d chunks for %s", summary.ChunksProcessed, summary.TotalChunks, book.Title)
	return nil
}

func findBookByTitle(ctx context.Context, title string) (*domain.Book, error) {
	books, err := libraryService.ListBooks(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	for i := range books {
		if books[i].Title == title {
			return &books[i], nil
		}
	}
	return nil, nil
}
