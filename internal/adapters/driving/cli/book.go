package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bookAuthor string

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage books in the library",
}

var bookAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a book to the library",
	Long: `Adds a book record to the library. The book has no grounding index
until its text is indexed with 'lorebase index'.`,
	Args: cobra.ExactArgs(1),
	RunE: runBookAdd,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your books",
	Args:  cobra.NoArgs,
	RunE:  runBookList,
}

var bookShowCmd = &cobra.Command{
	Use:   "show [book-id]",
	Short: "Show a book and its index state",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookShow,
}

var bookRemoveCmd = &cobra.Command{
	Use:   "remove [book-id]",
	Short: "Remove a book and its index",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookRemove,
}

func init() {
	bookAddCmd.Flags().StringVar(&bookAuthor, "author", "", "book author")
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookShowCmd)
	bookCmd.AddCommand(bookRemoveCmd)
	rootCmd.AddCommand(bookCmd)
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	book, err := libraryService.AddBook(cmd.Context(), ownerID, args[0], bookAuthor)
	if err != nil {
		return fmt.Errorf("adding book: %w", err)
	}

	cmd.Printf("Added book %s (%s)\n", book.Title, book.ID)
	return nil
}

func runBookList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	books, err := libraryService.ListBooks(cmd.Context(), ownerID)
	if err != nil {
		return fmt.Errorf("listing books: %w", err)
	}

	if len(books) == 0 {
		cmd.Println("No books in the library.")
		return nil
	}

	for i := range books {
		indexed := "not indexed"
		if books[i].HasContent {
			indexed = fmt.Sprintf("%d chunks", books[i].ChunkCount)
		}
		cmd.Printf("  %s  %s (%s)\n", books[i].ID, books[i].Title, indexed)
	}
	return nil
}

func runBookShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	book, err := libraryService.GetBook(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("getting book: %w", err)
	}

	cmd.Printf("Title:   %s\n", book.Title)
	if book.Author != "" {
		cmd.Printf("Author:  %s\n", book.Author)
	}
	cmd.Printf("ID:      %s\n", book.ID)
	if book.HasContent {
		cmd.Printf("Index:   %d chunks over %d characters\n", book.ChunkCount, book.ContentLength)
		cmd.Printf("Updated: %s\n", book.ContentUpdatedAt.Format("2006-01-02 15:04:05"))
	} else {
		cmd.Println("Index:   not indexed")
	}
	return nil
}

func runBookRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.RemoveBook(cmd.Context(), ownerID, args[0]); err != nil {
		return fmt.Errorf("removing book: %w", err)
	}

	cmd.Printf("Removed book %s\n", args[0])
	return nil
}
