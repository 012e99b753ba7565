package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [book-id] [file]",
	Short: "Index a book's text for grounding search",
	Long: `Reads the book text from file, splits it into overlapping chunks,
embeds each chunk and replaces the book's grounding index.

The previous index stays live until the new one is complete, so
searches during re-indexing see the old content rather than nothing.
Chunks whose embedding fails are skipped; the summary reports how many
made it.`,
	Args: cobra.ExactArgs(2),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexingService == nil {
		return errors.New("indexing service not configured")
	}

	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading book file: %w", err)
	}

	summary, err := indexingService.Reindex(cmd.Context(), ownerID, args[0], string(content))
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if summary.ChunksProcessed < summary.TotalChunks {
		cmd.Printf("Indexed %d of %d chunks (%d failed to embed)\n",
			summary.ChunksProcessed, summary.TotalChunks, summary.TotalChunks-summary.ChunksProcessed)
	} else {
		cmd.Printf("Indexed %d chunks\n", summary.ChunksProcessed)
	}
	return nil
}
