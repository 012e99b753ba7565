package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [book-id] [query]",
	Short: "Search a book's indexed passages",
	Long: `Embeds the query and returns the most similar passages from the
book's grounding index, ranked by cosine similarity. An unindexed book
or a query with no sufficiently similar passages returns no results.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "maximum number of passages (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if groundingService == nil {
		return errors.New("grounding service not configured")
	}

	passages, err := groundingService.Ground(cmd.Context(), args[0], args[1], searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputPassagesJSON(cmd, passages)
	}
	return outputPassagesText(cmd, passages)
}

func outputPassagesJSON(cmd *cobra.Command, passages []domain.Passage) error {
	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal passages: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputPassagesText(cmd *cobra.Command, passages []domain.Passage) error {
	if len(passages) == 0 {
		cmd.Println("No matching passages.")
		return nil
	}

	cmd.Println("Passages:")
	cmd.Println()
	for i := range passages {
		cmd.Printf("  [%d] (%.3f)\n", i+1, passages[i].Similarity)
		cmd.Printf("      %s\n", passages[i].Content)
		cmd.Println()
	}
	return nil
}
