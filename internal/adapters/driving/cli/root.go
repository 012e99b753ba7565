// Package cli provides the command-line interface driving adapter.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/ports/driven"
	"github.com/storyloom-labs/lorebase/internal/core/ports/driving"
	"github.com/storyloom-labs/lorebase/internal/logger"
)

// version is set by the composition root before Execute.
var version = "dev"

// Services wired in by the composition root. Commands check for nil so
// an unwired binary fails with a clear message instead of a panic.
var (
	libraryService    driving.LibraryService
	indexingService   driving.IndexingService
	groundingService  driving.GroundingService
	evaluationService driving.EvaluationService
	settingsService   driving.SettingsService
	newWatcher        func() (driven.LibraryWatcher, error)
)

var (
	verbose bool
	ownerID string
)

var rootCmd = &cobra.Command{
	Use:   "lorebase",
	Short: "Book grounding and character evaluation for story worlds",
	Long: `Lorebase indexes book text for semantic passage retrieval and
aggregates multi-judge evaluation reports for book characters.

Books are chunked, embedded and stored locally; character conversations
judged elsewhere are ingested, averaged and classified here.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", "local", "owner ID for library operations")
}

// Services bundles the driving services the CLI depends on.
type Services struct {
	Library    driving.LibraryService
	Indexing   driving.IndexingService
	Grounding  driving.GroundingService
	Evaluation driving.EvaluationService
	Settings   driving.SettingsService

	// NewWatcher constructs a library watcher for the watch command.
	NewWatcher func() (driven.LibraryWatcher, error)
}

// SetServices wires services into the CLI commands.
func SetServices(svcs Services) {
	libraryService = svcs.Library
	indexingService = svcs.Indexing
	groundingService = svcs.Grounding
	evaluationService = svcs.Evaluation
	settingsService = svcs.Settings
	newWatcher = svcs.NewWatcher
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
