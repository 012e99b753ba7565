package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

var evaluateExcludeJudge string

var evaluateCmd = &cobra.Command{
	Use:     "evaluate",
	Aliases: []string{"eval"},
	Short:   "Ingest judge reports and classify evaluation runs",
}

var evaluateIngestCmd = &cobra.Command{
	Use:   "ingest [character-id] [reports-file]",
	Short: "Store a batch of judge reports",
	Long: `Reads a JSON array of judge reports from reports-file and stores
them for the character. Reports are immutable once ingested.`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluateIngest,
}

var evaluateRunCmd = &cobra.Command{
	Use:   "run [character-id] [scores-file]",
	Short: "Classify a complete score set for a character",
	Long: `Reads a JSON object with a complete seven-dimension score map (and
optional suggestions) from scores-file, classifies it, stores the
result and reports drift against the character's previous evaluation.

Input format:
  {
    "scores": {"voiceFidelity": 4, "personalityConsistency": 5, ...},
    "suggestions": ["tighten the voice"]
  }`,
	Args: cobra.ExactArgs(2),
	RunE: runEvaluateRun,
}

var evaluateReportCmd = &cobra.Command{
	Use:   "report [character-id]",
	Short: "Show the judge agreement heatmap and collected concerns",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluateReport,
}

func init() {
	evaluateReportCmd.Flags().StringVar(&evaluateExcludeJudge, "exclude-judge", "", "judge ID to exclude from concerns")
	evaluateCmd.AddCommand(evaluateIngestCmd)
	evaluateCmd.AddCommand(evaluateRunCmd)
	evaluateCmd.AddCommand(evaluateReportCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluateIngest(cmd *cobra.Command, args []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading reports file: %w", err)
	}

	var reports []domain.JudgeReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return fmt.Errorf("parsing reports file: %w", err)
	}

	if err := evaluationService.IngestReports(cmd.Context(), args[0], reports); err != nil {
		return fmt.Errorf("ingesting reports: %w", err)
	}

	cmd.Printf("Ingested %d reports\n", len(reports))
	return nil
}

// scoresFile is the input format for evaluate run.
type scoresFile struct {
	Scores      map[domain.Dimension]int `json:"scores"`
	Suggestions []string                 `json:"suggestions"`
}

func runEvaluateRun(cmd *cobra.Command, args []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading scores file: %w", err)
	}

	var input scoresFile
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parsing scores file: %w", err)
	}

	result, alert, err := evaluationService.Evaluate(cmd.Context(), args[0], input.Scores, input.Suggestions)
	if err != nil {
		return fmt.Errorf("evaluating: %w", err)
	}

	verdict := "FAIL"
	if result.Passed {
		verdict = "PASS"
	}
	cmd.Printf("Total:  %d/35 (%s, %s)\n", result.TotalScore, verdict, result.Rating)
	for _, dim := range domain.Dimensions() {
		cmd.Printf("  %-24s %d  %s\n", dim, result.Scores[dim], domain.SeverityFor(float64(result.Scores[dim])))
	}
	if len(result.Suggestions) > 0 {
		cmd.Println("Suggestions:")
		for _, suggestion := range result.Suggestions {
			cmd.Printf("  - %s\n", suggestion)
		}
	}

	if alert != nil {
		cmd.Println()
		cmd.Printf("Drift: total moved %+d (from %d to %d)\n", alert.Delta, alert.PreviousTotal, alert.CurrentTotal)
		if alert.DefinitionChanged {
			cmd.Println("       definition changed since the previous run")
		}
	}
	return nil
}

func runEvaluateReport(cmd *cobra.Command, args []string) error {
	if evaluationService == nil {
		return errors.New("evaluation service not configured")
	}

	reports, err := evaluationService.Reports(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading reports: %w", err)
	}
	if len(reports) == 0 {
		cmd.Println("No judge reports ingested for this character.")
		return nil
	}

	cmd.Printf("Heatmap (%d judges):\n", len(reports))
	for _, row := range evaluationService.Heatmap(reports) {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, fmt.Sprintf("%s=%.1f", cell.JudgeID, cell.Average))
		}
		flag := ""
		if row.HighVariance {
			flag = "  [judges disagree]"
		}
		cmd.Printf("  %-24s %s%s\n", row.Dimension, strings.Join(cells, "  "), flag)
	}

	concerns := evaluationService.Concerns(reports, evaluateExcludeJudge)
	sort.Strings(concerns)
	if len(concerns) > 0 {
		cmd.Println()
		cmd.Println("Concerns:")
		for _, concern := range concerns {
			cmd.Printf("  - %s\n", concern)
		}
	}
	return nil
}
