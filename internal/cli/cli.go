package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hpowernl/nginx2json/internal/aggregators"
	"github.com/hpowernl/nginx2json/internal/export"
	"github.com/hpowernl/nginx2json/internal/logreader"
	"github.com/hpowernl/nginx2json/internal/parser"
	"github.com/hpowernl/nginx2json/internal/ui"
	"github.com/hpowernl/nginx2json/internal/useragent"
	"github.com/hpowernl/nginx2json/pkg/models"
)

var (
	// Flags
	inputPath      string
	outputPath     string
	prettyOutput   bool
	showSummary    bool
	wrapOutput     bool
	strictMode     bool
	noColor        bool
	errorLogPath   string
	classifierName string
	summaryCSVPath string
	summaryJSON    string
)

// errStrict marks a completed run whose input contained unparsable lines
var errStrict = errors.New("input contained unparsable lines")

// RootCmd is the root command
var RootCmd = &cobra.Command{
	Use:   "nginx2json",
	Short: "Parse Nginx combined access logs into enriched JSON",
	Long: `nginx2json reads Nginx 'combined' access logs, turns each line into a
structured JSON record, and enriches it with browser / OS / device
information parsed from the User-Agent header.

Unparsable lines are kept in the output with parse_ok=false and can be
written to a separate error log. Under --strict the process exits with
code 2 when any line failed to parse, after the full output is written.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runParse,
}

func init() {
	RootCmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Input log file ('-' for stdin)")
	RootCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "Output JSON file ('-' for stdout)")
	RootCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "Pretty-print JSON output")
	RootCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a summary report to the terminal")
	RootCmd.Flags().BoolVar(&wrapOutput, "wrap", false, "Wrap the record list with run metadata")
	RootCmd.Flags().BoolVar(&strictMode, "strict", false, "Exit with code 2 if any line failed to parse")
	RootCmd.Flags().StringVar(&errorLogPath, "errors", "", "Path for a plain-text error log of failed lines")
	RootCmd.Flags().StringVar(&classifierName, "classifier", "auto", "UA classifier: auto, library, heuristic")
	RootCmd.Flags().StringVar(&summaryCSVPath, "summary-csv", "", "Export summary statistics to a CSV file")
	RootCmd.Flags().StringVar(&summaryJSON, "summary-json", "", "Export summary statistics to a JSON file")
	RootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 1 on file-level failure, 2 on a strict-mode violation.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errStrict) {
			return 2
		}
		return 1
	}
	return 0
}

func runParse(cmd *cobra.Command, args []string) error {
	start := time.Now()

	classifier, err := useragent.Select(classifierName)
	if err != nil {
		return err
	}

	reader := logreader.New(parser.New(classifier))
	recordChan, errorChan := reader.Read(context.Background(), inputPath)

	agg := aggregators.NewSummaryAggregator()
	records := make([]*models.LogRecord, 0)
	for record := range recordChan {
		records = append(records, record)
		agg.Add(record)
	}

	// File-level failures abort before any output is produced.
	if err := <-errorChan; err != nil {
		return err
	}

	summary := agg.GetSummary()
	exporter := export.NewDataExporter()

	var meta *models.RunMetadata
	if wrapOutput {
		meta = &models.RunMetadata{
			Source:          inputPath,
			GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
			DurationMS:      time.Since(start).Milliseconds(),
			TotalLines:      summary.TotalLines,
			ParseErrors:     summary.ParseErrors,
			UserAgentParser: classifier.Variant(),
		}
	}

	if err := exporter.WriteRecords(records, outputPath, prettyOutput, wrapOutput, meta); err != nil {
		return err
	}
	if outputPath != "" && outputPath != "-" {
		fmt.Fprintf(os.Stderr, "Output written to %s\n", outputPath)
	}

	if errorLogPath != "" && summary.ParseErrors > 0 {
		if err := exporter.WriteErrorLog(records, errorLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write error log %s: %v\n", errorLogPath, err)
		}
	}

	if summaryCSVPath != "" {
		if err := exporter.ExportSummaryCSV(summary, summaryCSVPath); err != nil {
			return err
		}
	}
	if summaryJSON != "" {
		if err := exporter.ExportSummaryJSON(summary, summaryJSON); err != nil {
			return err
		}
	}

	if showSummary {
		consoleUI := ui.NewConsoleUI(!noColor)
		consoleUI.DisplaySummary(summary)
	}

	// Strict mode signals failure only after the complete output is written.
	if strictMode && summary.ParseErrors > 0 {
		return errStrict
	}

	return nil
}
