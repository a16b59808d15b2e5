package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/lint"
	"github.com/rulekit/rulekit/internal/rule"
	"github.com/rulekit/rulekit/internal/storage"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint rule documents",
	Long: `Discover rule documents in the configured directories and check them
against the validity and convention checkers.

Exit codes:
  0 - No findings (or info only)
  1 - Warnings
  2 - Errors (invalid documents)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		skipHistory, _ := cmd.Flags().GetBool("no-history")

		report, err := runLint(cmd.Context())
		if err != nil {
			return err
		}

		switch format {
		case "text":
			printReport(report)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report.Diagnostics); err != nil {
				return fmt.Errorf("encoding diagnostics: %w", err)
			}
		default:
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}

		if !skipHistory && cfg.HistoryEnabled() {
			if err := recordRun(cmd.Context(), report); err != nil {
				// History is bookkeeping; a broken database should not
				// mask the lint result.
				fmt.Fprintf(os.Stderr, "warning: recording lint run: %v\n", err)
			}
		}

		os.Exit(report.ExitCode())
		return nil
	},
}

func init() {
	lintCmd.Flags().String("format", "text", "Output format: text or json")
	lintCmd.Flags().Bool("no-history", false, "Skip recording this run in the history database")
	rootCmd.AddCommand(lintCmd)
}

// runLint discovers rules and applies the configured checkers. Shared by
// lint, watch, and doctor.
func runLint(ctx context.Context) (*lint.Report, error) {
	rules, err := rule.Discover(cfg.RulesDirs)
	if err != nil {
		return nil, err
	}

	registry := lint.DefaultRegistry()
	if err := cfg.Apply(registry); err != nil {
		return nil, err
	}

	return lint.NewRunner(registry).Run(ctx, rules)
}

// printReport writes the human-readable findings and summary line.
func printReport(report *lint.Report) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, d := range report.Diagnostics {
		glyph := cyan("·")
		switch d.Severity {
		case lint.SeverityError:
			glyph = red("✗")
		case lint.SeverityWarning:
			glyph = yellow("⚠")
		}
		fmt.Printf("%s %s\n", glyph, d)
	}

	if len(report.Diagnostics) > 0 {
		fmt.Println()
	}

	summary := fmt.Sprintf("%d file(s), %d error(s), %d warning(s) in %s",
		report.FilesScanned, report.Errors(), report.Warnings(),
		report.Duration.Round(time.Millisecond))
	switch {
	case report.Errors() > 0:
		fmt.Printf("%s %s\n", red("✗"), summary)
	case report.Warnings() > 0:
		fmt.Printf("%s %s\n", yellow("⚠"), summary)
	default:
		fmt.Printf("%s %s\n", green("✓"), summary)
	}
}

// recordRun stores the report in the history database and prunes old runs.
func recordRun(ctx context.Context, report *lint.Report) error {
	store, err := storage.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.RecordRun(ctx, report); err != nil {
		return err
	}
	return store.Prune(ctx, cfg.History.KeepRuns)
}
