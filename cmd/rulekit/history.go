package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/lint"
	"github.com/rulekit/rulekit/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := storage.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No lint runs recorded yet. Run rulekit lint first.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%-10s %-20s %-7s %-7s %-9s %s\n",
			bold("RUN"), bold("STARTED"), bold("FILES"), bold("ERRORS"), bold("WARNINGS"), bold("DURATION"))
		for _, run := range runs {
			status := green(fmt.Sprintf("%-7d", run.Errors))
			if run.Errors > 0 {
				status = red(fmt.Sprintf("%-7d", run.Errors))
			}
			warnings := fmt.Sprintf("%-9d", run.Warnings)
			if run.Warnings > 0 {
				warnings = yellow(warnings)
			}
			fmt.Printf("%-10s %-20s %-7d %s %s %s\n",
				run.ID[:8],
				run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				run.FilesScanned,
				status,
				warnings,
				run.Duration,
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show RUN",
	Short: "Show one run's diagnostics",
	Long:  `Show the diagnostics recorded for a run. RUN is a run ID or unique prefix, as printed by rulekit history.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		run, diags, err := store.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Run %s at %s: %d file(s), %d error(s), %d warning(s)\n\n",
			run.ID[:8], run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FilesScanned, run.Errors, run.Warnings)

		if len(diags) == 0 {
			fmt.Printf("%s clean run\n", color.GreenString("✓"))
			return nil
		}
		for _, d := range diags {
			glyph := color.CyanString("·")
			switch d.Severity {
			case lint.SeverityError:
				glyph = color.RedString("✗")
			case lint.SeverityWarning:
				glyph = color.YellowString("⚠")
			}
			fmt.Printf("%s %s\n", glyph, d)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum runs to list")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
