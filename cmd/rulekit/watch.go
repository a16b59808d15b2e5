package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-lint rule documents when they change",
	Long: `Watch the configured rule directories (and launch.json, if present) and
re-run the lint sweep whenever a rule document changes. Editor save bursts
are debounced into a single sweep. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cycle := func() {
			fmt.Printf("%s lint sweep at %s\n", color.CyanString("→"), time.Now().Format("15:04:05"))
			report, err := runLint(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint failed: %v\n", err)
				return
			}
			printReport(report)
			fmt.Println()

			if cfg.HistoryEnabled() {
				if err := recordRun(ctx, report); err != nil {
					fmt.Fprintf(os.Stderr, "warning: recording lint run: %v\n", err)
				}
			}
		}

		// One sweep up front so the first save is not the first feedback.
		cycle()

		w := &watch.Watcher{
			Dirs:     cfg.RulesDirs,
			Files:    []string{cfg.LaunchPath},
			Debounce: debounce,
			OnChange: cycle,
		}

		fmt.Printf("Watching %d rule dir(s). Press Ctrl+C to stop.\n\n", len(cfg.RulesDirs))
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		fmt.Println("\nStopped.")
		return nil
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "Quiet period before re-linting after a change")
	rootCmd.AddCommand(watchCmd)
}
