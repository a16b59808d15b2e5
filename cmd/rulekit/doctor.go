package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/launchcfg"
	"github.com/rulekit/rulekit/internal/rule"
	"github.com/rulekit/rulekit/internal/storage"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check rulekit configuration and environment health",
	Long: `Run health checks to diagnose common rulekit configuration issues.

This command checks for:
- Config file validity
- Rule directory existence
- Rule document parseability
- launch.json presence and decodability
- History database accessibility
- Git repository status

Exit codes:
  0 - All checks passed
  1 - Warnings only
  2 - One or more checks failed`,
	Run: func(cmd *cobra.Command, args []string) {
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Printf("Running rulekit health checks...\n\n")

		var failures []string
		var warnings []string

		// Check 1: Config file. PersistentPreRunE already loaded it, so a
		// reachable doctor means the config parsed; report which one is live.
		fmt.Printf("%s Configuration\n", cyan("→"))
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			warnings = append(warnings, fmt.Sprintf("No config file at %s (using defaults)", cfgPath))
			fmt.Printf("  %s No config file at %s, using defaults\n", yellow("⚠"), cfgPath)
		} else {
			fmt.Printf("  %s Loaded %s\n", green("✓"), cfgPath)
		}

		// Check 2: Rule directories
		fmt.Printf("%s Rule directories\n", cyan("→"))
		existing := 0
		for _, dir := range cfg.RulesDirs {
			if info, err := os.Stat(dir); err != nil {
				fmt.Printf("  %s %s does not exist\n", yellow("⚠"), dir)
			} else if !info.IsDir() {
				failures = append(failures, fmt.Sprintf("%s is not a directory", dir))
				fmt.Printf("  %s %s is not a directory\n", red("✗"), dir)
			} else {
				existing++
				fmt.Printf("  %s %s\n", green("✓"), dir)
			}
		}
		if existing == 0 {
			warnings = append(warnings, "No rule directories exist yet (run rulekit init)")
		}

		// Check 3: Rule documents parse
		fmt.Printf("%s Rule documents\n", cyan("→"))
		rules, err := rule.Discover(cfg.RulesDirs)
		if err != nil {
			failures = append(failures, fmt.Sprintf("Discovering rules: %v", err))
			fmt.Printf("  %s Discovery failed: %v\n", red("✗"), err)
		} else {
			broken := 0
			for _, r := range rules {
				if r.MatterErr != nil || r.UnclosedFence {
					broken++
					if verbose {
						fmt.Printf("    %s\n", r.Path)
					}
				}
			}
			if broken > 0 {
				failures = append(failures, fmt.Sprintf("%d rule document(s) with unparseable front-matter", broken))
				fmt.Printf("  %s %d of %d document(s) have unparseable front-matter\n", red("✗"), broken, len(rules))
			} else {
				fmt.Printf("  %s %d document(s) parse cleanly\n", green("✓"), len(rules))
			}
		}

		// Check 4: launch.json
		fmt.Printf("%s Launch configuration\n", cyan("→"))
		if _, err := os.Stat(cfg.LaunchPath); os.IsNotExist(err) {
			warnings = append(warnings, fmt.Sprintf("No launch configuration at %s", cfg.LaunchPath))
			fmt.Printf("  %s %s not found\n", yellow("⚠"), cfg.LaunchPath)
		} else if f, err := launchcfg.Load(cfg.LaunchPath); err != nil {
			failures = append(failures, fmt.Sprintf("launch.json does not decode: %v", err))
			fmt.Printf("  %s %s does not decode\n", red("✗"), cfg.LaunchPath)
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			fmt.Printf("  %s %s (%d configuration(s))\n", green("✓"), cfg.LaunchPath, len(f.Configurations))
		}

		// Check 5: History database
		fmt.Printf("%s History database\n", cyan("→"))
		if !cfg.HistoryEnabled() {
			fmt.Printf("  %s History disabled in config, skipping\n", green("✓"))
		} else if store, err := storage.Open(cfg.History.Path); err != nil {
			failures = append(failures, fmt.Sprintf("Cannot open history database: %v", err))
			fmt.Printf("  %s Cannot open %s\n", red("✗"), cfg.History.Path)
			if verbose {
				fmt.Printf("    Error: %v\n", err)
			}
		} else {
			runs, err := store.ListRuns(cmd.Context(), 1)
			store.Close()
			if err != nil {
				failures = append(failures, fmt.Sprintf("History database query failed: %v", err))
				fmt.Printf("  %s Query failed: %v\n", red("✗"), err)
			} else if len(runs) == 0 {
				fmt.Printf("  %s %s accessible (no runs recorded yet)\n", green("✓"), cfg.History.Path)
			} else {
				fmt.Printf("  %s %s accessible, last run %s\n", green("✓"), cfg.History.Path,
					runs[0].StartedAt.Local().Format("2006-01-02 15:04:05"))
			}
		}

		// Check 6: Git repository
		fmt.Printf("%s Git repository\n", cyan("→"))
		if _, err := os.Stat(".git"); err != nil {
			warnings = append(warnings, "Not at a git repository root (rule changes will not be tracked)")
			fmt.Printf("  %s No .git directory here\n", yellow("⚠"))
		} else {
			fmt.Printf("  %s Git repository present\n", green("✓"))
		}

		// Summary
		fmt.Printf("\n%s\n", cyan("─────────────────────────────────"))
		switch {
		case len(failures) > 0:
			fmt.Printf("%s %d check(s) failed, %d warning(s)\n", red("✗"), len(failures), len(warnings))
			for _, f := range failures {
				fmt.Printf("  %s %s\n", red("✗"), f)
			}
			for _, w := range warnings {
				fmt.Printf("  %s %s\n", yellow("⚠"), w)
			}
			os.Exit(2)
		case len(warnings) > 0:
			fmt.Printf("%s All checks passed with %d warning(s)\n", yellow("⚠"), len(warnings))
			for _, w := range warnings {
				fmt.Printf("  %s %s\n", yellow("⚠"), w)
			}
			os.Exit(1)
		default:
			fmt.Printf("%s All checks passed\n", green("✓"))
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
