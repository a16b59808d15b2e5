package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/rule"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered rule documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFilter, _ := cmd.Flags().GetString("kind")

		rules, err := rule.Discover(cfg.RulesDirs)
		if err != nil {
			return err
		}
		if len(rules) == 0 {
			fmt.Printf("No rule documents found in %s\n", strings.Join(cfg.RulesDirs, ", "))
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%-32s %-8s %-28s %s\n", bold("NAME"), bold("KIND"), bold("GLOBS"), bold("DESCRIPTION"))

		shown := 0
		for _, r := range rules {
			kind := r.Kind()
			if kindFilter != "" && string(kind) != kindFilter {
				continue
			}
			fmt.Printf("%-32s %-8s %-28s %s\n",
				truncate(r.Name, 32),
				kind,
				truncate(strings.Join(r.Matter.Globs.Patterns, ","), 28),
				truncate(r.Matter.Description, 48),
			)
			shown++
		}

		if verbose {
			fmt.Printf("\n%d of %d rule(s) shown\n", shown, len(rules))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("kind", "", "Only show rules of this kind (always, auto, agent, manual)")
	rootCmd.AddCommand(listCmd)
}

// truncate shortens s to max runes. Cutting by byte offset would split
// multibyte characters mid-sequence.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
