package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/lint"
)

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List available lint checks",
	Long: `List every lint check, whether config enables it, and what it looks
for. Check names are the keys used under checks: in .rulekit.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := lint.DefaultRegistry()
		if err := cfg.Apply(registry); err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%-14s %-9s %s\n", bold("NAME"), bold("ENABLED"), bold("DESCRIPTION"))
		for _, status := range registry.All() {
			enabled := color.GreenString("yes")
			if !status.Enabled {
				enabled = color.YellowString("no")
			}
			fmt.Printf("%-14s %-9s %s\n", status.Name(), enabled, status.Description())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
}
