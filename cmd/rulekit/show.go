package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/rule"
)

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a rule document",
	Long: `Show a discovered rule's metadata and body. NAME is the filename stem
(e.g. python-style-auto). With --raw, print the canonical serialized form
instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		rules, err := rule.Discover(cfg.RulesDirs)
		if err != nil {
			return err
		}

		var found *rule.Rule
		for _, r := range rules {
			if r.Name == args[0] {
				found = r
				break
			}
		}
		if found == nil {
			return fmt.Errorf("no rule named %q in %s", args[0], strings.Join(cfg.RulesDirs, ", "))
		}

		if raw {
			fmt.Print(string(found.Render()))
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Rule:"), found.Name)
		fmt.Printf("%s %s\n", bold("Path:"), found.Path)
		fmt.Printf("%s %s\n", bold("Kind:"), found.Kind())
		if found.Matter.Description != "" {
			fmt.Printf("%s %s\n", bold("Description:"), found.Matter.Description)
		}
		if len(found.Matter.Globs.Patterns) > 0 {
			fmt.Printf("%s %s\n", bold("Globs:"), strings.Join(found.Matter.Globs.Patterns, ", "))
		}
		fmt.Printf("\n%s\n", strings.TrimSpace(found.Body))
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "Print the canonical serialized document")
	rootCmd.AddCommand(showCmd)
}
