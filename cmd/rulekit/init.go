package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/config"
	"github.com/rulekit/rulekit/internal/rule"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold the rules directory and config",
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen).SprintFunc()

		rulesDir := cfg.RulesDirs[0]
		if err := os.MkdirAll(rulesDir, 0755); err != nil {
			return fmt.Errorf("creating rules directory: %w", err)
		}
		fmt.Printf("%s %s\n", green("✓"), rulesDir)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			if err := config.Save(cfgPath, config.Default()); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", green("✓"), cfgPath)
		} else {
			fmt.Printf("%s %s already exists, left untouched\n", green("✓"), cfgPath)
		}
		return nil
	},
}

var initRuleCmd = &cobra.Command{
	Use:   "rule NAME",
	Short: "Scaffold a new rule document",
	Long: `Create NAME-KIND.mdc in the first configured rules directory, with
front-matter matching the kind and a starter body.

Examples:
  rulekit init rule python-style --kind auto --globs 'src/**/*.py' --description 'Python conventions'
  rulekit init rule tdd-workflow --kind agent --description 'TDD reminders for new features'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		description, _ := cmd.Flags().GetString("description")
		globsFlag, _ := cmd.Flags().GetStringSlice("globs")

		name := args[0]
		kind := rule.Kind(kindFlag)

		data, err := rule.Scaffold(name, kind, description, globsFlag)
		if err != nil {
			return err
		}

		filename := name
		if !strings.HasSuffix(filename, "-"+kindFlag) {
			filename += "-" + kindFlag
		}
		path := filepath.Join(cfg.RulesDirs[0], filename+".mdc")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating rules directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing rule: %w", err)
		}

		fmt.Printf("%s %s\n", color.GreenString("✓"), path)
		return nil
	},
}

func init() {
	initRuleCmd.Flags().String("kind", "agent", "Rule kind: always, auto, agent, or manual")
	initRuleCmd.Flags().String("description", "", "Front-matter description")
	initRuleCmd.Flags().StringSlice("globs", nil, "Glob patterns for auto rules")
	initCmd.AddCommand(initRuleCmd)
	rootCmd.AddCommand(initCmd)
}
