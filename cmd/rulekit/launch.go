package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/launchcfg"
	"github.com/rulekit/rulekit/internal/lint"
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Inspect IDE debug launch configurations",
}

var launchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List launch configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := launchcfg.Load(cfg.LaunchPath)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%-36s %-10s %-8s %s\n", bold("NAME"), bold("TYPE"), bold("REQUEST"), bold("TARGET"))
		for _, c := range f.Configurations {
			target := c.Program
			if c.Module != "" {
				target = "module " + c.Module
			}
			fmt.Printf("%-36s %-10s %-8s %s\n", truncate(c.Name, 36), c.Type, c.Request, target)
		}
		return nil
	},
}

var launchLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the launch configuration file",
	Long: `Validate launch.json against the IDE schema core.

Exit codes match rulekit lint: 0 clean, 1 warnings, 2 errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := launchcfg.Load(cfg.LaunchPath)
		if err != nil {
			// An unreadable or undecodable file is the error tier.
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
			os.Exit(2)
		}

		diags := launchcfg.Validate(f, filepath.Dir(filepath.Dir(cfg.LaunchPath)))
		for _, d := range diags {
			glyph := color.YellowString("⚠")
			if d.Severity == lint.SeverityError {
				glyph = color.RedString("✗")
			}
			fmt.Printf("%s %s\n", glyph, d)
		}
		if len(diags) == 0 {
			fmt.Printf("%s %s: %d configuration(s) valid\n", color.GreenString("✓"), cfg.LaunchPath, len(f.Configurations))
		}

		os.Exit(lint.ExitCode(diags))
		return nil
	},
}

func init() {
	launchCmd.AddCommand(launchListCmd)
	launchCmd.AddCommand(launchLintCmd)
	rootCmd.AddCommand(launchCmd)
}
