// rulekit keeps AI-assistant rule documents and IDE launch configurations
// healthy: it discovers and lints .mdc rule files, normalizes their
// front-matter, validates launch.json, and records lint history.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/config"
)

const version = "0.1.0"

var (
	cfgPath string
	noColor bool
	verbose bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "rulekit",
	Short: "Lint and manage AI-assistant rule documents",
	Long: `rulekit keeps a project's AI-assistant rule documents (.mdc files with
YAML front-matter) and IDE debug launch configurations healthy.

It discovers rule files, validates front-matter and body conventions,
normalizes formatting, validates .vscode/launch.json, and keeps a local
history of lint runs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return cfg.CheckMinVersion(version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "Path to the rulekit config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
}

func main() {
	// NO_COLOR is honored by the color package itself; the flag is for
	// scripts that cannot set env vars.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
