package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulekit/rulekit/internal/rule"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Normalize rule document formatting",
	Long: `Rewrite rule documents into canonical form: front-matter keys in
description/globs/alwaysApply order, bare comma-separated globs, one blank
line after the closing fence.

Without flags, files that would change are listed. --write rewrites them
in place; --check lists them and exits 1 if any differ.

Documents with no front-matter fence or with unparseable front-matter are
skipped: fmt never rewrites a file it cannot faithfully reproduce, and
adding a fence is a decision for the author, not the formatter. Run lint
to find them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		check, _ := cmd.Flags().GetBool("check")
		if write && check {
			return fmt.Errorf("--write and --check are mutually exclusive")
		}

		rules, err := rule.Discover(cfg.RulesDirs)
		if err != nil {
			return err
		}

		changed := 0
		for _, r := range rules {
			if !fmtEligible(r) {
				if verbose {
					fmt.Fprintf(os.Stderr, "skipping %s: front-matter needs manual attention\n", r.Path)
				}
				continue
			}

			original, err := os.ReadFile(r.Path)
			if err != nil {
				return fmt.Errorf("re-reading %s: %w", r.Path, err)
			}
			canonical := r.Render()
			if bytes.Equal(original, canonical) {
				continue
			}
			changed++

			if write {
				if err := writeAtomic(r.Path, canonical); err != nil {
					return err
				}
				fmt.Printf("rewrote %s\n", r.Path)
			} else {
				fmt.Println(r.Path)
			}
		}

		if check && changed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().Bool("write", false, "Rewrite files in place")
	fmtCmd.Flags().Bool("check", false, "Exit 1 if any file is not canonical")
	rootCmd.AddCommand(fmtCmd)
}

// fmtEligible reports whether fmt may rewrite a document. Files with no
// front-matter fence, or with front-matter the parser could not decode
// faithfully, are left for the author; the linter reports them instead.
func fmtEligible(r *rule.Rule) bool {
	return r.HasFrontMatter &&
		r.MatterErr == nil &&
		!r.UnclosedFence &&
		len(r.KeyErrors) == 0 &&
		len(r.UnknownKeys) == 0
}

// writeAtomic replaces path via a temp file and rename so a crash cannot
// leave a half-written rule.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
