package rule

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the given rule directories and loads every rule document
// found. Roots that do not exist are skipped so a fresh checkout without a
// rules directory yields an empty set rather than an error. Results are
// ordered by path for deterministic output.
func Discover(roots []string) ([]*Rule, error) {
	var paths []string

	for _, root := range roots {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat rules dir %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("rules path %s is not a directory", root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// The root itself may be dotted (.cursor/rules); only
				// skip dotted directories below it.
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isRuleFile(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking rules dir %s: %w", root, err)
		}
	}

	sort.Strings(paths)

	rules := make([]*Rule, 0, len(paths))
	for _, path := range paths {
		r, err := Load(path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}

	return rules, nil
}

// isRuleFile matches .mdc files plus .mdc.md strays, which get loaded so
// the naming checker can flag the double extension.
func isRuleFile(name string) bool {
	return strings.HasSuffix(name, ".mdc") || strings.HasSuffix(name, ".mdc.md")
}
