// Package watch re-runs lint sweeps when rule documents change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Watcher debounces filesystem events on rule directories into lint
// cycles. Editors fire bursts of Create/Write/Rename on a single save, so
// events only arm a timer; the callback runs once the burst settles, and a
// rate limiter enforces a floor between consecutive cycles no matter how
// fast files keep changing.
type Watcher struct {
	// Dirs to watch recursively one level deep (rule trees are flat or
	// nearly so; new subdirectories are picked up on the next start).
	Dirs []string

	// Files to watch individually (the launch config).
	Files []string

	// Debounce is the quiet period after the last event. Default 300ms.
	Debounce time.Duration

	// MinInterval is the floor between lint cycles. Default 1s.
	MinInterval time.Duration

	// OnChange runs after each settled burst.
	OnChange func()
}

// Run blocks, invoking OnChange on settled change bursts, until ctx is
// canceled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return fmt.Errorf("watcher needs an OnChange callback")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	minInterval := w.MinInterval
	if minInterval <= 0 {
		minInterval = time.Second
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fw.Close()

	watched := 0
	for _, dir := range w.Dirs {
		added, err := addTree(fw, dir)
		if err != nil {
			return err
		}
		watched += added
	}
	for _, file := range w.Files {
		// Watch the parent so atomic-save renames are still seen.
		parent := filepath.Dir(file)
		if _, err := os.Stat(parent); err == nil {
			if err := fw.Add(parent); err != nil {
				return fmt.Errorf("watching %s: %w", parent, err)
			}
			watched++
		}
	}
	if watched == 0 {
		return fmt.Errorf("nothing to watch")
	}

	limiter := rate.NewLimiter(rate.Every(minInterval), 1)
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			pending = true
			// Drain a fired-but-unread tick before re-arming, or the
			// next loop iteration would see a stale expiry and cut the
			// debounce window short.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("filesystem watcher: %w", err)

		case <-timer.C:
			if !pending {
				continue
			}
			if !limiter.Allow() {
				// Too soon after the last cycle; try again once the
				// floor has passed.
				timer.Reset(minInterval)
				continue
			}
			pending = false
			w.OnChange()
		}
	}
}

// addTree watches dir and its immediate subdirectories, returning how
// many watches were added.
func addTree(fw *fsnotify.Watcher, dir string) (int, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("watch path %s is not a directory", dir)
	}
	if err := fw.Add(dir); err != nil {
		return 0, fmt.Errorf("watching %s: %w", dir, err)
	}
	added := 1

	entries, err := os.ReadDir(dir)
	if err != nil {
		return added, fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if err := fw.Add(filepath.Join(dir, entry.Name())); err != nil {
				return added, fmt.Errorf("watching %s: %w", filepath.Join(dir, entry.Name()), err)
			}
			added++
		}
	}
	return added, nil
}

// relevant filters events down to rule documents and launch configs.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".mdc") ||
		strings.HasSuffix(name, ".mdc.md") ||
		name == "launch.json"
}
