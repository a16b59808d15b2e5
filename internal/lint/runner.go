package lint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/rulekit/rulekit/internal/rule"
)

// Report aggregates one lint pass over a rule set.
type Report struct {
	Diagnostics  []Diagnostic
	FilesScanned int
	StartedAt    time.Time
	Duration     time.Duration
}

// Errors counts error-severity diagnostics.
func (r *Report) Errors() int { return Count(r.Diagnostics, SeverityError) }

// Warnings counts warning-severity diagnostics.
func (r *Report) Warnings() int { return Count(r.Diagnostics, SeverityWarning) }

// ExitCode implements the shared exit-code contract for this report.
func (r *Report) ExitCode() int { return ExitCode(r.Diagnostics) }

// Runner applies a registry's enabled checkers to rule sets with bounded
// concurrency. Rule files are small, but repositories can hold hundreds of
// them and checkers touch the filesystem indirectly through parsed state,
// so one goroutine per rule behind a semaphore keeps large sweeps fast
// without unbounded fan-out.
type Runner struct {
	Registry *Registry

	// MaxParallel bounds concurrent rule checks. Zero means 8.
	MaxParallel int64
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *Registry) *Runner {
	return &Runner{Registry: registry}
}

// Run checks every rule and returns the aggregated, sorted report.
func (rn *Runner) Run(ctx context.Context, rules []*rule.Rule) (*Report, error) {
	started := time.Now()

	limit := rn.MaxParallel
	if limit <= 0 {
		limit = 8
	}
	sem := semaphore.NewWeighted(limit)
	checkers := rn.Registry.Enabled()

	var (
		mu    sync.Mutex
		diags []Diagnostic
	)

	for _, r := range rules {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("acquiring lint slot: %w", err)
		}
		go func(r *rule.Rule) {
			defer sem.Release(1)
			var local []Diagnostic
			for _, c := range checkers {
				for _, d := range c.Check(ctx, r) {
					local = append(local, rn.Registry.applyOverride(d))
				}
			}
			if len(local) > 0 {
				mu.Lock()
				diags = append(diags, local...)
				mu.Unlock()
			}
		}(r)
	}

	// Draining the full weight waits for all in-flight checks.
	if err := sem.Acquire(ctx, limit); err != nil {
		return nil, fmt.Errorf("waiting for lint completion: %w", err)
	}
	sem.Release(limit)

	Sort(diags)

	return &Report{
		Diagnostics:  diags,
		FilesScanned: len(rules),
		StartedAt:    started,
		Duration:     time.Since(started),
	}, nil
}
