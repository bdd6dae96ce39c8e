package validate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matsen/refcheck/internal/dblp"
	"github.com/matsen/refcheck/internal/reference"
)

const initialBackoff = time.Second

// RunConfig configures a batch run.
type RunConfig struct {
	Threshold     float64 // Title-gate threshold (0 = default)
	Workers       int     // Parallel lookups (0 = 1); classification itself is cheap and stays per-reference
	RetryLimit    int     // Transient-failure retries per lookup
	MaxReferences int     // Cap on batch size (0 = all)
}

// ProgressFunc receives progress updates as references complete.
type ProgressFunc func(done, total int)

// Runner executes a batch of validations. Rate limiting across workers
// is the lookup client's job (its limiter is shared); the runner only
// bounds parallelism, retries transient failures, and keeps results in
// input order.
type Runner struct {
	validator  *Validator
	retryLimit int
	workers    int
	maxRefs    int
	backoff    time.Duration
	progress   ProgressFunc
}

// NewRunner creates a Runner over the given lookup.
func NewRunner(lookup TitleLookup, cfg RunConfig) *Runner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		validator:  NewValidator(lookup, cfg.Threshold),
		retryLimit: cfg.RetryLimit,
		workers:    workers,
		maxRefs:    cfg.MaxReferences,
		backoff:    initialBackoff,
	}
}

// SetProgress sets an optional progress callback. It is invoked
// serially even when workers run in parallel.
func (r *Runner) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Run validates references with bounded parallelism and returns results
// in input order regardless of completion order. Cancellation stops new
// lookups but keeps every already-validated result; references never
// attempted are omitted, so a partial report stays truthful.
func (r *Runner) Run(ctx context.Context, refs []reference.Reference) []reference.ValidationResult {
	if r.maxRefs > 0 && len(refs) > r.maxRefs {
		refs = refs[:r.maxRefs]
	}

	slots := make([]*reference.ValidationResult, len(refs))
	var mu sync.Mutex
	done := 0

	g := new(errgroup.Group)
	g.SetLimit(r.workers)

	for i := range refs {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			res := r.validateWithRetry(ctx, refs[i])
			mu.Lock()
			slots[i] = &res
			done++
			if r.progress != nil {
				r.progress(done, len(refs))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	results := make([]reference.ValidationResult, 0, len(refs))
	for _, s := range slots {
		if s != nil {
			results = append(results, *s)
		}
	}
	return results
}

// validateWithRetry retries transient lookup failures with exponential
// backoff. Exhausting the budget degrades the reference to
// NoCanonicalMatch with the failure reason retained; the batch
// continues either way.
func (r *Runner) validateWithRetry(ctx context.Context, ref reference.Reference) reference.ValidationResult {
	backoff := r.backoff
	var lastErr error

	for attempt := 0; attempt <= r.retryLimit; attempt++ {
		res, err := r.validator.Validate(ctx, ref)
		if err == nil {
			return res
		}
		lastErr = err

		if !dblp.IsTransient(err) || attempt == r.retryLimit {
			break
		}

		select {
		case <-ctx.Done():
			return failedResult(ref, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return failedResult(ref, lastErr)
}

func failedResult(ref reference.Reference, err error) reference.ValidationResult {
	return reference.ValidationResult{
		Reference:   ref,
		Kind:        reference.KindNoCanonicalMatch,
		FailureNote: err.Error(),
	}
}
