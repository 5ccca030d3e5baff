package status

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// maxConcurrentPosts bounds the status fan-out across targets.
const maxConcurrentPosts = 4

// TargetResult is the outcome of posting to one target.
type TargetResult struct {
	ID       string
	Provider Provider
	Err      error
}

// Target pairs a reporter with its display ID and retry policy.
type Target struct {
	ID       string
	Reporter Reporter
	Retry    Retryer
}

// Fanout posts the same BuildResult to every target concurrently under
// a bounded semaphore. All targets are attempted regardless of
// individual failures; results come back in target order.
func Fanout(ctx context.Context, targets []Target, result BuildResult) []TargetResult {
	results := make([]TargetResult, len(targets))

	sem := semaphore.NewWeighted(maxConcurrentPosts)
	var wg sync.WaitGroup

	for i, t := range targets {
		wg.Add(1)
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = TargetResult{ID: t.ID, Provider: t.Reporter.Provider(), Err: err}
			wg.Done()
			continue
		}
		go func(i int, t Target) {
			defer wg.Done()
			defer sem.Release(1)

			results[i] = TargetResult{
				ID:       t.ID,
				Provider: t.Reporter.Provider(),
				Err:      t.Retry.Report(ctx, t.Reporter, result),
			}
		}(i, t)
	}

	wg.Wait()
	return results
}
