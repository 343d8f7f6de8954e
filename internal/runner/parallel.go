package runner

import (
	"context"
	"sync"

	"github.com/flowcap/flowcap/internal/scenario"
)

// Job pairs a scenario with the Options its Runner is created with.
type Job struct {
	Scenario *scenario.Scenario
	Options  Options
}

// RunAll runs jobs with at most workers running concurrently, using a
// channel semaphore plus sync.WaitGroup (spec §5: "workers=N runs at most
// N scenarios concurrently"). golang.org/x/sync/errgroup is not used here:
// no job's failure should cancel the others (each scenario is independent,
// spec §5's "no cross-scenario ordering guarantee"), which is exactly the
// behavior errgroup's first-error cancellation would break.
//
// Results preserve jobs' input order (Property: "aggregate result
// ordering follows input order"), regardless of completion order.
func RunAll(ctx context.Context, jobs []Job, workers int) ([]*scenario.ScenarioResult, []error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*scenario.ScenarioResult, len(jobs))
	errs := make([]error, len(jobs))

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			r := New(job.Options, nil)
			results[i], errs[i] = r.Run(ctx, job.Scenario)
		}(i, job)
	}

	wg.Wait()
	return results, errs
}
