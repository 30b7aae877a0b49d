package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Run executes jobs numbered 0..jobs-1 on a pool of workers goroutines and
// blocks until all of them finish or ctx is cancelled. Each job's error lands
// in a per-job slot, and Run reports the error of the lowest-numbered failed
// job, so the outcome does not depend on goroutine completion order. Jobs are
// consumed in index order; a job that was already started when another job
// failed still runs to completion.
//
// workers <= 0 selects runtime.NumCPU(). With a single worker the jobs run
// sequentially on the calling goroutine.
func Run(ctx context.Context, jobs, workers int, fn func(worker, job int) error) error {
	if jobs <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > jobs {
		workers = jobs
	}

	if workers == 1 {
		for i := 0; i < jobs; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(0, i); err != nil {
				return err
			}
		}
		return nil
	}

	ch := make(chan int, workers)
	go func() {
		defer close(ch)
		for i := 0; i < jobs; i++ {
			select {
			case ch <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	errs := make([]error, jobs)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(worker int) {
			defer wg.Done()
			for job := range ch {
				if ctx.Err() != nil {
					return
				}
				errs[job] = fn(worker, job)
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
