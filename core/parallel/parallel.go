// Package parallel holds the small concurrency helpers shared by the fitting
// and evaluation code: a chunked parallel-for over index ranges and a worker
// pool for independent numbered jobs.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits the half-open range [0, items) into one contiguous
// chunk per available CPU and calls fn(start, end) for each chunk on its
// own goroutine, blocking until all chunks are done. fn must be safe to
// call concurrently on disjoint ranges.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold behaves like Parallelize once items exceeds
// threshold. Below it the whole range is handled in a single sequential
// call, since goroutine startup costs more than the work it would split.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
