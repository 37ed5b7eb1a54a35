package imp

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// workerCount resolves the number of workers to use for n rows. It never
// exceeds GOMAXPROCS nor the number of rows.
func workerCount(workers, n int) int {
	procs := runtime.GOMAXPROCS(0)
	if workers <= 0 || workers > procs {
		workers = procs
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// parallelRows splits [0, rows) into contiguous blocks, one per worker, and
// calls fn on each of them concurrently. It returns once every block is done.
func parallelRows(rows, workers int, fn func(start, end int) error) error {
	if rows <= 0 {
		return nil
	}

	workers = workerCount(workers, rows)
	if workers == 1 {
		return fn(0, rows)
	}

	chunk := (rows + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < rows; start += chunk {
		start, end := start, start+chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
