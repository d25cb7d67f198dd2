package renderer

import (
	"golang.org/x/sync/errgroup"
)

// WorkerPool renders an image with rows interleaved across workers.
// Worker i owns rows i, i+n, i+2n... so no two workers write the same
// pixel and the surface needs no locking.
type WorkerPool struct {
	raytracer *Raytracer
	surface   Surface
	workers   []*Worker
}

// Worker renders the rows it owns
type Worker struct {
	ID   int
	pool *WorkerPool
}

// NewWorkerPool creates a pool with the given number of workers
func NewWorkerPool(rt *Raytracer, surface Surface, numWorkers int) *WorkerPool {
	wp := &WorkerPool{
		raytracer: rt,
		surface:   surface,
	}
	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, pool: wp})
	}
	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Run renders every row and returns when all workers are done. Only worker 0
// calls refresh, counting its own finished rows, so progress reporting needs
// no shared counter.
func (wp *WorkerPool) Run(refresh RefreshFunc) error {
	var g errgroup.Group
	for _, worker := range wp.workers {
		var workerRefresh RefreshFunc
		if worker.ID == 0 {
			workerRefresh = refresh
		}
		g.Go(func() error {
			return worker.run(workerRefresh)
		})
	}
	return g.Wait()
}

func (w *Worker) run(refresh RefreshFunc) error {
	w.pool.raytracer.renderRows(w.pool.surface, w.ID, len(w.pool.workers), refresh)
	return nil
}
