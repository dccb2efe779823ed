package server

import (
	"sync"
)

// workerPool manages the reusable workers of the query service. The pool
// only ever grows; once created, a worker keeps its identity for the
// lifetime of the process.
type workerPool struct {
	mu      sync.Mutex // Guards workers and every busy flag
	workers []*Worker
	factory func(id int) *Worker
}

// newWorkerPool creates a pool pre-filled with initialSize workers.
// A size of zero is valid, the pool then grows on the first Acquire.
func newWorkerPool(initialSize int, factory func(id int) *Worker) *workerPool {
	initialSize = max(initialSize, 0)

	p := &workerPool{
		factory: factory,
		workers: make([]*Worker, 0, initialSize),
	}
	for i := 0; i < initialSize; i++ {
		p.workers = append(p.workers, factory(i))
	}
	return p
}

// Acquire returns a free worker, growing the pool if every worker is
// busy. It never fails and never blocks on worker availability. The lock
// is held only for the scan (and possibly the append), never while the
// worker executes.
func (p *workerPool) Acquire() *Worker {
	p.mu.Lock()
	defer p.mu.Unlock()

	// First free worker wins
	for _, w := range p.workers {
		if !w.busy {
			w.busy = true
			return w
		}
	}

	// All busy: enlarge the backing array ahead of demand, then create a
	// single new worker for this caller
	size := len(p.workers)
	if target := max(2*size, size+10); target > cap(p.workers) {
		grown := make([]*Worker, size, target)
		copy(grown, p.workers)
		p.workers = grown
	}

	w := p.factory(size)
	w.busy = true
	p.workers = append(p.workers, w)
	return w
}

// Release returns a worker to the pool
func (p *workerPool) Release(w *Worker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	w.busy = false
}

// Size returns the current number of workers
func (p *workerPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Capacity returns the reserved backing capacity of the pool
func (p *workerPool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return cap(p.workers)
}
