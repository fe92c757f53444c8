// Package parallel provides the worker pool that full-screen passes use to
// process horizontal bands of a framebuffer concurrently.
//
// Bands of one pass cover disjoint rows, so workers never write the same
// pixel. Passes themselves stay sequential: a pass returns only after every
// band is done.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// band is one queued unit of work: rows [y0, y1) of a pass.
type band struct {
	fn     func(y0, y1 int)
	y0, y1 int
	done   *sync.WaitGroup
}

func (b band) run() {
	defer b.done.Done()
	b.fn(b.y0, b.y1)
}

// WorkerPool is a pool of goroutines with one band queue each. An idle
// worker takes bands from the other queues before blocking, which balances
// bands that take uneven time (a band full of lit pixels costs more than an
// empty one).
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan band
	stop    chan struct{}
	exited  sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan band, workers),
		stop:    make(chan struct{}),
	}
	// A pass queues at most two bands per worker.
	for i := range p.queues {
		p.queues[i] = make(chan band, 2)
	}
	p.running.Store(true)

	p.exited.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.exited.Done()
	own := p.queues[id]
	for {
		select {
		case b := <-own:
			b.run()
			continue
		case <-p.stop:
			p.drain(own)
			return
		default:
		}
		if b, ok := p.take(id); ok {
			b.run()
			continue
		}
		select {
		case b := <-own:
			b.run()
		case <-p.stop:
			p.drain(own)
			return
		}
	}
}

// drain runs whatever is left in q after Close.
func (p *WorkerPool) drain(q chan band) {
	for {
		select {
		case b := <-q:
			b.run()
		default:
			return
		}
	}
}

// take removes a band from another worker's queue.
func (p *WorkerPool) take(id int) (band, bool) {
	for k := 1; k < p.workers; k++ {
		select {
		case b := <-p.queues[(id+k)%p.workers]:
			return b, true
		default:
		}
	}
	return band{}, false
}

// runBands splits [0, height) into bands of size rows, queues them round
// robin and waits for all of them. On a closed pool the bands run on the
// caller's goroutine.
func (p *WorkerPool) runBands(height, size int, fn func(y0, y1 int)) {
	if !p.running.Load() {
		for y0 := 0; y0 < height; y0 += size {
			fn(y0, min(y0+size, height))
		}
		return
	}
	var wg sync.WaitGroup
	k := 0
	for y0 := 0; y0 < height; y0 += size {
		wg.Add(1)
		b := band{fn: fn, y0: y0, y1: min(y0+size, height), done: &wg}
		select {
		case p.queues[k%p.workers] <- b:
		case <-p.stop:
			b.run()
		}
		k++
	}
	wg.Wait()
}

// Close lets queued bands finish and stops the workers. It is safe to call
// more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stop)
	p.exited.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
