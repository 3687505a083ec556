package pipeline

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/scanstation/receipt-ocr/internal/models"
)

// ResultCallback is invoked on completion (from a worker goroutine).
type ResultCallback func(result models.ProcessResult, err error)

// Pool is a fixed-size processing pool with a 1-slot input queue, giving
// strict back-pressure: a Submit while the queue is full is rejected rather
// than buffered.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
}

type job struct {
	ctx context.Context
	img image.Image
	cb  ResultCallback
}

// NewPool creates a worker pool over proc. Size defaults to NumCPU when
// size <= 0.
func NewPool(proc *Processor, size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan job, 1)}
	p.start(proc, size)
	return p
}

func (p *Pool) start(proc *Processor, n int) {
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				result, err := processWithContext(j.ctx, proc, j.img)
				j.cb(result, err)
			}
		}()
	}
}

// Submit enqueues an image if the single-slot queue is free. Returns false
// if the job was dropped.
func (p *Pool) Submit(ctx context.Context, img image.Image, cb ResultCallback) bool {
	select {
	case p.jobs <- job{ctx: ctx, img: img, cb: cb}:
		return true
	default:
		return false
	}
}

// Close stops the pool after draining current work.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

// processWithContext honors a ctx deadline around Process. Recognition runs
// inside a C library and cannot be interrupted mid-call, so on timeout the
// call is abandoned to finish in the background and the deadline error is
// returned.
func processWithContext(ctx context.Context, proc *Processor, img image.Image) (models.ProcessResult, error) {
	if _, ok := ctx.Deadline(); !ok {
		return proc.Process(ctx, img)
	}

	type outcome struct {
		result models.ProcessResult
		err    error
	}
	resCh := make(chan outcome, 1)
	go func() {
		result, err := proc.Process(ctx, img)
		resCh <- outcome{result, err}
	}()
	select {
	case r := <-resCh:
		return r.result, r.err
	case <-ctx.Done():
		return models.ProcessResult{}, ctx.Err()
	}
}
