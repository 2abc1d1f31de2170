package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Result pairs one input with the outcome of processing it.
type Result[T any, R any] struct {
	Input T
	Value R
	Err   error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a ProcessFunc over a slice of inputs with bounded concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
	logger  zerolog.Logger
}

// NewPool creates a pool with the given number of workers (at least one).
// Task failures are logged to logger at debug level.
func NewPool[T any, R any](workers int, logger zerolog.Logger, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
		logger:  logger,
	}
}

// Execute processes every input and returns the results in input order.
// Inputs not started before ctx is cancelled carry ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Result[T, R] {
	results := make([]Result[T, R], len(inputs))
	started := make([]bool, len(inputs))
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(inputs)); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				value, err := p.process(ctx, inputs[idx])
				results[idx] = Result[T, R]{Input: inputs[idx], Value: value, Err: err}
				if err != nil {
					p.logger.Debug().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

send:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- i:
			started[i] = true
		}
	}
	close(inputCh)
	wg.Wait()

	for i, ok := range started {
		if !ok {
			results[i] = Result[T, R]{Input: inputs[i], Err: ctx.Err()}
		}
	}
	return results
}
