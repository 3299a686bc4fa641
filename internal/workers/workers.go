package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// Workers runs a set of background workers and waits for all of them to
// stop. Cancelling ctx is the only stop signal.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func New(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Run launches every worker in its own goroutine and blocks until all have
// returned. Non-cancellation errors are logged as they happen.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()

			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Err(err).
					Str("func", "Workers.Run").
					Msg("worker stopped with error")
			}
		}(worker)
	}

	wg.Wait()
}
