package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ngongtopro/love-story-chat/contract"
	"github.com/ngongtopro/love-story-chat/errors"
)

const defaultRestartDelay = 200 * time.Millisecond

// Supervisor keeps long-running followers alive: a worker that panics or
// returns an error is restarted after a delay, a worker that returns nil is
// done. Cancelling the context passed to Run stops everything.
type Supervisor struct {
	wg           sync.WaitGroup
	log          *slog.Logger
	workers      map[string]contract.Worker
	restartDelay time.Duration
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log, workers: make(map[string]contract.Worker), restartDelay: defaultRestartDelay}
}

// WithRestartDelay sets how long a crashed worker waits before restarting.
func (s *Supervisor) WithRestartDelay(delay time.Duration) *Supervisor {
	s.restartDelay = delay
	return s
}

// Add registers a worker under name. It must be called before Run.
func (s *Supervisor) Add(name string, worker contract.Worker) *Supervisor {
	s.workers[name] = worker
	return s
}

// Run blocks until every worker has finished or ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	for name, worker := range s.workers {
		s.start(ctx, name, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) start(ctx context.Context, name string, worker contract.Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			err := runGuarded(ctx, worker)
			switch {
			case ctx.Err() != nil:
				s.log.Debug("Worker stopped", "name", name)
				return
			case err == nil:
				s.log.Debug("Worker finished", "name", name)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", name, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.restartDelay):
			}
		}
	}()
}

func runGuarded(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}
