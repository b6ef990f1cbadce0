package runtime_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/mocks"
	"github.com/ngongtopro/love-story-chat/runtime"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSupervisor_RestartOnPanic(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)

	var calls atomic.Int32
	worker.EXPECT().
		Run(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			calls.Add(1)
			panic("boom")
		}).
		AnyTimes()

	sup := runtime.NewSupervisor(logs.GetLoggerFromLevel(slog.LevelDebug)).
		WithRestartDelay(10*time.Millisecond).
		Add("follower", worker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	req.Eventually(func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestSupervisor_RestartOnError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)

	// Given a worker failing once then finishing
	gomock.InOrder(
		worker.EXPECT().Run(gomock.Any()).Return(errors.New("subscription lost")),
		worker.EXPECT().Run(gomock.Any()).Return(nil),
	)

	sup := runtime.NewSupervisor(logs.GetLoggerFromLevel(slog.LevelDebug)).
		WithRestartDelay(time.Millisecond).
		Add("follower", worker)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Supervisor should have stopped after the worker finished")
	}
}

func TestSupervisor_StopOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	worker := mocks.NewMockWorker(ctrl)
	worker.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runtime.NewSupervisor(logs.GetLoggerFromLevel(slog.LevelDebug)).Add("follower", worker).Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Supervisor should stop when its context is cancelled")
	}
}
