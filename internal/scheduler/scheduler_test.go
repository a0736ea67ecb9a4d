package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("refresh called without a deadline")
	}
	r.calls.Add(1)
	return r.err
}

func TestScheduler_RunsImmediately(t *testing.T) {
	r := &countingRefresher{}
	s := New(time.Hour, r, slog.New(slog.DiscardHandler))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_RefreshErrorDoesNotStop(t *testing.T) {
	r := &countingRefresher{err: errors.New("boom")}
	s := New(time.Hour, r, slog.New(slog.DiscardHandler))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_RunPassesDeadline(t *testing.T) {
	r := &countingRefresher{}
	s := New(time.Hour, r, slog.New(slog.DiscardHandler))

	s.run()
	assert.Equal(t, int32(1), r.calls.Load())
}
