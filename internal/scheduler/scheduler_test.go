package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNextNotifyTime(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)

	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2026, 10, 17, 6, 30, 0, 0, loc),
			hour: 8,
			want: time.Date(2026, 10, 17, 8, 0, 0, 0, loc),
		},
		{
			name: "already passed",
			now:  time.Date(2026, 10, 17, 9, 0, 0, 0, loc),
			hour: 8,
			want: time.Date(2026, 10, 18, 8, 0, 0, 0, loc),
		},
		{
			name: "exactly now",
			now:  time.Date(2026, 10, 17, 8, 0, 0, 0, loc),
			hour: 8,
			want: time.Date(2026, 10, 18, 8, 0, 0, 0, loc),
		},
		{
			name: "month boundary",
			now:  time.Date(2026, 10, 31, 23, 0, 0, 0, loc),
			hour: 0,
			want: time.Date(2026, 11, 1, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(RunnerFunc(func(context.Context, string) error { return nil }), "", tt.hour, false, zerolog.Nop())
			s.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.want, s.calculateNextNotifyTime())
		})
	}
}

func TestStartNotifiesOnStartAndStops(t *testing.T) {
	var calls atomic.Int32
	var gotRegion atomic.Value
	runner := RunnerFunc(func(_ context.Context, region string) error {
		gotRegion.Store(region)
		calls.Add(1)
		return errors.New("sink unavailable")
	})

	s := New(runner, "sichuan/chengdu", 8, true, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return !s.NextNotifyAt().IsZero() }, time.Second, 5*time.Millisecond)
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.LastNotifyAt())
	assert.Equal(t, "sichuan/chengdu", gotRegion.Load())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, s.IsRunning())
	assert.Equal(t, int32(1), calls.Load())
}

func TestStartWithoutNotifyOnStart(t *testing.T) {
	var calls atomic.Int32
	s := New(RunnerFunc(func(context.Context, string) error {
		calls.Add(1)
		return nil
	}), "", 8, false, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool { return !s.NextNotifyAt().IsZero() }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, int32(0), calls.Load())
	assert.Nil(t, s.LastNotifyAt())
}
