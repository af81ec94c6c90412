package mines

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestTickStopsWhenGameEnds(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	s := newRowSession(t, WithClock(clock.Now))

	ticks := make(chan int, 1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Tick(context.Background(), s, time.Millisecond, func(elapsed int) {
			ticks <- elapsed
		})
	}()

	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return len(ticks) > 0 }, time.Second, time.Millisecond)

	clock.Advance(3 * time.Second)
	_, err := s.Reveal(2, 0)
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ticker kept running after the game ended")
	}

	var last int
	for len(ticks) > 0 {
		last = <-ticks
	}
	assert.Equal(t, 5, last, "last tick reports the frozen time")
}

func TestTickWaitsForFirstReveal(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := NewSession(Beginner)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	Tick(ctx, s, time.Millisecond, func(int) { calls++ })
	assert.Zero(t, calls)
}
