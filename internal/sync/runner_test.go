package sync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	cycles atomic.Int64
	block  chan struct{}
}

func (c *countingRunner) RunCycle(ctx context.Context) Stats {
	c.cycles.Add(1)
	if c.block != nil {
		<-c.block
	}
	return Stats{}
}

func TestRunnerRunsImmediately(t *testing.T) {
	cr := &countingRunner{}
	runner := NewRunner(cr, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return cr.cycles.Load() == 1
	}, time.Second, 5*time.Millisecond, "first cycle should not wait for the interval")

	cancel()
	<-done
}

func TestRunnerTicks(t *testing.T) {
	cr := &countingRunner{}
	runner := NewRunner(cr, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return cr.cycles.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestRunnerFinishesInFlightCycle(t *testing.T) {
	cr := &countingRunner{block: make(chan struct{})}
	runner := NewRunner(cr, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return cr.cycles.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// Cancel while the cycle is still blocked; Run must wait for it to
	// finish rather than abandoning it.
	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while a cycle was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(cr.block)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the in-flight cycle completed")
	}
}
