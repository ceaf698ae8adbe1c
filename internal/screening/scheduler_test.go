package screening

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFires(t *testing.T) {
	s := NewInjectionScheduler(nil)
	done := make(chan struct{})

	s.Schedule("call-1", 10*time.Millisecond, func(ctx context.Context) {
		close(done)
	})
	require.Equal(t, 1, s.Pending())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never fired")
	}

	// the fired job drops out of the pending set
	assert.Eventually(t, func() bool { return s.Pending() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestSchedulerCancel(t *testing.T) {
	s := NewInjectionScheduler(nil)
	var fired atomic.Bool

	s.Schedule("call-1", 50*time.Millisecond, func(ctx context.Context) {
		fired.Store(true)
	})

	assert.True(t, s.Cancel("call-1"))
	assert.Zero(t, s.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())

	// cancelling again, or cancelling an unknown call, reports nothing pending
	assert.False(t, s.Cancel("call-1"))
	assert.False(t, s.Cancel("call-x"))
}

func TestSchedulerReplacesPendingJob(t *testing.T) {
	s := NewInjectionScheduler(nil)
	var first, second atomic.Bool

	s.Schedule("call-1", time.Hour, func(ctx context.Context) { first.Store(true) })
	s.Schedule("call-1", 10*time.Millisecond, func(ctx context.Context) { second.Store(true) })
	assert.Equal(t, 1, s.Pending())

	assert.Eventually(t, func() bool { return second.Load() },
		2*time.Second, 5*time.Millisecond)
	assert.False(t, first.Load(), "replaced job must not run")
}

func TestSchedulerRecoversFromPanic(t *testing.T) {
	s := NewInjectionScheduler(nil)
	done := make(chan struct{})

	s.Schedule("call-1", time.Millisecond, func(ctx context.Context) {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panicking task never ran")
	}
	// a panicking job must not take the process down; reaching here is the test
}

func TestSchedulerIndependentCalls(t *testing.T) {
	s := NewInjectionScheduler(nil)
	s.Schedule("call-1", time.Hour, func(ctx context.Context) {})
	s.Schedule("call-2", time.Hour, func(ctx context.Context) {})
	assert.Equal(t, 2, s.Pending())

	assert.True(t, s.Cancel("call-1"))
	assert.Equal(t, 1, s.Pending())
}
