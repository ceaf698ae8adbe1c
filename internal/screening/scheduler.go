package screening

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// InjectionScheduler runs at most one deferred job per call. It exists so the
// "wait for the callee to answer, then push documents into the call" step is
// an inspectable, cancelable task instead of a detached timer: call-ended
// reconciliation cancels the pending job rather than letting it fire against
// a dead control channel.
type InjectionScheduler struct {
	log *zap.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewInjectionScheduler(log *zap.Logger) *InjectionScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InjectionScheduler{
		log:     log,
		pending: make(map[string]*time.Timer),
	}
}

// Schedule queues task to run after delay, keyed by call id. A job already
// pending for the same call is replaced. The task runs on its own goroutine
// with a fresh context; its outcome is never observed by the scheduling
// caller.
func (s *InjectionScheduler) Schedule(callID string, delay time.Duration, task func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[callID]; ok {
		t.Stop()
	}
	s.pending[callID] = time.AfterFunc(delay, func() {
		s.remove(callID)
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("scheduled injection panicked", zap.String("call_id", callID), zap.Any("panic", r))
			}
		}()
		task(context.Background())
	})
}

// Cancel stops a pending job for the call, reporting whether one was pending.
// Canceling after the job started running is a no-op.
func (s *InjectionScheduler) Cancel(callID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[callID]
	if !ok {
		return false
	}
	delete(s.pending, callID)
	return t.Stop()
}

// Pending returns the number of jobs not yet fired.
func (s *InjectionScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *InjectionScheduler) remove(callID string) {
	s.mu.Lock()
	delete(s.pending, callID)
	s.mu.Unlock()
}
