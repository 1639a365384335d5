package services

import (
	"sync"
	"time"
)

// Default quiet intervals, matching the form's historical debounce timings.
const (
	RecalcDebounce = 50 * time.Millisecond
	StockDebounce  = 300 * time.Millisecond
)

// Scheduler coalesces bursts of recompute requests. Each key (a line or
// sheet id) holds at most one pending task; scheduling again before the quiet
// interval elapses replaces the pending task, so only the last-scheduled one
// runs. Replacement is the only cancellation mechanism.
type Scheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		interval: interval,
		pending:  make(map[string]*time.Timer),
	}
}

// Schedule queues fn to run after the quiet interval, superseding any task
// already pending for the same key.
func (s *Scheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if timer, ok := s.pending[key]; ok {
		if timer.Stop() {
			s.wg.Done()
		}
	}

	s.wg.Add(1)
	s.pending[key] = time.AfterFunc(s.interval, func() {
		defer s.wg.Done()
		s.mu.Lock()
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
}

// Wait blocks until every pending task has run. Test helper and shutdown
// hook; new tasks scheduled while waiting are waited on too.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Stop cancels all pending tasks and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, timer := range s.pending {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.pending, key)
	}
}
