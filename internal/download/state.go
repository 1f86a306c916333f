package download

import "sync"

// SessionState is the only state touched by both the command goroutine and
// the worker. All access goes through its mutex.
type SessionState struct {
	mu              sync.Mutex
	running         bool
	cancelRequested bool
	counters        Counters
}

// NewSessionState returns an idle session state.
func NewSessionState() *SessionState {
	return &SessionState{}
}

// Start marks a session as running and resets counters and the cancel flag.
func (s *SessionState) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.cancelRequested = false
	s.counters = Counters{}
	return nil
}

// RequestCancel raises the cancel flag of a running session. It reports
// whether the flag changed, so a second call is a no-op.
func (s *SessionState) RequestCancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.cancelRequested {
		return false
	}
	s.cancelRequested = true
	return true
}

// Finish marks the session as no longer running.
func (s *SessionState) Finish() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning reports whether a session is active.
func (s *SessionState) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// CancelRequested reports whether the user asked to stop the session.
func (s *SessionState) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelRequested
}

// SetTotal records the item count learned by enumeration and resets the
// completed count. Counts below one are stored as one.
func (s *SessionState) SetTotal(total int) {
	if total < 1 {
		total = 1
	}
	s.mu.Lock()
	s.counters = Counters{Total: total}
	s.mu.Unlock()
}

// CompleteItem applies one finished item and returns the new counters and
// aggregate percent.
func (s *SessionState) CompleteItem() (Counters, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _, aggregate := OnItemFinished(s.counters)
	s.counters = next
	return next, aggregate
}

// Counters returns a copy of the current counters.
func (s *SessionState) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}
