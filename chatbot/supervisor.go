package chatbot

import (
	"context"
	"errors"
	"sync"
	"time"
)

// AbortReason tells who stopped a supervised call
type AbortReason int

// AbortReasons
const (
	AbortNone AbortReason = iota
	AbortUserCancelled
	AbortTimedOut
)

func (r AbortReason) String() string {
	switch r {
	case AbortUserCancelled:
		return "user_cancelled"
	case AbortTimedOut:
		return "timed_out"
	}
	return "none"
}

var errSupervisorTimeout = errors.New("supervised call timed out")

// Supervisor bounds one remote call by the caller's context and an internal timeout,
// and remembers which of the two fired first.
type Supervisor struct {
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	once    sync.Once
}

// Supervise starts a Supervisor for a call that may run at most timeout.
// Release must be called on every exit path.
func Supervise(parent context.Context, timeout time.Duration) *Supervisor {
	ctx, cancel := context.WithTimeoutCause(parent, timeout, errSupervisorTimeout)
	return &Supervisor{parent: parent, ctx: ctx, cancel: cancel, timeout: timeout}
}

// Context returns the context the supervised call must use
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// Timeout returns the internal timeout
func (s *Supervisor) Timeout() time.Duration {
	return s.timeout
}

// Reason reports why the call was stopped. A caller cancellation always wins over the timeout.
func (s *Supervisor) Reason() AbortReason {
	if s.parent.Err() != nil {
		return AbortUserCancelled
	}
	if errors.Is(context.Cause(s.ctx), errSupervisorTimeout) {
		return AbortTimedOut
	}
	return AbortNone
}

// Release stops the internal timer. It is safe to call more than once.
func (s *Supervisor) Release() {
	s.once.Do(s.cancel)
}
