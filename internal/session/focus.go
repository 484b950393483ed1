package session

import (
	"sync"
	"time"

	"github.com/stateful/storyblocks/pkg/document/editor"
)

// DefaultFocusDelay leaves the host UI time to lay out a new block
// before focus moves into it.
const DefaultFocusDelay = 50 * time.Millisecond

// Focuser moves input focus in the host UI.
type Focuser interface {
	Focus(editor.FocusTarget)
}

type FocuserFunc func(editor.FocusTarget)

func (f FocuserFunc) Focus(t editor.FocusTarget) { f(t) }

// PendingFocus is a scheduled focus request. Its request may still be
// adjusted until the scheduler hands it out with Take.
type PendingFocus struct {
	req   editor.FocusRequest
	timer *time.Timer
}

// FocusScheduler fires each focus request once after a delay. Requests
// still pending when the scheduler stops are dropped.
type FocusScheduler struct {
	delay time.Duration
	fire  func(*PendingFocus)

	mu      sync.Mutex
	pending map[*PendingFocus]struct{}
	stopped bool
}

// NewFocusScheduler returns a scheduler calling fire when a request is
// due. fire is expected to claim the request with Take.
func NewFocusScheduler(delay time.Duration, fire func(*PendingFocus)) *FocusScheduler {
	if delay < 0 {
		delay = 0
	}
	return &FocusScheduler{
		delay:   delay,
		fire:    fire,
		pending: make(map[*PendingFocus]struct{}),
	}
}

func (s *FocusScheduler) Schedule(req editor.FocusRequest) {
	if req.IsZero() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	p := &PendingFocus{req: req}
	p.timer = time.AfterFunc(s.delay, func() { s.fire(p) })
	s.pending[p] = struct{}{}
}

// Take claims p and returns its current request. It fails when p was
// already taken or dropped, or the scheduler stopped.
func (s *FocusScheduler) Take(p *PendingFocus) (editor.FocusRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[p]; !ok || s.stopped {
		return editor.FocusRequest{}, false
	}
	delete(s.pending, p)
	return p.req, true
}

// Adjust rewrites every pending request with fn. Requests for which fn
// reports false are dropped.
func (s *FocusScheduler) Adjust(fn func(editor.FocusRequest) (editor.FocusRequest, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for p := range s.pending {
		req, ok := fn(p.req)
		if !ok {
			p.timer.Stop()
			delete(s.pending, p)
			continue
		}
		p.req = req
	}
}

// Pending returns the number of requests that have not fired yet.
func (s *FocusScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *FocusScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for p := range s.pending {
		p.timer.Stop()
	}
	clear(s.pending)
}
