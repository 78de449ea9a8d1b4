package remote

import (
	"context"

	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

type request struct {
	fn   func(*interaction.Controller) error
	done chan error
}

// Session serializes access to a controller. Requests are queued by any
// goroutine and executed by the goroutine that owns the scene, either
// from its frame loop through Drain or from Run.
type Session struct {
	ctrl *interaction.Controller
	root scenegraph.Component
	reqs chan request
}

// NewSession wraps ctrl. root is updated after every request so node
// positions reported to clients are current.
func NewSession(ctrl *interaction.Controller, root scenegraph.Component) *Session {
	return &Session{ctrl: ctrl, root: root, reqs: make(chan request)}
}

// Do runs fn on the owning goroutine and returns its error.
func (s *Session) Do(ctx context.Context, fn func(*interaction.Controller) error) error {
	r := request{fn: fn, done: make(chan error, 1)}
	select {
	case s.reqs <- r:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-r.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain runs every queued request without blocking and returns how many ran.
func (s *Session) Drain() int {
	n := 0
	for {
		select {
		case r := <-s.reqs:
			s.run(r)
			n++
		default:
			return n
		}
	}
}

// Run executes requests until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.root.Base().Update(math.Identity())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r := <-s.reqs:
			s.run(r)
		}
	}
}

func (s *Session) run(r request) {
	err := r.fn(s.ctrl)
	s.root.Base().Update(math.Identity())
	r.done <- err
}
