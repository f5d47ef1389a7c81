package state

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskgrid/internal/notify"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSink sends every effect to sink.
func WithSink(sink notify.Sink) StoreOption {
	return func(s *Store) {
		s.sink = sink
	}
}

// WithLogger logs every dispatched action to logger.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for notifications.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithState sets the initial state.
func WithState(st State) StoreOption {
	return func(s *Store) {
		s.state = st
	}
}

// Store is the state container handed to the view. It applies actions
// through Reduce and forwards effects to its sink.
type Store struct {
	state  State
	sink   notify.Sink
	logger *log.Logger
	now    func() time.Time
}

// NewStore creates a store holding New() unless WithState is given.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		state:  New(),
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and returns the notifications it produced.
func (s *Store) Dispatch(a Action) []notify.Notification {
	next, effects := Reduce(s.state, a)
	s.state = next

	s.logger.Debug("dispatch",
		"action", Name(a),
		"tasks", len(next.Tasks),
		"modal", next.Modal.String(),
	)

	if len(effects) == 0 {
		return nil
	}
	now := s.now()
	out := make([]notify.Notification, 0, len(effects))
	for _, e := range effects {
		s.logger.Info(e.Message, "action", Name(a), "severity", e.Severity.String())
		if s.sink == nil {
			out = append(out, notify.Notification{Severity: e.Severity, Message: e.Message})
			continue
		}
		out = append(out, s.sink.Push(e.Severity, e.Message, now))
	}
	return out
}
