// Package session implements the core of the padcore platform backend: a
// background poller that diffs controller snapshots into discrete events,
// a non-blocking event channel, and a device table that gives every
// physical controller a stable session-local id across hot-plug and
// reconnect.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/native"
)

// eventBufferSize bounds the channel between the producers (poller and
// hot-plug callbacks) and the consumer. Overflow drops events rather than
// blocking the poller.
const eventBufferSize = 4096

// Option configures a Session.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	interval time.Duration
}

// WithLogger sets the logger used by the session and its poller.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPollInterval sets the sleep between polling cycles.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// Session owns the device table and the consumer end of the event channel.
//
// NextEvent, Gamepad and LastGamepadHint must be called from a single
// consumer goroutine: the table is mutated only at NextEvent resolution
// time, which is what makes it safe without a lock.
type Session struct {
	gamepads []*Gamepad
	rx       chan hwEvent
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// New enumerates the currently attached controllers, subscribes to
// hot-plug notifications and starts the background poller. An initial
// enumeration failure is returned to the caller; without it the session
// cannot usefully start.
func New(backend native.Backend, opts ...Option) (*Session, error) {
	cfg := options{
		logger:   slog.Default(),
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	controllers, err := backend.Controllers()
	if err != nil {
		return nil, fmt.Errorf("initial controller enumeration: %w", err)
	}

	tx := make(chan hwEvent, eventBufferSize)
	s := &Session{
		rx:     tx,
		logger: cfg.logger,
	}
	for i, ctrl := range controllers {
		s.gamepads = append(s.gamepads, newGamepad(i, ctrl))
	}

	err = backend.Subscribe(
		func(ctrl native.Controller) { publish(tx, cfg.logger, ctrl, event.Connected{}) },
		func(ctrl native.Controller) { publish(tx, cfg.logger, ctrl, event.Disconnected{}) },
	)
	if err != nil {
		return nil, fmt.Errorf("subscribing to hot-plug notifications: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	p := &poller{
		backend:  backend,
		interval: cfg.interval,
		logger:   cfg.logger,
		tx:       tx,
		pairs:    make(map[string]*devicePair),
	}
	go p.run(ctx)

	return s, nil
}

// NextEvent returns the next pending event, or ok=false when none is
// queued. It never blocks: the consumer polls once per its own cycle and
// receives at most one event per call.
func (s *Session) NextEvent() (event.Event, bool) {
	select {
	case he := <-s.rx:
		return s.resolve(he), true
	default:
		return event.Event{}, false
	}
}

// resolve maps a hardware event to its session device id, appending a new
// Gamepad for a never-seen persistent identifier. Connection flags are
// flipped here, before the event is handed to the consumer.
func (s *Session) resolve(he hwEvent) event.Event {
	stableID := he.ctrl.StableID()
	id := -1
	for i, g := range s.gamepads {
		if g.stableID == stableID {
			id = i
			break
		}
	}
	if id == -1 {
		id = len(s.gamepads)
		s.gamepads = append(s.gamepads, newGamepad(id, he.ctrl))
	}

	switch he.typ.(type) {
	case event.Connected:
		s.gamepads[id].connected = true
	case event.Disconnected:
		s.gamepads[id].connected = false
	}

	return event.Event{ID: id, Type: he.typ, Time: he.time}
}

// Gamepad returns the descriptor for a session device id, or nil for an id
// that has never been assigned.
func (s *Session) Gamepad(id int) *Gamepad {
	if id < 0 || id >= len(s.gamepads) {
		return nil
	}
	return s.gamepads[id]
}

// LastGamepadHint returns an upper bound on the assigned session ids:
// every id so far is smaller than the returned value.
func (s *Session) LastGamepadHint() int {
	return len(s.gamepads)
}

// Close stops the background poller. Pending events can still be drained
// with NextEvent afterwards.
func (s *Session) Close() {
	s.cancel()
}
