package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/padcore/padcore/event"
	"github.com/padcore/padcore/session"
)

// MonitorCommand streams resolved controller events until interrupted.
type MonitorCommand struct {
	Interval  time.Duration `help:"Polling interval" default:"10ms" env:"PADCORE_POLL_INTERVAL"`
	ShowPower bool          `help:"Query and print power status on connection events" default:"false"`
}

// Run is called by kong when the monitor command is executed.
func (m *MonitorCommand) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := defaultBackend(logger)
	if err != nil {
		return err
	}

	sess, err := session.New(backend,
		session.WithLogger(logger),
		session.WithPollInterval(m.Interval),
	)
	if err != nil {
		return fmt.Errorf("starting controller session: %w", err)
	}
	defer sess.Close()

	logger.Info("monitoring controllers", "initial", sess.LastGamepadHint(), "interval", m.Interval)
	for i := 0; i < sess.LastGamepadHint(); i++ {
		g := sess.Gamepad(i)
		logger.Info("controller", "id", g.ID(), "name", g.Name(), "guid", g.GUID().String())
	}

	// When writing to a pipe, events go through the structured logger so
	// they can be collected; on a terminal a plain line per event is
	// easier to read.
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ev, ok := sess.NextEvent()
		if !ok {
			time.Sleep(m.Interval)
			continue
		}
		m.report(sess, ev, interactive, logger)
	}
}

func (m *MonitorCommand) report(sess *session.Session, ev event.Event, interactive bool, logger *slog.Logger) {
	g := sess.Gamepad(ev.ID)
	name := "unknown"
	if g != nil {
		name = g.Name()
	}

	if interactive {
		fmt.Printf("[%s] %s (%s)\n", ev.Time.Format("15:04:05.000"), ev, name)
	} else {
		logger.Info("event", "id", ev.ID, "name", name, "type", ev.Type.String(), "time", ev.Time)
	}

	if !m.ShowPower || g == nil {
		return
	}
	switch ev.Type.(type) {
	case event.Connected, event.Disconnected:
		logger.Info("power status", "id", ev.ID, "status", g.PowerStatus().String())
	}
}
