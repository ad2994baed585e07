//go:build linux

package cmd

import (
	"log/slog"

	"github.com/padcore/padcore/native"
	"github.com/padcore/padcore/native/evdev"
)

func defaultBackend(logger *slog.Logger) (native.Backend, error) {
	return evdev.New(logger)
}
