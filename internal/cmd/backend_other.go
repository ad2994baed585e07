//go:build !linux

package cmd

import (
	"errors"
	"log/slog"

	"github.com/padcore/padcore/native"
)

func defaultBackend(_ *slog.Logger) (native.Backend, error) {
	return nil, errors.New("no native controller backend is built in for this platform")
}
