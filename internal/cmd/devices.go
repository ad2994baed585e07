package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/padcore/padcore/session"
)

// DevicesCommand prints a one-shot listing of the attached controllers.
type DevicesCommand struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
}

type deviceSummary struct {
	ID          int    `json:"id" yaml:"id" toml:"id"`
	Name        string `json:"name" yaml:"name" toml:"name"`
	GUID        string `json:"guid" yaml:"guid" toml:"guid"`
	Connected   bool   `json:"connected" yaml:"connected" toml:"connected"`
	Axes        int    `json:"axes" yaml:"axes" toml:"axes"`
	Buttons     int    `json:"buttons" yaml:"buttons" toml:"buttons"`
	Power       string `json:"power" yaml:"power" toml:"power"`
	FFSupported bool   `json:"ffSupported" yaml:"ffSupported" toml:"ffSupported"`
}

// Run is called by kong when the devices command is executed.
func (d *DevicesCommand) Run(logger *slog.Logger) error {
	backend, err := defaultBackend(logger)
	if err != nil {
		return err
	}
	sess, err := session.New(backend, session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("starting controller session: %w", err)
	}
	defer sess.Close()

	summaries := make([]deviceSummary, 0, sess.LastGamepadHint())
	for i := 0; i < sess.LastGamepadHint(); i++ {
		g := sess.Gamepad(i)
		summaries = append(summaries, deviceSummary{
			ID:          g.ID(),
			Name:        g.Name(),
			GUID:        g.GUID().String(),
			Connected:   g.IsConnected(),
			Axes:        len(g.Axes()),
			Buttons:     len(g.Buttons()),
			Power:       g.PowerStatus().String(),
			FFSupported: g.FFSupported(),
		})
	}

	var data []byte
	switch d.Format {
	case "yaml":
		data, err = yaml.Marshal(summaries)
	case "toml":
		// go-toml needs a table at the top level.
		data, err = toml.Marshal(map[string]any{"devices": summaries})
	default:
		data, err = json.MarshalIndent(summaries, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding device list: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
