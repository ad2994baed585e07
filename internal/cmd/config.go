package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/padcore/padcore/internal/configpaths"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit writes a configuration file populated with defaults.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"toml"`
	Output string `help:"Destination file path (defaults to the user config directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run is called by kong when "config init" is executed.
func (c *ConfigInit) Run() error {
	defaults := map[string]any{
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
		"monitor": map[string]any{
			"interval":   "10ms",
			"show-power": false,
		},
		"devices": map[string]any{
			"format": "json",
		},
	}

	dest := c.Output
	if dest == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		dest = filepath.Join(dir, "padcore."+c.Format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch c.Format {
	case "yaml":
		data, err = yaml.Marshal(defaults)
	case "toml":
		data, err = toml.Marshal(defaults)
	default:
		data, err = json.MarshalIndent(defaults, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	fmt.Println("wrote", dest)
	return nil
}
