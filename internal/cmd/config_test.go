package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/padcore/padcore/internal/cmd"
)

func TestConfigInitFormats(t *testing.T) {
	tests := []struct {
		format string
		check  func(t *testing.T, data []byte)
	}{
		{
			format: "json",
			check: func(t *testing.T, data []byte) {
				var got map[string]any
				require.NoError(t, json.Unmarshal(data, &got))
				assert.Contains(t, got, "log")
				assert.Contains(t, got, "monitor")
			},
		},
		{
			format: "yaml",
			check: func(t *testing.T, data []byte) {
				var got map[string]any
				require.NoError(t, yaml.Unmarshal(data, &got))
				assert.Contains(t, got, "log")
			},
		},
		{
			format: "toml",
			check: func(t *testing.T, data []byte) {
				tree, err := toml.LoadBytes(data)
				require.NoError(t, err)
				assert.True(t, tree.Has("monitor.interval"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "padcore."+tt.format)
			c := cmd.ConfigInit{Format: tt.format, Output: dest}
			require.NoError(t, c.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "padcore.toml")
	require.NoError(t, os.WriteFile(dest, []byte("# existing"), 0o644))

	c := cmd.ConfigInit{Format: "toml", Output: dest}
	require.Error(t, c.Run())

	c.Force = true
	require.NoError(t, c.Run())
}
