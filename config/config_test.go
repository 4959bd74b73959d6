package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 6.4, cfg.Figure.Width)
	assert.Equal(t, 4.8, cfg.Figure.Height)
	assert.Equal(t, 2.0, cfg.Figure.LineWidth)
	assert.Equal(t, 1e12, cfg.Data.FrequencyScale)
	assert.Equal(t, "#", cfg.Data.Comment)
	assert.Equal(t, 0.5, cfg.Data.MaxMemoryFraction)
	assert.Equal(t, "127.0.0.1:0", cfg.Viewer.Addr)
	assert.True(t, cfg.Viewer.OpenBrowser)
	assert.Equal(t, "svg", cfg.Viewer.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qeppsPlot.yaml")
	content := `figure:
  width: 10
  line_width: 1.5
data:
  comment: "%"
viewer:
  open_browser: false
  format: png
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Figure.Width)
	assert.Equal(t, 4.8, cfg.Figure.Height)
	assert.Equal(t, 1.5, cfg.Figure.LineWidth)
	assert.Equal(t, "%", cfg.Data.Comment)
	assert.False(t, cfg.Viewer.OpenBrowser)
	assert.Equal(t, "png", cfg.Viewer.Format)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qeppsPlot.toml")
	require.NoError(t, os.WriteFile(path, []byte("[figure]\nwidth = 10\nheight = 5\n"), 0644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("width", 6.4, "")
	flags.Float64("height", 4.8, "")
	require.NoError(t, flags.Parse([]string{"--width", "12"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 12.0, cfg.Figure.Width)
	//unset flags do not shadow the file
	assert.Equal(t, 5.0, cfg.Figure.Height)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative width":  "figure:\n  width: -1\n",
		"zero scale":      "data:\n  frequency_scale: 0\n",
		"empty comment":   "data:\n  comment: \"\"\n",
		"unknown format":  "viewer:\n  format: gif\n",
		"negative memory": "data:\n  max_memory_fraction: -0.1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := Load(path, nil)
			assert.Error(t, err)
		})
	}
}
