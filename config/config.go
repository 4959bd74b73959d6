//Package config holds the appearance, data and viewer settings of qeppsPlot
package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//Config holds all settings that are not part of the plot options
type Config struct {
	Figure FigureConfig
	Data   DataConfig
	Viewer ViewerConfig
}

//FigureConfig sizes are in inches, line sizes in points
type FigureConfig struct {
	Width     float64
	Height    float64
	LineWidth float64
	DashOn    float64
	DashOff   float64
}

type DataConfig struct {
	FrequencyScale float64
	Comment        string
	//MaxMemoryFraction limits the input file size relative to the physical memory, 0 disables the limit
	MaxMemoryFraction float64
}

type ViewerConfig struct {
	Addr        string
	OpenBrowser bool
	Format      string
}

//flagBindings maps config keys to the cli flags that override them
var flagBindings = map[string]string{
	"figure.width":  "width",
	"figure.height": "height",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("figure.width", 6.4)
	v.SetDefault("figure.height", 4.8)
	v.SetDefault("figure.line_width", 2.0)
	v.SetDefault("figure.dash_on", 6.0)
	v.SetDefault("figure.dash_off", 3.0)
	v.SetDefault("data.frequency_scale", 1e12)
	v.SetDefault("data.comment", "#")
	v.SetDefault("data.max_memory_fraction", 0.5)
	v.SetDefault("viewer.addr", "127.0.0.1:0")
	v.SetDefault("viewer.open_browser", true)
	v.SetDefault("viewer.format", "svg")
}

//Load builds the configuration from the defaults, the config file at path (skipped if path is empty) and
//the flags of flags that were set explicitly. flags may be nil
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %v : %w", path, err)
		}
		log.Debug().Str("path", v.ConfigFileUsed()).Msg("read config file")
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %v : %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Figure: FigureConfig{
			Width:     v.GetFloat64("figure.width"),
			Height:    v.GetFloat64("figure.height"),
			LineWidth: v.GetFloat64("figure.line_width"),
			DashOn:    v.GetFloat64("figure.dash_on"),
			DashOff:   v.GetFloat64("figure.dash_off"),
		},
		Data: DataConfig{
			FrequencyScale:    v.GetFloat64("data.frequency_scale"),
			Comment:           v.GetString("data.comment"),
			MaxMemoryFraction: v.GetFloat64("data.max_memory_fraction"),
		},
		Viewer: ViewerConfig{
			Addr:        v.GetString("viewer.addr"),
			OpenBrowser: v.GetBool("viewer.open_browser"),
			Format:      v.GetString("viewer.format"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %vx%v", c.Figure.Width, c.Figure.Height)
	}
	if c.Figure.LineWidth <= 0 {
		return fmt.Errorf("line width must be positive, got %v", c.Figure.LineWidth)
	}
	if c.Figure.DashOn <= 0 || c.Figure.DashOff <= 0 {
		return fmt.Errorf("dash pattern must be positive, got %v/%v", c.Figure.DashOn, c.Figure.DashOff)
	}
	if c.Data.FrequencyScale == 0 {
		return fmt.Errorf("frequency scale must not be zero")
	}
	if c.Data.Comment == "" {
		return fmt.Errorf("comment marker must not be empty")
	}
	if c.Data.MaxMemoryFraction < 0 {
		return fmt.Errorf("max memory fraction must not be negative, got %v", c.Data.MaxMemoryFraction)
	}
	switch c.Viewer.Format {
	case "svg", "png":
	default:
		return fmt.Errorf("viewer format must be svg or png, got %q", c.Viewer.Format)
	}
	return nil
}
