package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConfigName is the base name searched for in the working directory
// (solarsystem.toml, solarsystem.yaml, solarsystem.json, ...).
const ConfigName = "solarsystem"

// Camera modes.
const (
	CameraOrbit   = "orbit"
	CameraFreeFly = "freefly"
)

type Window struct {
	Width    int32
	Height   int32
	Title    string
	VSync    bool
	FPSLimit int
}

type Assets struct {
	Dir   string
	Sun   string
	Earth string
	Moon  string
}

type Log struct {
	Level       string
	Development bool
}

type Config struct {
	Window     Window
	Assets     Assets
	CameraMode string
	Log        Log
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1920)
	v.SetDefault("window.height", 1080)
	v.SetDefault("window.title", "Solar System")
	v.SetDefault("window.vsync", true)
	v.SetDefault("window.fps_limit", 0)

	v.SetDefault("assets.dir", "resources")
	v.SetDefault("assets.sun", "sun/planet.obj")
	v.SetDefault("assets.earth", "earth/Model/Globe.obj")
	v.SetDefault("assets.moon", "rock/rock/rock.obj")

	v.SetDefault("camera.mode", CameraOrbit)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Default returns the built-in configuration without touching the filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

// Load reads the configuration. An empty path searches the working directory
// for ConfigName and falls back to defaults when nothing is found; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Window: Window{
			Width:    v.GetInt32("window.width"),
			Height:   v.GetInt32("window.height"),
			Title:    v.GetString("window.title"),
			VSync:    v.GetBool("window.vsync"),
			FPSLimit: v.GetInt("window.fps_limit"),
		},
		Assets: Assets{
			Dir:   v.GetString("assets.dir"),
			Sun:   v.GetString("assets.sun"),
			Earth: v.GetString("assets.earth"),
			Moon:  v.GetString("assets.moon"),
		},
		CameraMode: strings.ToLower(v.GetString("camera.mode")),
		Log: Log{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
	}
}

// Validate rejects settings the renderer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPSLimit < 0 {
		return fmt.Errorf("invalid fps limit %d", c.Window.FPSLimit)
	}
	switch c.CameraMode {
	case CameraOrbit, CameraFreeFly:
	default:
		return fmt.Errorf("unknown camera mode %q", c.CameraMode)
	}
	return nil
}
