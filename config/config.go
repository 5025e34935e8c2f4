// Package config loads the YAML settings shared by the client and the
// server.
package config

import (
	_ "embed"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zucenko/spinlines/model"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Window   Window `yaml:"window"`
	Grid     Grid   `yaml:"grid"`
	HUD      bool   `yaml:"hud"`
	LogLevel string `yaml:"log_level"`
	// ws:// address of a spinlines server, empty plays locally
	RemoteURL string `yaml:"remote_url"`
	Server    Server `yaml:"server"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Grid struct {
	Size               int   `yaml:"size"`
	RotationIntervalMs int64 `yaml:"rotation_interval_ms"`
	Blocking           bool  `yaml:"blocking"`
	// 0 picks a seed from the clock
	Seed int64 `yaml:"seed"`
}

type Server struct {
	Port             string `yaml:"port"`
	SessionTimeoutMs int64  `yaml:"session_timeout_ms"`
	// 0 means no limit
	MaxSessions int `yaml:"max_sessions"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 960, Height: 720, Title: "spinlines"},
		Grid: Grid{
			Size:               model.DefaultGridSize,
			RotationIntervalMs: model.DefaultRotationInterval,
			Blocking:           true,
		},
		HUD:      true,
		LogLevel: "info",
		Server:   Server{Port: "8080", SessionTimeoutMs: 200},
	}
}

// Load reads the configuration.
// Search order: path -> ~/.spinlines/config.yaml -> ./configs/spinlines.yaml -> embedded default
func Load(path string) (Config, error) {
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, candidate := range []string{userConfigPath(), filepath.Join("configs", "spinlines.yaml")} {
		if candidate == "" {
			continue
		}
		data, err := ioutil.ReadFile(candidate)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
		log.Warnf("ignoring unparsable config %s", candidate)
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Grid.Size < 2 {
		return fmt.Errorf("grid size %d too small", c.Grid.Size)
	}
	if c.Grid.RotationIntervalMs <= 0 {
		return fmt.Errorf("rotation interval %dms must be positive", c.Grid.RotationIntervalMs)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window %dx%d invalid", c.Window.Width, c.Window.Height)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".spinlines", "config.yaml")
}

// Seed returns the configured seed or one taken from the clock.
func (c Config) Seed() int64 {
	if c.Grid.Seed != 0 {
		return c.Grid.Seed
	}
	return time.Now().UnixNano()
}

func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Options converts the grid settings for a viewport of width x height.
func (c Config) Options(width, height int) model.Options {
	return model.Options{
		Width:            width,
		Height:           height,
		GridSize:         c.Grid.Size,
		RotationInterval: c.Grid.RotationIntervalMs,
		Blocking:         c.Grid.Blocking,
	}
}

func (c Config) SessionTimeout() time.Duration {
	return time.Duration(c.Server.SessionTimeoutMs) * time.Millisecond
}
