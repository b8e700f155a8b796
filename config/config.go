// Package config holds the fixed settings of the effect window.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// File is read from the working directory at startup.
const File = "bullseye.toml"

const (
	HostGLFW = "glfw"
	HostGTK  = "gtk"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`

	// Host selects the windowing backend, "glfw" or "gtk".
	Host string `toml:"host"`

	// Shader is the path of a fragment shader replacing the built-in effect.
	Shader string `toml:"shader"`

	VSync    bool   `toml:"vsync"`
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

func Default() Config {
	return Config{
		Title:    "Bullseye",
		Width:    1200,
		Height:   1200,
		Host:     HostGLFW,
		VSync:    true,
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("reading %v failed: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("%w: %v: %v", ErrInvalidConfig, path, err)
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}

	switch c.Host {
	case HostGLFW, HostGTK:
	default:
		return fmt.Errorf("%w: unknown host %q", ErrInvalidConfig, c.Host)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}
