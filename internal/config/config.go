// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the TOML configuration of the input core.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chebizarro/ubit-sub003/io/input"
)

// FileName is the name of the configuration file inside Dir.
const FileName = "config.toml"

// Config is the configuration file contents.
type Config struct {
	Menu Menu
	Log  Log
}

// Menu configures the menu hover delays.
type Menu struct {
	OpenDelay  Duration
	CloseDelay Duration
}

// Log configures diagnostics.
type Log struct {
	// Verbose enables logging of every delivered notification
	// by tools that support it.
	Verbose bool
}

// Duration is a time.Duration written as a string such as "300ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Menu: Menu{
			OpenDelay:  Duration{input.DefaultOpenDelay},
			CloseDelay: Duration{input.DefaultCloseDelay},
		},
	}
}

// Input returns the flow configuration for c.
func (c Config) Input(rep input.Reporter) input.Config {
	return input.Config{
		OpenDelay:  c.Menu.OpenDelay.Duration,
		CloseDelay: c.Menu.CloseDelay.Duration,
		Reporter:   rep,
	}
}

// Load reads the configuration at path. Keys missing from the file
// keep their default values, and unknown keys are an error.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undec[0].String())
	}
	return c, nil
}

// LoadOrDefault is like Load but returns the default configuration
// if path does not exist.
func LoadOrDefault(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Write writes c to path, creating its directory if needed.
func Write(path string, c Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Dir returns the configuration directory for the named program,
// under $XDG_CONFIG_HOME or ~/.config.
func Dir(program string) string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return filepath.Join(dir, program)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", program)
}

// Path returns the configuration file path for the named program.
func Path(program string) string {
	return filepath.Join(Dir(program), FileName)
}
