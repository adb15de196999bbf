// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package server

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const dflInitialCapacity = 256

// Config is used to configure a Mem server.
type Config struct {
	// The number of handles of each resource kind to
	// reserve up front.
	//
	// Default is 256.
	InitialCapacity int `toml:"initial_capacity"`

	// Whether to record every call in Mem.Calls.
	//
	// Default is false.
	Trace bool `toml:"trace"`

	// Minimum level of log records (debug, info,
	// warn or error).
	//
	// Default is "warn".
	LogLevel string `toml:"log_level"`

	// Log output.
	//
	// Default is os.Stderr.
	LogOutput io.Writer `toml:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: dflInitialCapacity,
		Trace:           false,
		LogLevel:        "warn",
		LogOutput:       os.Stderr,
	}
}

// LoadConfig reads a TOML configuration from r.
// Settings that r does not mention keep their
// default values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("server: config: %w", err)
	}
	if cfg.InitialCapacity < 0 {
		return DefaultConfig(), newErr("config: negative initial_capacity")
	}
	if _, err := cfg.level(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func (c *Config) level() (lvl slog.Level, err error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err = lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		err = fmt.Errorf("server: config: log_level: %w", err)
	}
	return
}

func (c *Config) logger() *slog.Logger {
	lvl, err := c.level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	out := c.LogOutput
	if out == nil {
		out = os.Stderr
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})).
		With("component", "server")
}
