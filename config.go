// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package harness

import (
	"fmt"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvTitle          = "HARNESS_TITLE"
	EnvWidth          = "HARNESS_WIDTH"
	EnvHeight         = "HARNESS_HEIGHT"
	EnvBackend        = "HARNESS_BACKEND"
	EnvWindow         = "HARNESS_WINDOW"
	EnvPresentMode    = "HARNESS_PRESENT_MODE"
	EnvPower          = "HARNESS_POWER"
	EnvAcquireRetries = "HARNESS_ACQUIRE_RETRIES"
	EnvSnapshot       = "HARNESS_SNAPSHOT"
)

// Config configures Launch and Run.
//
// Config is a value type; the With methods return modified copies:
//
//	cfg := harness.DefaultConfig().
//	    WithTitle("triangle").
//	    WithSize(1024, 768).
//	    WithPresentMode(gpu.PresentModeFifo)
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial window size in pixels.
	Width  int
	Height int

	// Window is the registry name of the window platform.
	Window string

	// Backend is the registry name of the GPU backend.
	// Empty selects gpu.Default.
	Backend string

	// PresentMode is used for every swapchain build.
	PresentMode gpu.PresentMode

	// Device holds the adapter and device requirements.
	Device gpu.DeviceOptions

	// AcquireRetries bounds how many times a transiently failing frame
	// acquisition is retried after rebuilding the swapchain.
	AcquireRetries int

	// Snapshot, if set, is the file the last frame is written to when the
	// loop ends. Only backends implementing gpu.Snapshotter support it.
	Snapshot string
}

// DefaultConfig returns an 800x600 headless-capable configuration with
// mailbox presentation and one acquisition retry.
func DefaultConfig() Config {
	return Config{
		Title:          "harness",
		Width:          800,
		Height:         600,
		Window:         window.PlatformHeadless,
		PresentMode:    gpu.PresentModeMailbox,
		AcquireRetries: 1,
	}
}

// WithTitle returns a copy with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy with the initial window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithWindow returns a copy using the named window platform.
func (c Config) WithWindow(name string) Config {
	c.Window = name
	return c
}

// WithBackend returns a copy using the named GPU backend.
func (c Config) WithBackend(name string) Config {
	c.Backend = name
	return c
}

// WithPresentMode returns a copy with the present mode set.
func (c Config) WithPresentMode(mode gpu.PresentMode) Config {
	c.PresentMode = mode
	return c
}

// WithPowerPreference returns a copy with the adapter power preference set.
func (c Config) WithPowerPreference(p gpu.PowerPreference) Config {
	c.Device.PowerPreference = p
	return c
}

// WithAcquireRetries returns a copy with the acquisition retry budget set.
func (c Config) WithAcquireRetries(n int) Config {
	c.AcquireRetries = n
	return c
}

// WithSnapshot returns a copy that writes the last frame to path.
func (c Config) WithSnapshot(path string) Config {
	c.Snapshot = path
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.WindowOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Window == "" {
		return fmt.Errorf("%w: empty window platform", ErrInvalidConfig)
	}
	if c.AcquireRetries < 0 {
		return fmt.Errorf("%w: negative acquire retries %d", ErrInvalidConfig, c.AcquireRetries)
	}
	if c.PresentMode > gpu.PresentModeImmediate {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.PresentMode)
	}
	return nil
}

// WindowOptions returns the title and size as window options.
func (c Config) WindowOptions() window.Options {
	return window.Options{Title: c.Title, Width: c.Width, Height: c.Height}
}

// ConfigFromEnv overrides the fields of base that have a HARNESS_*
// variable set. Unset variables keep the base value.
func ConfigFromEnv(base Config) (Config, error) {
	c := base
	c.Title = envy.Get(EnvTitle, c.Title)
	c.Window = envy.Get(EnvWindow, c.Window)
	c.Backend = envy.Get(EnvBackend, c.Backend)
	c.Snapshot = envy.Get(EnvSnapshot, c.Snapshot)

	var err error
	if c.Width, err = envInt(EnvWidth, c.Width); err != nil {
		return base, err
	}
	if c.Height, err = envInt(EnvHeight, c.Height); err != nil {
		return base, err
	}
	if c.AcquireRetries, err = envInt(EnvAcquireRetries, c.AcquireRetries); err != nil {
		return base, err
	}
	if v := envy.Get(EnvPresentMode, ""); v != "" {
		if c.PresentMode, err = gpu.ParsePresentMode(v); err != nil {
			return base, fmt.Errorf("%s: %w", EnvPresentMode, err)
		}
	}
	if v := envy.Get(EnvPower, ""); v != "" {
		if c.Device.PowerPreference, err = gpu.ParsePowerPreference(v); err != nil {
			return base, fmt.Errorf("%s: %w", EnvPower, err)
		}
	}
	return c, nil
}

func envInt(key string, def int) (int, error) {
	v := envy.Get(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// LoadEnvFile reads dotenv files and makes their variables visible to
// ConfigFromEnv. Variables already present in the environment win.
func LoadEnvFile(paths ...string) error {
	vars, err := godotenv.Read(paths...)
	if err != nil {
		return fmt.Errorf("harness: load env: %w", err)
	}
	for k, v := range vars {
		if _, err := envy.MustGet(k); err == nil {
			continue
		}
		envy.Set(k, v)
	}
	return nil
}
