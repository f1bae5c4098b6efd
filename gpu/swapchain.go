// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
)

// SwapchainConfig describes a swapchain.
type SwapchainConfig struct {
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// Size returns the configured dimensions.
func (c SwapchainConfig) Size() Size { return Size{Width: c.Width, Height: c.Height} }

// Configure returns the swapchain configuration for a framebuffer size.
// The format and usage are always SwapchainFormat and SwapchainUsage.
func Configure(size Size, mode PresentMode) SwapchainConfig {
	return SwapchainConfig{
		Format:      SwapchainFormat,
		Usage:       SwapchainUsage,
		Width:       size.Width,
		Height:      size.Height,
		PresentMode: mode,
	}
}

// SwapchainManager owns the single live swapchain of a context.
//
// Rebuild is the only way to change it; the old swapchain is released
// before its replacement is created. SwapchainManager is not safe for
// concurrent use.
type SwapchainManager struct {
	ctx    Context
	mode   PresentMode
	chain  Swapchain
	config SwapchainConfig
	builds int
	log    *slog.Logger
}

// NewSwapchainManager builds the initial swapchain for size.
func NewSwapchainManager(ctx Context, size Size, mode PresentMode, log *slog.Logger) (*SwapchainManager, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &SwapchainManager{ctx: ctx, mode: mode, log: log}
	if err := m.Rebuild(size); err != nil {
		return nil, err
	}
	return m, nil
}

// Rebuild replaces the live swapchain with one sized to size.
// A zero-sized request returns ErrInvalidSize and keeps the current one.
func (m *SwapchainManager) Rebuild(size Size) error {
	if size.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}

	cfg := Configure(size, m.mode)
	if m.chain != nil {
		m.chain.Release()
		m.chain = nil
	}

	chain, err := m.ctx.CreateSwapchain(cfg)
	if err != nil {
		return fmt.Errorf("create swapchain %s: %w", size, err)
	}
	m.chain = chain
	m.config = cfg
	m.builds++

	m.log.Info("swapchain configured",
		"size", size.String(),
		"present_mode", cfg.PresentMode.String(),
		"builds", m.builds)
	return nil
}

// Acquire returns the next frame of the live swapchain.
func (m *SwapchainManager) Acquire() (Frame, error) {
	if m.chain == nil {
		return nil, ErrReleased
	}
	return m.chain.Acquire()
}

// Config returns the configuration of the live swapchain.
func (m *SwapchainManager) Config() SwapchainConfig { return m.config }

// Builds returns how many swapchains have been created, including the
// initial one.
func (m *SwapchainManager) Builds() int { return m.builds }

// Release destroys the live swapchain.
func (m *SwapchainManager) Release() {
	if m.chain != nil {
		m.chain.Release()
		m.chain = nil
	}
}
