// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// SwapchainFormat is the color format of every swapchain: 8-bit BGRA,
// gamma corrected.
const SwapchainFormat = gputypes.TextureFormatBGRA8UnormSrgb

// SwapchainUsage is the usage of every swapchain image.
const SwapchainUsage = gputypes.TextureUsageRenderAttachment

// PresentMode is the policy for queueing finished frames for display.
type PresentMode uint8

// Present modes.
const (
	// PresentModeMailbox keeps only the newest pending frame (low latency).
	PresentModeMailbox PresentMode = iota

	// PresentModeFifo waits for vertical blank (strict vsync).
	PresentModeFifo

	// PresentModeImmediate presents without waiting (may tear).
	PresentModeImmediate
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeFifo:
		return "fifo"
	case PresentModeImmediate:
		return "immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// ParsePresentMode parses the String form of a PresentMode.
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mailbox":
		return PresentModeMailbox, nil
	case "fifo", "vsync":
		return PresentModeFifo, nil
	case "immediate":
		return PresentModeImmediate, nil
	}
	return 0, fmt.Errorf("gpu: unknown present mode %q", s)
}

// PowerPreference selects between adapters with different power profiles.
type PowerPreference uint8

// Power preferences.
const (
	PowerPreferenceDefault PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

func (p PowerPreference) String() string {
	switch p {
	case PowerPreferenceDefault:
		return "default"
	case PowerPreferenceLowPower:
		return "low-power"
	case PowerPreferenceHighPerformance:
		return "high-performance"
	default:
		return fmt.Sprintf("PowerPreference(%d)", uint8(p))
	}
}

// ParsePowerPreference parses the String form of a PowerPreference.
func ParsePowerPreference(s string) (PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return PowerPreferenceDefault, nil
	case "low-power", "low":
		return PowerPreferenceLowPower, nil
	case "high-performance", "high":
		return PowerPreferenceHighPerformance, nil
	}
	return 0, fmt.Errorf("gpu: unknown power preference %q", s)
}

// DeviceOptions are the adapter and device requirements passed to
// Backend.Open. The zero value asks for any adapter with the default power
// profile, no optional features and default limits.
type DeviceOptions struct {
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
	Label                string
}

// Size is a framebuffer size in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// SizeOf converts a window size, clamping negative values to zero.
func SizeOf(width, height int) Size {
	return Size{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))} //nolint:gosec // clamped
}

// Empty reports whether either dimension is zero.
func (s Size) Empty() bool { return s.Width == 0 || s.Height == 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }
