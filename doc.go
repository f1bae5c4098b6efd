// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package harness runs a Scene against a GPU device and a window.
//
// The harness owns the graphics context, the swapchain and the event loop.
// A Scene owns everything it draws: it is constructed once the first
// swapchain exists, records commands into each frame and never submits.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/harness"
//	    _ "github.com/gogpu/harness/backend/native"
//	)
//
//	cfg := harness.DefaultConfig().WithBackend("noop").WithSize(640, 480)
//	err := harness.Launch(ctx, cfg, newScene, args)
//
// # Event loop
//
// Each Driver.Step polls the window, hands every event to the scene and
// then draws one frame. Any number of resizes in one step cause a single
// swapchain rebuild at the window size sampled when the frame is drawn.
// A close request ends the loop without drawing.
//
// # Backends
//
// Backends register by name on import: "webgpu" (wgpu-native presenting to
// a GLFW window), "vulkan" and "noop" (offscreen HAL devices with optional
// frame capture). Window platforms register the same way: "headless" is
// always available, "glfw" comes with the window/desktop package.
//
// # Logging
//
// The harness is silent by default. Use SetLogger to route its slog output.
package harness
