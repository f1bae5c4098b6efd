// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/internal/snapshot"
	"github.com/gogpu/harness/window"
)

// Launch opens the window and backend named by cfg, then calls Run. It
// returns when the window is closed, a frame fails, or ctx is done.
//
// The window platform and the backend must have been registered, usually
// by blank-importing their packages.
func Launch[A any](ctx context.Context, cfg Config, newScene SceneFunc[A], args A) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	backend, err := gpu.Lookup(cfg.Backend)
	if err != nil {
		return err
	}
	win, err := window.Open(cfg.Window, cfg.WindowOptions())
	if err != nil {
		return fmt.Errorf("harness: open window: %w", err)
	}
	defer func() {
		if cerr := win.Close(); cerr != nil {
			Logger().Warn("close window", "error", cerr)
		}
	}()
	return Run(ctx, cfg, win, backend, newScene, args)
}

// Run opens a graphics context for win, builds the swapchain, constructs
// the scene and runs the event loop until a close request, a frame error,
// or ctx cancellation.
//
// On return the scene, the swapchain and the context have been released,
// in that order. Run does not close win.
func Run[A any](ctx context.Context, cfg Config, win window.Window, backend gpu.Backend, newScene SceneFunc[A], args A) error {
	log := Logger()

	gctx, err := backend.Open(ctx, win, cfg.Device)
	if err != nil {
		return fmt.Errorf("harness: open %s backend: %w", backend.Name(), err)
	}
	defer gctx.Release()

	info := gctx.Info()
	log.Info("device ready", "backend", info.Backend, "adapter", info.Name)

	chain, err := gpu.NewSwapchainManager(gctx, gpu.SizeOf(win.FramebufferSize()), cfg.PresentMode, log)
	if err != nil {
		return fmt.Errorf("harness: initial swapchain: %w", err)
	}
	defer chain.Release()

	scene, err := newScene(gctx, args)
	if err != nil {
		return fmt.Errorf("harness: construct scene: %w", err)
	}
	if r, ok := scene.(Releaser); ok {
		defer r.Release()
	}

	d := NewDriver(win, gctx, chain, scene, cfg.AcquireRetries)
	runErr := d.Run(ctx)

	if cfg.Snapshot != "" {
		if err := saveSnapshot(gctx, cfg.Snapshot); err != nil {
			runErr = errors.Join(runErr, err)
		} else {
			log.Info("snapshot written", "path", cfg.Snapshot, "frames", d.Frames())
		}
	}
	return runErr
}

func saveSnapshot(gctx gpu.Context, path string) error {
	s, ok := gctx.(gpu.Snapshotter)
	if !ok {
		return fmt.Errorf("harness: backend %s cannot capture frames", gctx.Backend())
	}
	img, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("harness: snapshot: %w", err)
	}
	if err := snapshot.Save(path, img); err != nil {
		return fmt.Errorf("harness: snapshot: %w", err)
	}
	return nil
}
