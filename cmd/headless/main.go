// Command headless renders a rotating triangle offscreen on a HAL device
// and writes the last frame to an image file.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/backend/native"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window"
)

// baseConfig returns the defaults for this command overlaid with the
// HARNESS_* environment.
func baseConfig() (harness.Config, error) {
	return harness.ConfigFromEnv(harness.DefaultConfig().
		WithTitle("headless").
		WithBackend(native.NameNoop).
		WithSnapshot("headless.png"))
}

func main() {
	if err := harness.LoadEnvFile(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: %v", err)
	}
	base, err := baseConfig()
	if err != nil {
		log.Fatal(err)
	}

	var (
		width   = flag.Int("width", base.Width, "framebuffer width")
		height  = flag.Int("height", base.Height, "framebuffer height")
		backend = flag.String("backend", base.Backend, "HAL backend: noop or vulkan")
		frames  = flag.Int("frames", 60, "number of frames to render")
		output  = flag.String("output", base.Snapshot, "snapshot file (.png or .bmp)")
		verbose = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		harness.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := base.
		WithSize(*width, *height).
		WithBackend(*backend).
		WithWindow(window.PlatformHeadless).
		WithSnapshot(*output)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	b, err := gpu.Lookup(cfg.Backend)
	if err != nil {
		log.Fatal(err)
	}
	win := window.NewHeadless(cfg.WindowOptions(), window.WithFrameLimit(*frames))
	defer win.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := harness.Run(ctx, cfg, win, b, newTriangleScene, sceneArgs{}); err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("rendered %d frames on %s, saved %s", *frames, cfg.Backend, cfg.Snapshot)
}
