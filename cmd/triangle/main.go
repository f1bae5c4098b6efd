// Command triangle opens a window and draws a rotating triangle with
// wgpu-native. Escape closes the window, space pauses the rotation.
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
	"runtime"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/backend/webgpu"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/window/desktop"
)

func init() {
	// GLFW event processing must run on the main thread.
	runtime.LockOSThread()
}

func baseConfig() (harness.Config, error) {
	return harness.ConfigFromEnv(harness.DefaultConfig().
		WithTitle("triangle").
		WithWindow(desktop.PlatformGLFW).
		WithBackend(webgpu.Name))
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
		width   = flag.Int("width", base.Width, "window width")
		height  = flag.Int("height", base.Height, "window height")
		present = flag.String("present", base.PresentMode.String(), "present mode: mailbox, fifo or immediate")
		power   = flag.String("power", base.Device.PowerPreference.String(), "adapter preference: default, low-power or high-performance")
		verbose = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		harness.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mode, err := gpu.ParsePresentMode(*present)
	if err != nil {
		log.Fatal(err)
	}
	pref, err := gpu.ParsePowerPreference(*power)
	if err != nil {
		log.Fatal(err)
	}
	cfg := base.WithSize(*width, *height).WithPresentMode(mode).WithPowerPreference(pref)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	win, err := desktop.Open(cfg.WindowOptions())
	if err != nil {
		log.Fatal(err)
	}
	defer win.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := harness.Run(ctx, cfg, win, webgpu.Backend{}, newTriangleScene, win); err != nil {
		log.Fatalf("render: %v", err)
	}
}
