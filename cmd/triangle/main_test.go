package main

import (
	"testing"

	"github.com/gobuffalo/envy"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/backend/webgpu"
	"github.com/gogpu/harness/gpu"
)

func TestBaseConfig(t *testing.T) {
	envy.Temp(func() {
		envy.Set(harness.EnvPresentMode, "fifo")
		cfg, err := baseConfig()
		if err != nil {
			t.Fatalf("baseConfig() error = %v", err)
		}
		if cfg.Backend != webgpu.Name || cfg.PresentMode != gpu.PresentModeFifo {
			t.Errorf("baseConfig() = %+v", cfg)
		}
	})
}

func TestBaseConfigBadEnv(t *testing.T) {
	envy.Temp(func() {
		envy.Set(harness.EnvHeight, "-tall")
		if _, err := baseConfig(); err == nil {
			t.Error("baseConfig() accepted a non-numeric height")
		}
	})
}
