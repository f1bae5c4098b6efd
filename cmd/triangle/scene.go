package main

import (
	"fmt"
	"time"

	"github.com/rajveermalviya/go-webgpu/wgpu"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/backend/webgpu"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/internal/demo"
	"github.com/gogpu/harness/window"
	"github.com/gogpu/harness/window/desktop"
)

// triangleScene draws demo.Triangle with a wgpu pipeline.
type triangleScene struct {
	win      *desktop.Window
	queue    *wgpu.Queue
	pipeline *wgpu.RenderPipeline
	vertices *wgpu.Buffer

	spin   demo.Spinner
	last   time.Time
	paused bool
}

func newTriangleScene(dev gpu.Device, win *desktop.Window) (harness.Scene, error) {
	device, err := webgpu.Device(dev)
	if err != nil {
		return nil, err
	}
	queue, err := webgpu.Queue(dev)
	if err != nil {
		return nil, err
	}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "triangle_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: demo.TriangleWGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader: %w", err)
	}
	defer shader.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{Label: "triangle_layout"})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	defer layout.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "triangle_pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: demo.VertexStride,
				StepMode:    wgpu.VertexStepMode_Vertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormat_Float32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormat_Float32x3, Offset: demo.ColorOffset, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    wgpu.TextureFormat_BGRA8UnormSrgb,
				Blend:     &wgpu.BlendState_Replace,
				WriteMask: wgpu.ColorWriteMask_All,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopology_TriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}

	vertices, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "triangle_vertices",
		Size:  3 * demo.VertexStride,
		Usage: wgpu.BufferUsage_Vertex | wgpu.BufferUsage_CopyDst,
	})
	if err != nil {
		pipeline.Release()
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	return &triangleScene{
		win:      win,
		queue:    queue,
		pipeline: pipeline,
		vertices: vertices,
		spin:     demo.Spinner{Speed: 1.5},
		last:     time.Now(),
	}, nil
}

func (s *triangleScene) Draw(enc gpu.CommandEncoder, target gpu.TextureView) error {
	now := time.Now()
	if !s.paused {
		s.spin.Advance(now.Sub(s.last))
	}
	s.last = now

	verts := demo.Triangle(demo.Transform(s.spin.Angle(), target.Width(), target.Height()))
	if err := s.queue.WriteBuffer(s.vertices, 0, wgpu.ToBytes(verts)); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}

	c := demo.ClearColor
	pass, err := webgpu.BeginClearPass(enc, target, wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]})
	if err != nil {
		return err
	}
	pass.SetPipeline(s.pipeline)
	pass.SetVertexBuffer(0, s.vertices, 0, wgpu.WholeSize)
	pass.Draw(uint32(len(verts)), 1, 0, 0)
	err = pass.End()
	pass.Release()
	return err
}

func (s *triangleScene) HandleEvent(ev window.Event) {
	k, ok := ev.(window.KeyEvent)
	if !ok || k.Action != window.Press {
		return
	}
	switch k.Key {
	case window.KeyEscape:
		s.win.RequestClose()
	case window.KeySpace:
		s.paused = !s.paused
		harness.Logger().Info("triangle: rotation", "paused", s.paused)
	}
}

func (s *triangleScene) Release() {
	s.vertices.Release()
	s.pipeline.Release()
}
