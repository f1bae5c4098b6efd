package main

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/harness"
	"github.com/gogpu/harness/backend/native"
	"github.com/gogpu/harness/gpu"
	"github.com/gogpu/harness/internal/demo"
	"github.com/gogpu/harness/window"
)

// frameStep is the simulated time between offscreen frames.
const frameStep = time.Second / 60

type sceneArgs struct{}

// bufferWriter is the part of hal.Queue the scene uploads through.
type bufferWriter interface {
	WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error
}

// triangleScene draws demo.Triangle with a HAL pipeline.
type triangleScene struct {
	device   hal.Device
	queue    bufferWriter
	shader   hal.ShaderModule
	layout   hal.PipelineLayout
	pipeline hal.RenderPipeline
	vertices hal.Buffer

	spin demo.Spinner
}

func newTriangleScene(dev gpu.Device, _ sceneArgs) (harness.Scene, error) {
	device, err := native.Device(dev)
	if err != nil {
		return nil, err
	}
	queue, err := native.Queue(dev)
	if err != nil {
		return nil, err
	}
	s := &triangleScene{device: device, queue: queue, spin: demo.Spinner{Speed: 1.5}}
	if err := s.createPipeline(); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *triangleScene) createPipeline() error {
	shader, err := native.CreateShaderModule(s.device, "triangle_shader", demo.TriangleWGSL)
	if err != nil {
		return err
	}
	s.shader = shader

	layout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{Label: "triangle_layout"})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	s.layout = layout

	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "triangle_pipeline",
		Layout: s.layout,
		Vertex: hal.VertexState{
			Module:     s.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{{
				ArrayStride: demo.VertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32x3, Offset: demo.ColorOffset, ShaderLocation: 1},
				},
			}},
		},
		Fragment: &hal.FragmentState{
			Module:     s.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    gpu.SwapchainFormat,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	s.pipeline = pipeline

	vertices, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "triangle_vertices",
		Size:  3 * demo.VertexStride,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	s.vertices = vertices
	return nil
}

func (s *triangleScene) Draw(enc gpu.CommandEncoder, target gpu.TextureView) error {
	angle := s.spin.Advance(frameStep)
	verts := demo.Triangle(demo.Transform(angle, target.Width(), target.Height()))
	if err := s.queue.WriteBuffer(s.vertices, 0, demo.Bytes(verts)); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}

	c := demo.ClearColor
	rp, err := native.BeginClearPass(enc, target, gputypes.Color{R: c[0], G: c[1], B: c[2], A: c[3]})
	if err != nil {
		return err
	}
	rp.SetPipeline(s.pipeline)
	rp.SetVertexBuffer(0, s.vertices, 0)
	rp.Draw(uint32(len(verts)), 1, 0, 0)
	rp.End()
	return nil
}

func (s *triangleScene) HandleEvent(ev window.Event) {
	if r, ok := ev.(window.Resized); ok {
		harness.Logger().Debug("headless: resized", "width", r.Width, "height", r.Height)
	}
}

func (s *triangleScene) Release() {
	if s.vertices != nil {
		s.device.DestroyBuffer(s.vertices)
	}
	if s.pipeline != nil {
		s.device.DestroyRenderPipeline(s.pipeline)
	}
	if s.layout != nil {
		s.device.DestroyPipelineLayout(s.layout)
	}
	if s.shader != nil {
		s.device.DestroyShaderModule(s.shader)
	}
}
