// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package demo holds the geometry and shader shared by the demo commands.
package demo

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// TriangleWGSL draws vertex-colored triangles in clip space.
const TriangleWGSL = `
struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) color: vec3<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) color: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(in.position, 0.0, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`

// Vertex matches the TriangleWGSL vertex input.
type Vertex struct {
	Pos   [2]float32
	Color [3]float32
}

// Vertex buffer layout of TriangleWGSL.
const (
	VertexStride = 20
	ColorOffset  = 8
)

var baseTriangle = [3]Vertex{
	{Pos: [2]float32{0, 0.6}, Color: [3]float32{1, 0.2, 0.2}},
	{Pos: [2]float32{-0.52, -0.3}, Color: [3]float32{0.2, 1, 0.2}},
	{Pos: [2]float32{0.52, -0.3}, Color: [3]float32{0.2, 0.2, 1}},
}

// ClearColor is the background of both demos, as RGBA in [0, 1].
var ClearColor = [4]float64{0.08, 0.09, 0.12, 1}

// Transform rotates by angle radians about the origin, then squeezes x by
// the aspect ratio so the triangle keeps its shape in wide windows.
func Transform(angle float32, width, height uint32) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Scale3D(1/aspect, 1, 1).Mul4(mgl32.HomogRotate3DZ(angle))
}

// Triangle returns the demo triangle under m.
func Triangle(m mgl32.Mat4) []Vertex {
	out := make([]Vertex, len(baseTriangle))
	for i, v := range baseTriangle {
		p := m.Mul4x1(mgl32.Vec4{v.Pos[0], v.Pos[1], 0, 1})
		out[i] = Vertex{Pos: [2]float32{p.X(), p.Y()}, Color: v.Color}
	}
	return out
}

// Bytes packs vertices as little-endian float32s in VertexStride records.
func Bytes(verts []Vertex) []byte {
	buf := make([]byte, 0, len(verts)*VertexStride)
	for _, v := range verts {
		for _, f := range [...]float32{v.Pos[0], v.Pos[1], v.Color[0], v.Color[1], v.Color[2]} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// Spinner accumulates a rotation angle.
type Spinner struct {
	// Speed is in radians per second.
	Speed float32

	angle float32
}

// Advance moves the angle forward by dt and returns it, wrapped to [0, 2π).
func (s *Spinner) Advance(dt time.Duration) float32 {
	s.angle += s.Speed * float32(dt.Seconds())
	s.angle = float32(math.Mod(float64(s.angle), 2*math.Pi))
	if s.angle < 0 {
		s.angle += 2 * math.Pi
	}
	return s.angle
}

// Angle returns the current angle.
func (s *Spinner) Angle() float32 { return s.angle }
