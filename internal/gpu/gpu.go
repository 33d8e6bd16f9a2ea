// Package gpu describes the drawing capabilities the composition pipeline
// needs, independent of the graphics API behind them.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Program is a linked shader program. Zero means no program.
type Program uint32

// Uniform is a resolved uniform location. Writes to an invalid location
// are ignored.
type Uniform int32

const InvalidUniform Uniform = -1

func (u Uniform) Valid() bool {
	return u >= 0
}

// Buffer is a vertex buffer holding tightly packed (x, y) float pairs,
// together with the vertex array that describes it.
type Buffer struct {
	ID       uint32
	Array    uint32
	Capacity int
}

type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

type Topology int

const (
	Points Topology = iota
	Triangles
	TriangleStrip
)

func (t Topology) String() string {
	switch t {
	case Points:
		return "points"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle_strip"
	default:
		return "unknown"
	}
}

type Blend int

const (
	// BlendAdditive adds source colour weighted by its alpha.
	BlendAdditive Blend = iota
	// BlendAlpha is ordinary over-compositing, used for darkening passes.
	BlendAlpha
)

func (b Blend) String() string {
	if b == BlendAlpha {
		return "alpha"
	}
	return "additive"
}

// Device is the set of GPU operations the renderer issues. Implementations
// are not safe for concurrent use; all calls happen on the render thread.
type Device interface {
	CompileProgram(name, vertexSrc, fragmentSrc string) (Program, error)
	ResolveUniform(p Program, name string) Uniform
	CreateBuffer(capacityBytes int, usage Usage) (Buffer, error)
	UploadSubRange(b Buffer, byteOffset int, data []float32)
	Viewport(width, height int)
	Clear(color mgl32.Vec4)
	UseProgram(p Program)
	SetBlend(mode Blend)
	SetFloat(u Uniform, v float32)
	SetVec2(u Uniform, v mgl32.Vec2)
	SetVec4(u Uniform, v mgl32.Vec4)
	Draw(b Buffer, topology Topology, first, count int)
}

// FloatSize is the size in bytes of one vertex component.
const FloatSize = 4
