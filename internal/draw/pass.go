package draw

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumensocial/lumen/internal/gpu"
)

type uniformKind int

const (
	kindFloat uniformKind = iota
	kindVec2
	kindVec4
)

// UniformValue is one uniform write belonging to a pass.
type UniformValue struct {
	Name     string
	Location gpu.Uniform
	kind     uniformKind
	value    mgl32.Vec4
}

func Float(name string, loc gpu.Uniform, v float32) UniformValue {
	return UniformValue{Name: name, Location: loc, kind: kindFloat, value: mgl32.Vec4{v}}
}

func Vec2(name string, loc gpu.Uniform, v mgl32.Vec2) UniformValue {
	return UniformValue{Name: name, Location: loc, kind: kindVec2, value: v.Vec4(0, 0)}
}

func Vec4(name string, loc gpu.Uniform, v mgl32.Vec4) UniformValue {
	return UniformValue{Name: name, Location: loc, kind: kindVec4, value: v}
}

// Value returns the components this uniform carries.
func (u UniformValue) Value() []float32 {
	switch u.kind {
	case kindFloat:
		return u.value[:1]
	case kindVec2:
		return u.value[:2]
	default:
		return u.value[:]
	}
}

func (u UniformValue) apply(dev gpu.Device) {
	switch u.kind {
	case kindFloat:
		dev.SetFloat(u.Location, u.value[0])
	case kindVec2:
		dev.SetVec2(u.Location, u.value.Vec2())
	case kindVec4:
		dev.SetVec4(u.Location, u.value)
	}
}

// Pass is the complete state of one draw: nothing is inherited from the pass
// before it.
type Pass struct {
	Name     string
	Program  gpu.Program
	Blend    gpu.Blend
	Uniforms []UniformValue
	Buffer   gpu.Buffer
	Topology gpu.Topology
	First    int
	Count    int
}

// Issue binds the pass program, applies the blend mode and every uniform,
// then draws.
func (p Pass) Issue(dev gpu.Device) {
	dev.UseProgram(p.Program)
	dev.SetBlend(p.Blend)
	for _, u := range p.Uniforms {
		u.apply(dev)
	}
	dev.Draw(p.Buffer, p.Topology, p.First, p.Count)
}

// Uniform returns the value of the named uniform in the pass.
func (p Pass) Uniform(name string) (UniformValue, bool) {
	for _, u := range p.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return UniformValue{}, false
}
