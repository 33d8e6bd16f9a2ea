package gpu

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

type Op string

const (
	OpCompile  Op = "compile"
	OpBuffer   Op = "buffer"
	OpUpload   Op = "upload"
	OpViewport Op = "viewport"
	OpClear    Op = "clear"
	OpUse      Op = "use"
	OpBlend    Op = "blend"
	OpUniform  Op = "uniform"
	OpDraw     Op = "draw"
)

// Call is one recorded device operation. Only the fields relevant to Op
// are set.
type Call struct {
	Op         Op
	Program    Program
	Name       string
	Uniform    Uniform
	Values     []float32
	Buffer     Buffer
	ByteOffset int
	Topology   Topology
	First      int
	Count      int
	Blend      Blend
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

type recordedProgram struct {
	name     string
	uniforms map[string]Uniform
}

// Recorder is a Device that draws nothing and remembers every call. Uniforms
// resolve only when declared in the program's sources, the same way a
// driver only reports active uniforms.
type Recorder struct {
	Calls []Call

	// FailPrograms makes CompileProgram fail for the listed program names.
	FailPrograms map[string]bool
	// Hidden uniform names never resolve, as if the compiler stripped them.
	Hidden map[string]bool
	// Rejected holds uploads that did not fit their buffer.
	Rejected []Call

	programs    []recordedProgram
	uniformName map[Uniform]string
	buffers     map[uint32][]float32
	nextBuffer  uint32
	nextUniform Uniform
}

func NewRecorder() *Recorder {
	return &Recorder{
		FailPrograms: map[string]bool{},
		Hidden:       map[string]bool{},
		uniformName:  map[Uniform]string{},
		buffers:      map[uint32][]float32{},
	}
}

func (r *Recorder) CompileProgram(name, vertexSrc, fragmentSrc string) (Program, error) {
	r.Calls = append(r.Calls, Call{Op: OpCompile, Name: name})
	if r.FailPrograms[name] {
		return 0, fmt.Errorf("program %q failed to link", name)
	}

	prog := recordedProgram{name: name, uniforms: map[string]Uniform{}}
	for _, src := range []string{vertexSrc, fragmentSrc} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := prog.uniforms[m[1]]; ok || r.Hidden[m[1]] {
				continue
			}
			prog.uniforms[m[1]] = r.nextUniform
			r.uniformName[r.nextUniform] = m[1]
			r.nextUniform++
		}
	}
	r.programs = append(r.programs, prog)
	return Program(len(r.programs)), nil
}

func (r *Recorder) ResolveUniform(p Program, name string) Uniform {
	if p == 0 || int(p) > len(r.programs) {
		return InvalidUniform
	}
	if u, ok := r.programs[p-1].uniforms[name]; ok {
		return u
	}
	return InvalidUniform
}

func (r *Recorder) CreateBuffer(capacityBytes int, usage Usage) (Buffer, error) {
	r.nextBuffer++
	b := Buffer{ID: r.nextBuffer, Array: r.nextBuffer, Capacity: capacityBytes}
	r.buffers[b.ID] = make([]float32, capacityBytes/FloatSize)
	r.Calls = append(r.Calls, Call{Op: OpBuffer, Buffer: b})
	return b, nil
}

// UploadSubRange skips uploads to unknown buffers or outside the buffer's
// capacity, recording them in Rejected instead of Calls.
func (r *Recorder) UploadSubRange(b Buffer, byteOffset int, data []float32) {
	contents, ok := r.buffers[b.ID]
	if !ok || byteOffset < 0 || byteOffset%FloatSize != 0 ||
		byteOffset+len(data)*FloatSize > len(contents)*FloatSize {
		r.Rejected = append(r.Rejected, Call{
			Op:         OpUpload,
			Buffer:     b,
			ByteOffset: byteOffset,
			Values:     append([]float32(nil), data...),
		})
		return
	}
	copy(contents[byteOffset/FloatSize:], data)
	r.Calls = append(r.Calls, Call{
		Op:         OpUpload,
		Buffer:     b,
		ByteOffset: byteOffset,
		Values:     append([]float32(nil), data...),
	})
}

func (r *Recorder) Viewport(width, height int) {
	r.Calls = append(r.Calls, Call{Op: OpViewport, Values: []float32{float32(width), float32(height)}})
}

func (r *Recorder) Clear(color mgl32.Vec4) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Values: color[:]})
}

func (r *Recorder) UseProgram(p Program) {
	r.Calls = append(r.Calls, Call{Op: OpUse, Program: p})
}

func (r *Recorder) SetBlend(mode Blend) {
	r.Calls = append(r.Calls, Call{Op: OpBlend, Blend: mode})
}

func (r *Recorder) setUniform(u Uniform, values ...float32) {
	if !u.Valid() {
		return
	}
	r.Calls = append(r.Calls, Call{
		Op:      OpUniform,
		Uniform: u,
		Name:    r.uniformName[u],
		Values:  values,
	})
}

func (r *Recorder) SetFloat(u Uniform, v float32) {
	r.setUniform(u, v)
}

func (r *Recorder) SetVec2(u Uniform, v mgl32.Vec2) {
	r.setUniform(u, v[0], v[1])
}

func (r *Recorder) SetVec4(u Uniform, v mgl32.Vec4) {
	r.setUniform(u, v[0], v[1], v[2], v[3])
}

func (r *Recorder) Draw(b Buffer, topology Topology, first, count int) {
	r.Calls = append(r.Calls, Call{
		Op:       OpDraw,
		Buffer:   b,
		Topology: topology,
		First:    first,
		Count:    count,
	})
}

// Contents returns the current data of buffer b.
func (r *Recorder) Contents(b Buffer) []float32 {
	return r.buffers[b.ID]
}

// ProgramName returns the name p was compiled under.
func (r *Recorder) ProgramName(p Program) string {
	if p == 0 || int(p) > len(r.programs) {
		return ""
	}
	return r.programs[p-1].name
}

// Count returns how many recorded calls have the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops recorded and rejected calls but keeps programs and buffers.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Rejected = r.Rejected[:0]
}
