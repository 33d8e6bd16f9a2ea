package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/gpu"
)

// Device implements gpu.Device on an OpenGL 4.1 core context. It must be
// created and used on the thread that owns the context.
type Device struct {
	logger   *zap.Logger
	programs []uint32
	buffers  []gpu.Buffer
}

// New loads the GL function pointers and sets the global state every pass
// relies on: blending on, additive by default, and shader-controlled point
// size.
func New(logger *zap.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	return &Device{logger: logger}, nil
}

func (d *Device) CompileProgram(name, vertexSrc, fragmentSrc string) (gpu.Program, error) {
	program, err := LinkProgram(name, vertexSrc, fragmentSrc)
	if err != nil {
		return 0, err
	}
	d.programs = append(d.programs, program)
	d.logger.Debug("Linked program", zap.String("program", name), zap.Uint32("id", program))
	return gpu.Program(program), nil
}

func (d *Device) ResolveUniform(p gpu.Program, name string) gpu.Uniform {
	if p == 0 {
		return gpu.InvalidUniform
	}
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return gpu.InvalidUniform
	}
	return gpu.Uniform(loc)
}

// CreateBuffer allocates a VBO of the given size with a VAO describing it as
// a stream of vec2 at attribute 0.
func (d *Device) CreateBuffer(capacityBytes int, usage gpu.Usage) (gpu.Buffer, error) {
	if capacityBytes <= 0 {
		return gpu.Buffer{}, fmt.Errorf("invalid buffer capacity %d", capacityBytes)
	}

	var b gpu.Buffer
	gl.GenVertexArrays(1, &b.Array)
	gl.GenBuffers(1, &b.ID)
	b.Capacity = capacityBytes

	hint := uint32(gl.STATIC_DRAW)
	if usage == gpu.DynamicDraw {
		hint = gl.DYNAMIC_DRAW
	}

	gl.BindVertexArray(b.Array)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ARRAY_BUFFER, capacityBytes, nil, hint)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*gpu.FloatSize, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *Device) UploadSubRange(b gpu.Buffer, byteOffset int, data []float32) {
	if len(data) == 0 {
		return
	}
	size := len(data) * gpu.FloatSize
	if byteOffset < 0 || byteOffset+size > b.Capacity {
		d.logger.Error("Upload outside buffer bounds",
			zap.Uint32("buffer", b.ID),
			zap.Int("offset", byteOffset),
			zap.Int("size", size),
			zap.Int("capacity", b.Capacity),
		)
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferSubData(gl.ARRAY_BUFFER, byteOffset, size, gl.Ptr(data))
}

func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) UseProgram(p gpu.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) SetBlend(mode gpu.Blend) {
	switch mode {
	case gpu.BlendAlpha:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	}
}

func (d *Device) SetFloat(u gpu.Uniform, v float32) {
	if u.Valid() {
		gl.Uniform1f(int32(u), v)
	}
}

func (d *Device) SetVec2(u gpu.Uniform, v mgl32.Vec2) {
	if u.Valid() {
		gl.Uniform2f(int32(u), v[0], v[1])
	}
}

func (d *Device) SetVec4(u gpu.Uniform, v mgl32.Vec4) {
	if u.Valid() {
		gl.Uniform4f(int32(u), v[0], v[1], v[2], v[3])
	}
}

func (d *Device) Draw(b gpu.Buffer, topology gpu.Topology, first, count int) {
	mode := uint32(gl.POINTS)
	switch topology {
	case gpu.Triangles:
		mode = gl.TRIANGLES
	case gpu.TriangleStrip:
		mode = gl.TRIANGLE_STRIP
	}
	gl.BindVertexArray(b.Array)
	gl.DrawArrays(mode, int32(first), int32(count))
	gl.BindVertexArray(0)
}

// Release deletes every program and buffer created through d.
func (d *Device) Release() {
	for _, p := range d.programs {
		gl.DeleteProgram(p)
	}
	for _, b := range d.buffers {
		gl.DeleteBuffers(1, &b.ID)
		gl.DeleteVertexArrays(1, &b.Array)
	}
	d.programs = nil
	d.buffers = nil
}

var _ gpu.Device = (*Device)(nil)
