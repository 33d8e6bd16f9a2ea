package draw

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/lumensocial/lumen/internal/avatar"
	"github.com/lumensocial/lumen/internal/gpu"
	"github.com/lumensocial/lumen/internal/shaders"
)

const (
	PassAmbient  = "ambient"
	PassAura     = "aura"
	PassGlow     = "glow"
	PassAvatar   = "avatar"
	PassVignette = "vignette"
)

var quadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	1.0, 1.0,
}

type Config struct {
	AmbientCount int
	AuraCount    int

	Background       mgl32.Vec4
	AmbientColor     mgl32.Vec4
	AmbientPointSize float32
	AuraColor        mgl32.Vec4
	AuraPointSize    float32
	GlowColor        mgl32.Vec4
	GlowScale        float32
	AvatarColor      mgl32.Vec4
	Vignette         bool
	VignetteStrength float32
}

func DefaultConfig() Config {
	return Config{
		AmbientCount:     900,
		AuraCount:        220,
		Background:       mgl32.Vec4{0.04, 0.05, 0.07, 1.0},
		AmbientColor:     mgl32.Vec4{0.55, 0.7, 1.0, 0.25},
		AmbientPointSize: 6,
		AuraColor:        mgl32.Vec4{1.0, 0.55, 0.2, 0.35},
		AuraPointSize:    8,
		GlowColor:        mgl32.Vec4{1.0, 0.6, 0.3, 0.18},
		GlowScale:        1.06,
		AvatarColor:      mgl32.Vec4{0.7, 0.76, 0.86, 1.0},
		Vignette:         true,
		VignetteStrength: 0.55,
	}
}

// Frame carries the per-frame inputs of the composition.
type Frame struct {
	Time         float32
	AvatarOffset float32
	Width        int
	Height       int
}

type program struct {
	id       gpu.Program
	uniforms map[string]gpu.Uniform
}

func (p program) loc(name string) gpu.Uniform {
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	return gpu.InvalidUniform
}

// Pipeline composites the particle fields and the avatar in a fixed order.
type Pipeline struct {
	dev    gpu.Device
	logger *zap.Logger
	cfg    Config

	particles program
	mesh      program
	vignette  program

	particleBuf gpu.Buffer
	meshBuf     gpu.Buffer
	quadBuf     gpu.Buffer

	width, height int
}

// New builds every program and buffer the composition needs. A program that
// fails to compile or link is returned as an error; a uniform that does not
// resolve only produces a warning.
func New(dev gpu.Device, logger *zap.Logger, cfg Config) (*Pipeline, error) {
	p := &Pipeline{dev: dev, logger: logger, cfg: cfg}

	var err error
	if p.particles, err = p.build(shaders.Particles, "uColor", "uPointSize"); err != nil {
		return nil, err
	}
	if p.mesh, err = p.build(shaders.Mesh, "uOffset", "uScale", "uColor", "uTime"); err != nil {
		return nil, err
	}
	if cfg.Vignette {
		if p.vignette, err = p.build(shaders.Vignette, "uResolution", "uStrength"); err != nil {
			return nil, err
		}
	}

	floats := 2 * (cfg.AmbientCount + cfg.AuraCount)
	if p.particleBuf, err = dev.CreateBuffer(floats*gpu.FloatSize, gpu.DynamicDraw); err != nil {
		return nil, fmt.Errorf("failed to create particle buffer: %w", err)
	}

	if p.meshBuf, err = dev.CreateBuffer(len(avatar.Mesh)*gpu.FloatSize, gpu.StaticDraw); err != nil {
		return nil, fmt.Errorf("failed to create avatar buffer: %w", err)
	}
	dev.UploadSubRange(p.meshBuf, 0, avatar.Mesh)

	if cfg.Vignette {
		if p.quadBuf, err = dev.CreateBuffer(len(quadVertices)*gpu.FloatSize, gpu.StaticDraw); err != nil {
			return nil, fmt.Errorf("failed to create vignette buffer: %w", err)
		}
		dev.UploadSubRange(p.quadBuf, 0, quadVertices)
	}

	return p, nil
}

func (p *Pipeline) build(src shaders.Source, names ...string) (program, error) {
	id, err := p.dev.CompileProgram(src.Name, src.Vertex, src.Fragment)
	if err != nil {
		return program{}, fmt.Errorf("failed to build %s program: %w", src.Name, err)
	}

	prog := program{id: id, uniforms: make(map[string]gpu.Uniform, len(names))}
	for _, name := range names {
		loc := p.dev.ResolveUniform(id, name)
		if !loc.Valid() {
			p.logger.Warn("Uniform not found, writes will be skipped",
				zap.String("program", src.Name),
				zap.String("uniform", name),
			)
		}
		prog.uniforms[name] = loc
	}
	return prog, nil
}

// Upload replaces the particle buffer contents with the packed ambient and
// aura positions.
func (p *Pipeline) Upload(packed []float32) {
	p.dev.UploadSubRange(p.particleBuf, 0, packed)
}

// Passes returns the ordered draw passes for one frame.
func (p *Pipeline) Passes(f Frame) []Pass {
	offset := mgl32.Vec2{0, f.AvatarOffset}

	passes := []Pass{
		{
			Name:    PassAmbient,
			Program: p.particles.id,
			Blend:   gpu.BlendAdditive,
			Uniforms: []UniformValue{
				Float("uPointSize", p.particles.loc("uPointSize"), p.cfg.AmbientPointSize),
				Vec4("uColor", p.particles.loc("uColor"), p.cfg.AmbientColor),
			},
			Buffer:   p.particleBuf,
			Topology: gpu.Points,
			First:    0,
			Count:    p.cfg.AmbientCount,
		},
		{
			Name:    PassAura,
			Program: p.particles.id,
			Blend:   gpu.BlendAdditive,
			Uniforms: []UniformValue{
				Float("uPointSize", p.particles.loc("uPointSize"), p.cfg.AuraPointSize),
				Vec4("uColor", p.particles.loc("uColor"), p.cfg.AuraColor),
			},
			Buffer:   p.particleBuf,
			Topology: gpu.Points,
			First:    p.cfg.AmbientCount,
			Count:    p.cfg.AuraCount,
		},
		p.meshPass(PassGlow, gpu.BlendAdditive, p.cfg.GlowScale, p.cfg.GlowColor, offset, f.Time),
		// The body covers whatever was drawn beneath it.
		p.meshPass(PassAvatar, gpu.BlendAlpha, 1.0, p.cfg.AvatarColor, offset, f.Time),
	}

	if p.cfg.Vignette {
		passes = append(passes, Pass{
			Name:    PassVignette,
			Program: p.vignette.id,
			Blend:   gpu.BlendAlpha,
			Uniforms: []UniformValue{
				Vec2("uResolution", p.vignette.loc("uResolution"),
					mgl32.Vec2{float32(max(f.Width, 1)), float32(max(f.Height, 1))}),
				Float("uStrength", p.vignette.loc("uStrength"), p.cfg.VignetteStrength),
			},
			Buffer:   p.quadBuf,
			Topology: gpu.TriangleStrip,
			First:    0,
			Count:    4,
		})
	}

	return passes
}

func (p *Pipeline) meshPass(name string, blend gpu.Blend, scale float32, color mgl32.Vec4, offset mgl32.Vec2, t float32) Pass {
	return Pass{
		Name:    name,
		Program: p.mesh.id,
		Blend:   blend,
		Uniforms: []UniformValue{
			Vec2("uOffset", p.mesh.loc("uOffset"), offset),
			Float("uScale", p.mesh.loc("uScale"), scale),
			Vec4("uColor", p.mesh.loc("uColor"), color),
			Float("uTime", p.mesh.loc("uTime"), t),
		},
		Buffer:   p.meshBuf,
		Topology: gpu.Triangles,
		First:    0,
		Count:    avatar.MeshVertices,
	}
}

// Render clears the surface and issues every pass of the frame in order.
// Presenting the result is left to the caller.
func (p *Pipeline) Render(f Frame) {
	if f.Width != p.width || f.Height != p.height {
		p.dev.Viewport(f.Width, f.Height)
		p.width, p.height = f.Width, f.Height
	}

	p.dev.Clear(p.cfg.Background)
	for _, pass := range p.Passes(f) {
		pass.Issue(p.dev)
	}
}
