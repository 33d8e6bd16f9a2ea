package shaders

import _ "embed"

//go:embed particles.vert.glsl
var ParticleVertex string

//go:embed particles.frag.glsl
var ParticleFragment string

//go:embed mesh.vert.glsl
var MeshVertex string

//go:embed mesh.frag.glsl
var MeshFragment string

//go:embed vignette.vert.glsl
var VignetteVertex string

//go:embed vignette.frag.glsl
var VignetteFragment string

// Source is the vertex and fragment text of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

var (
	Particles = Source{Name: "particles", Vertex: ParticleVertex, Fragment: ParticleFragment}
	Mesh      = Source{Name: "mesh", Vertex: MeshVertex, Fragment: MeshFragment}
	Vignette  = Source{Name: "vignette", Vertex: VignetteVertex, Fragment: VignetteFragment}
)
