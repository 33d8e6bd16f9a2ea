package models

import "github.com/go-gl/mathgl/mgl32"

// Particle is one member of the ambient field. Positions are in NDC.
type Particle struct {
	X, Y   float32
	VX, VY float32
	Life   float32
}

// AuraParticle is stored relative to the avatar anchor; the avatar's
// vertical offset is added only when the population is packed.
type AuraParticle struct {
	X, Y   float32
	VX, VY float32
	Life   float32
}

// PointerSignal is the normalized pointer state for a single frame.
type PointerSignal struct {
	Pos    mgl32.Vec2
	Delta  mgl32.Vec2
	Active bool
}

// RawPointer is what the presentation surface reports before normalization.
type RawPointer struct {
	X, Y          float64
	Width, Height int
	ButtonHeld    bool
}

type AvatarState struct {
	Phase   float32
	OffsetY float32
}
