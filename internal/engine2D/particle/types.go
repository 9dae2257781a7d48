package particle

import (
	"glyphfield/internal/glyph"
	"glyphfield/internal/vmath"
)

// Particle is one marker bound to the sample point it was built from.
type Particle struct {
	Origin   vmath.Vec2
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64
}

// Field owns every particle of the current glyph layout.
type Field struct {
	Particles []Particle
	Physics   Physics
}

// Physics holds the force model constants. Changes apply on the next frame.
type Physics struct {
	MoveSpeed      float64 `json:"move_speed" yaml:"move_speed"`
	Friction       float64 `json:"friction" yaml:"friction"`
	PointerRadius  float64 `json:"pointer_radius" yaml:"pointer_radius"`
	ParticleRadius float64 `json:"particle_radius" yaml:"particle_radius"`
}

const (
	DefaultMoveSpeed      = 0.01
	DefaultFriction       = 0.86
	DefaultPointerRadius  = 100
	DefaultParticleRadius = 10
)

// DefaultPhysics returns the reference constants.
func DefaultPhysics() Physics {
	return Physics{
		MoveSpeed:      DefaultMoveSpeed,
		Friction:       DefaultFriction,
		PointerRadius:  DefaultPointerRadius,
		ParticleRadius: DefaultParticleRadius,
	}
}

// NewParticle creates a particle resting on its sample point.
func NewParticle(point glyph.SamplePoint, radius float64) Particle {
	origin := vmath.Vec2{X: float64(point.X), Y: float64(point.Y)}
	return Particle{
		Origin:   origin,
		Position: origin,
		Radius:   radius,
	}
}
