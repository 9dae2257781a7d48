package particle

import (
	"glyphfield/internal/glyph"
	"glyphfield/internal/vmath"
)

// NewField creates an empty field after validating the physics constants.
func NewField(physics Physics) (*Field, error) {
	if err := physics.Validate(); err != nil {
		return nil, err
	}
	return &Field{Physics: physics}, nil
}

// Build discards every particle and creates one resting particle per point.
func (f *Field) Build(points []glyph.SamplePoint) {
	particles := make([]Particle, len(points))
	for i, point := range points {
		particles[i] = NewParticle(point, f.Physics.ParticleRadius)
	}
	f.Particles = particles
}

// SetPhysics swaps the force model constants. The particle radius is copied onto
// every particle so the next Advance sees the new ring size without a rebuild.
func (f *Field) SetPhysics(physics Physics) error {
	if err := physics.Validate(); err != nil {
		return err
	}
	f.Physics = physics
	for i := range f.Particles {
		f.Particles[i].Radius = physics.ParticleRadius
	}
	return nil
}

// Advance runs one frame for every particle against the latest pointer position.
func (f *Field) Advance(pointer vmath.Vec2) {
	for i := range f.Particles {
		particle := &f.Particles[i]
		particle.Repel(pointer, f.Physics.PointerRadius)
		particle.Advance(f.Physics)
	}
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.Particles)
}

// Positions appends every particle position to dst, in build order.
func (f *Field) Positions(dst []vmath.Vec2) []vmath.Vec2 {
	for i := range f.Particles {
		dst = append(dst, f.Particles[i].Position)
	}
	return dst
}

// Settled reports whether every particle is within epsilon of its origin and
// moving slower than epsilon per frame.
func (f *Field) Settled(epsilon float64) bool {
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Position.Dist(p.Origin) > epsilon || p.Velocity.Len() > epsilon {
			return false
		}
	}
	return true
}
