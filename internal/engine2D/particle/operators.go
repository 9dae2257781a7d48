package particle

import "glyphfield/internal/vmath"

// Repel applies the pointer impulse when the pointer is inside the particle's
// influence ring. The impulse is the overshoot between the pointer and the point
// on the ring of radius minDist around the particle, facing the pointer.
// Returns false when dist >= minDist and velocity was left untouched.
func (p *Particle) Repel(pointer vmath.Vec2, pointerRadius float64) bool {
	delta := pointer.Sub(p.Position)
	dist := delta.Len()
	minDist := p.Radius + pointerRadius

	if dist >= minDist {
		return false
	}

	target := p.Position.Add(vmath.FromAngle(delta.Angle(), minDist))
	p.Velocity = p.Velocity.Sub(target.Sub(pointer))
	return true
}

// Advance integrates one frame in fixed order: homing toward the origin, damping,
// then position. A particle resting on its origin with zero velocity is a fixed point.
func (p *Particle) Advance(physics Physics) {
	p.Velocity = p.Velocity.Add(p.Origin.Sub(p.Position).Scale(physics.MoveSpeed))
	p.Velocity = p.Velocity.Scale(physics.Friction)
	p.Position = p.Position.Add(p.Velocity)
}
