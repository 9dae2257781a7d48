package particle

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPhysics is returned when a force model constant is out of range.
var ErrInvalidPhysics = errors.New("particle: invalid physics")

// Validate rejects constants that would make the integrator diverge or never settle.
func (p Physics) Validate() error {
	switch {
	case !finite(p.MoveSpeed) || p.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed %v must be positive", ErrInvalidPhysics, p.MoveSpeed)
	case !finite(p.Friction) || p.Friction <= 0 || p.Friction >= 1:
		return fmt.Errorf("%w: friction %v must be in (0,1)", ErrInvalidPhysics, p.Friction)
	case !finite(p.PointerRadius) || p.PointerRadius < 0:
		return fmt.Errorf("%w: pointer radius %v must not be negative", ErrInvalidPhysics, p.PointerRadius)
	case !finite(p.ParticleRadius) || p.ParticleRadius < 0:
		return fmt.Errorf("%w: particle radius %v must not be negative", ErrInvalidPhysics, p.ParticleRadius)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
