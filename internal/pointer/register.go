package pointer

import (
	"sync/atomic"

	"glyphfield/internal/vmath"
)

// Register holds the most recent pointer position. Writers overwrite each other;
// a reader sees whichever value was current at the moment of the read. X and Y
// are published together, so a read never mixes coordinates from two writes.
type Register struct {
	pos     atomic.Pointer[vmath.Vec2]
	updates atomic.Uint64
}

// NewRegister returns a register holding initial.
func NewRegister(initial vmath.Vec2) *Register {
	r := &Register{}
	r.pos.Store(&initial)
	return r
}

// Store publishes a new position.
func (r *Register) Store(pos vmath.Vec2) {
	r.pos.Store(&pos)
	r.updates.Add(1)
}

// Load returns the latest position; the zero vector if nothing was stored.
func (r *Register) Load() vmath.Vec2 {
	if p := r.pos.Load(); p != nil {
		return *p
	}
	return vmath.Vec2{}
}

// Updates returns how many times Store was called.
func (r *Register) Updates() uint64 {
	return r.updates.Load()
}
