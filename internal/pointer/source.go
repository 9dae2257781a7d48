package pointer

import (
	"context"
	"time"

	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"
)

// DefaultPollInterval matches a 60 Hz frame tick.
const DefaultPollInterval = 16 * time.Millisecond

// Source reports the pointer position in stage coordinates.
type Source interface {
	Position() (vmath.Vec2, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (vmath.Vec2, error)

func (f SourceFunc) Position() (vmath.Vec2, error) {
	return f()
}

// Offset translates positions from src by subtracting the value returned by
// origin, e.g. converting screen coordinates into window coordinates.
func Offset(src Source, origin func() vmath.Vec2) Source {
	return SourceFunc(func() (vmath.Vec2, error) {
		pos, err := src.Position()
		if err != nil {
			return pos, err
		}
		return pos.Sub(origin()), nil
	})
}

// Poll copies src into reg every interval until ctx is done. Read errors are
// logged once per streak and the last good value stays in the register.
func Poll(ctx context.Context, src Source, reg *Register, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failing := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pos, err := src.Position()
			if err != nil {
				if !failing {
					utils.Warn("Pointer: source read failed: %v", err)
					failing = true
				}
				continue
			}
			if failing {
				utils.Info("Pointer: source recovered")
				failing = false
			}
			reg.Store(pos)
		}
	}
}
