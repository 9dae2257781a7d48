package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphfield/internal/glyph"
	"glyphfield/internal/vmath"
)

func TestNewField_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Physics)
	}{
		{"zero friction", func(p *Physics) { p.Friction = 0 }},
		{"friction of one", func(p *Physics) { p.Friction = 1 }},
		{"friction above one", func(p *Physics) { p.Friction = 1.2 }},
		{"negative pointer radius", func(p *Physics) { p.PointerRadius = -1 }},
		{"negative particle radius", func(p *Physics) { p.ParticleRadius = -0.5 }},
		{"zero move speed", func(p *Physics) { p.MoveSpeed = 0 }},
		{"nan move speed", func(p *Physics) { p.MoveSpeed = math.NaN() }},
		{"infinite radius", func(p *Physics) { p.PointerRadius = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			physics := DefaultPhysics()
			tt.mutate(&physics)

			_, err := NewField(physics)
			assert.ErrorIs(t, err, ErrInvalidPhysics)
		})
	}

	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)
	assert.Zero(t, f.Len())
}

func TestField_Build(t *testing.T) {
	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)

	points := []glyph.SamplePoint{{X: 1, Y: 2}, {X: 7, Y: 2}, {X: 3, Y: 9}}
	f.Build(points)
	require.Equal(t, len(points), f.Len())
	for i, p := range f.Particles {
		want := vmath.Vec2{X: float64(points[i].X), Y: float64(points[i].Y)}
		assert.Equal(t, want, p.Origin)
		assert.Equal(t, want, p.Position)
		assert.Equal(t, vmath.Vec2{}, p.Velocity)
		assert.Equal(t, float64(DefaultParticleRadius), p.Radius)
	}

	t.Run("rebuild leaves no stale particles", func(t *testing.T) {
		f.Advance(vmath.Vec2{X: 3, Y: 3})
		f.Build(points[:1])
		require.Equal(t, 1, f.Len())
		assert.Equal(t, f.Particles[0].Origin, f.Particles[0].Position)
		assert.Equal(t, vmath.Vec2{}, f.Particles[0].Velocity)

		f.Build(nil)
		assert.Zero(t, f.Len())
	})
}

func TestField_SinglePixelScenario(t *testing.T) {
	mask := glyph.NewAlphaMask(100, 100)
	mask.Set(50, 50, 255)

	points, err := glyph.Sample(mask, 1, 100, 100)
	require.NoError(t, err)
	require.Equal(t, []glyph.SamplePoint{{X: 50, Y: 50}}, points)

	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)
	f.Build(points)
	require.Equal(t, 1, f.Len())

	pointer := vmath.Vec2{X: 50, Y: 50}
	f.Advance(pointer)

	moved := f.Particles[0].Position
	assert.Greater(t, moved.Dist(pointer), 0.0)
	// atan2(0, 0) is 0, so the impulse points along -x.
	assert.Less(t, moved.X, 50.0)
	assert.InDelta(t, 50, moved.Y, 1e-12)
}

func TestField_AdvanceIndependentParticles(t *testing.T) {
	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)
	f.Build([]glyph.SamplePoint{{X: 10, Y: 10}, {X: 500, Y: 500}})

	f.Advance(vmath.Vec2{X: 20, Y: 10})

	assert.NotEqual(t, f.Particles[0].Origin, f.Particles[0].Position)
	assert.Equal(t, f.Particles[1].Origin, f.Particles[1].Position)
}

func TestField_SetPhysics(t *testing.T) {
	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)
	f.Build([]glyph.SamplePoint{{X: 0, Y: 0}})

	bad := DefaultPhysics()
	bad.Friction = 2
	require.ErrorIs(t, f.SetPhysics(bad), ErrInvalidPhysics)
	assert.Equal(t, DefaultPhysics(), f.Physics)

	wide := DefaultPhysics()
	wide.ParticleRadius = 50
	require.NoError(t, f.SetPhysics(wide))
	assert.Equal(t, 50.0, f.Particles[0].Radius)

	// 140 is outside the default 110 ring but inside the new 150 ring.
	f.Advance(vmath.Vec2{X: 140, Y: 0})
	assert.Less(t, f.Particles[0].Position.X, 0.0)
}

func TestField_SettlesAfterPointerLeaves(t *testing.T) {
	f, err := NewField(DefaultPhysics())
	require.NoError(t, err)
	f.Build([]glyph.SamplePoint{{X: 100, Y: 100}, {X: 120, Y: 100}, {X: 110, Y: 130}})

	for i := 0; i < 30; i++ {
		f.Advance(vmath.Vec2{X: 110, Y: 110})
	}
	require.False(t, f.Settled(0.5))

	far := vmath.Vec2{X: -1000, Y: -1000}
	for i := 0; i < 2000; i++ {
		f.Advance(far)
	}
	assert.True(t, f.Settled(1e-6))

	positions := f.Positions(nil)
	require.Len(t, positions, 3)
	assert.InDelta(t, 120, positions[1].X, 1e-6)
}
