package engine2D

import (
	"image/color"

	"glyphfield/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var fallbackTexture *rl.Texture2D

// DrawMarkers draws sprite centred on every position, scaled to size pixels.
// A zero sprite falls back to a plain white square.
func DrawMarkers(sprite rl.Texture2D, positions []vmath.Vec2, size float32, tint color.RGBA) {
	img := &sprite
	if img.ID == 0 {
		if fallbackTexture == nil {
			i := rl.GenImageColor(2, 2, rl.White)
			t := rl.LoadTextureFromImage(i)
			rl.UnloadImage(i)
			fallbackTexture = &t
		}
		img = fallbackTexture
	}

	sourceRec := rl.NewRectangle(0, 0, float32(img.Width), float32(img.Height))
	origin := rl.NewVector2(size/2, size/2)
	rlTint := rl.NewColor(tint.R, tint.G, tint.B, tint.A)

	rl.BeginBlendMode(rl.BlendAlpha)
	for _, p := range positions {
		destRec := rl.NewRectangle(float32(p.X), float32(p.Y), size, size)
		rl.DrawTexturePro(*img, sourceRec, destRec, origin, 0, rlTint)
	}
	rl.EndBlendMode()
}
