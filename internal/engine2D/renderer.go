package engine2D

import (
	"fmt"

	"glyphfield/internal/engine2D/shader"
	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NewRenderer uploads the marker sprite and compiles the filter chain. It must
// run on the thread owning the GL context, after the window is open.
func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("renderer: invalid stage size %dx%d", opts.Width, opts.Height)
	}
	r := &Renderer{
		Background: opts.Background,
		Marker:     opts.Marker,
	}

	if opts.Marker.Sprite != nil {
		img := rl.NewImageFromImage(opts.Marker.Sprite)
		r.sprite = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		rl.SetTextureFilter(r.sprite, rl.FilterBilinear)
		utils.Debug("Renderer: marker sprite %dx%d", r.sprite.Width, r.sprite.Height)
	}

	if opts.Filter != nil {
		chain, err := shader.NewFilterChain(*opts.Filter)
		if err != nil {
			utils.Warn("Renderer: filter disabled: %v", err)
		} else {
			r.filter = chain
			r.filterReady = true
		}
	}

	r.Resize(opts.Width, opts.Height)
	return r, nil
}

// Resize reallocates the stage for a new window size.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if r.stage != nil && r.Width == width && r.Height == height {
		return
	}
	if r.stage != nil {
		rl.UnloadRenderTexture(*r.stage)
	}
	stage := rl.LoadRenderTexture(int32(width), int32(height))
	rl.SetTextureFilter(stage.Texture, rl.FilterBilinear)
	r.stage = &stage
	r.Width, r.Height = width, height

	if r.filter != nil {
		r.filter.Resize(int32(width), int32(height))
	}
	utils.Debug("Renderer: stage %dx%d", width, height)
}

// Render draws one frame. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Render(positions []vmath.Vec2) {
	rl.BeginTextureMode(*r.stage)
	rl.ClearBackground(rl.Blank)
	DrawMarkers(r.sprite, positions, r.Marker.Size, r.Marker.Tint)
	rl.EndTextureMode()

	output := &r.stage.Texture
	if r.filterReady {
		output = r.filter.Run(output)
	}

	rl.ClearBackground(rl.NewColor(r.Background.R, r.Background.G, r.Background.B, 255))
	srcRec := rl.NewRectangle(0, 0, float32(output.Width), -float32(output.Height))
	dstRec := rl.NewRectangle(0, 0, float32(r.Width), float32(r.Height))
	rl.DrawTexturePro(*output, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)

	r.lastDrawn = len(positions)
}

// SetFilterEnabled toggles the filter chain at runtime when one was compiled.
func (r *Renderer) SetFilterEnabled(enabled bool) {
	r.filterReady = enabled && r.filter != nil
}

func (r *Renderer) FilterEnabled() bool {
	return r.filterReady
}

// LastDrawn returns the number of markers drawn by the last Render.
func (r *Renderer) LastDrawn() int {
	return r.lastDrawn
}

func (r *Renderer) Unload() {
	if r.filter != nil {
		r.filter.Unload()
		r.filter = nil
	}
	r.filterReady = false
	if r.stage != nil {
		rl.UnloadRenderTexture(*r.stage)
		r.stage = nil
	}
	if r.sprite.ID != 0 {
		rl.UnloadTexture(r.sprite)
		r.sprite = rl.Texture2D{}
	}
	if fallbackTexture != nil {
		rl.UnloadTexture(*fallbackTexture)
		fallbackTexture = nil
	}
}
