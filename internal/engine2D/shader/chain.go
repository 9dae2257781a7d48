package shader

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"glyphfield/internal/utils"
)

// ErrCompile is returned when a filter program fails to build.
var ErrCompile = errors.New("shader: compile failed")

// FilterSettings configures the blur and threshold stages.
type FilterSettings struct {
	Blur      float64
	Threshold float64
	Color     color.RGBA
}

// FilterChain blurs its input on both axes, then replaces every texel whose
// alpha exceeds the threshold with a flat colour and clears the rest.
type FilterChain struct {
	passes   []Pass
	pingPong [2]*rl.RenderTexture2D
	width    int32
	height   int32
}

func NewFilterChain(settings FilterSettings) (*FilterChain, error) {
	chain := &FilterChain{}

	if settings.Blur > 0 {
		defines := map[string]int{"TAPS": BlurTaps}
		for _, axis := range []struct {
			name string
			dir  [2]float32
		}{
			{"blur_h", [2]float32{1, 0}},
			{"blur_v", [2]float32{0, 1}},
		} {
			sh := compile(axis.name, blurSource, defines)
			if sh.ID == 0 {
				chain.Unload()
				return nil, ErrCompile
			}
			pass := SetupPass(axis.name, sh)
			pass.Set(pass.Parameters.Direction, rl.ShaderUniformVec2, axis.dir[0], axis.dir[1])
			pass.Set(pass.Parameters.Radius, rl.ShaderUniformFloat, float32(settings.Blur))
			chain.passes = append(chain.passes, pass)
		}
	}

	sh := compile("threshold", thresholdSource, nil)
	if sh.ID == 0 {
		chain.Unload()
		return nil, ErrCompile
	}
	pass := SetupPass("threshold", sh)
	pass.Set(pass.Parameters.Threshold, rl.ShaderUniformFloat, float32(settings.Threshold))
	pass.Set(pass.Parameters.Color, rl.ShaderUniformVec4, colorFloats(settings.Color)...)
	chain.passes = append(chain.passes, pass)

	utils.Info("Filter: %d passes, blur %.1f, threshold %.2f", len(chain.passes), settings.Blur, settings.Threshold)
	return chain, nil
}

// Resize reallocates the intermediate targets when the stage size changes.
func (c *FilterChain) Resize(width, height int32) {
	if c.pingPong[0] != nil && c.width == width && c.height == height {
		return
	}
	c.unloadTargets()

	for i := range c.pingPong {
		rt := rl.LoadRenderTexture(width, height)
		rl.SetTextureWrap(rt.Texture, rl.TextureWrapClamp)
		rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
		c.pingPong[i] = &rt
	}
	c.width, c.height = width, height
	utils.Debug("Filter: targets resized to %dx%d", width, height)
}

// Run draws src through every pass and returns the target holding the result.
// src is a render texture, so it is sampled upside down.
func (c *FilterChain) Run(src *rl.Texture2D) *rl.Texture2D {
	if len(c.passes) == 0 {
		return src
	}
	c.Resize(src.Width, src.Height)

	current := src
	idx := 0
	for i := range c.passes {
		pass := &c.passes[i]
		target := c.pingPong[idx]

		rl.BeginTextureMode(*target)
		rl.ClearBackground(rl.Blank)
		rl.BeginShaderMode(pass.Shader)
		ApplyPass(pass, current)

		srcRec := rl.NewRectangle(0, 0, float32(current.Width), -float32(current.Height))
		dstRec := rl.NewRectangle(0, 0, float32(target.Texture.Width), float32(target.Texture.Height))
		rl.DrawTexturePro(*current, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)

		rl.EndShaderMode()
		rl.EndTextureMode()

		current = &target.Texture
		idx = 1 - idx
	}
	return current
}

func (c *FilterChain) Passes() int {
	return len(c.passes)
}

func (c *FilterChain) unloadTargets() {
	for i, rt := range c.pingPong {
		if rt != nil {
			rl.UnloadRenderTexture(*rt)
			c.pingPong[i] = nil
		}
	}
}

func (c *FilterChain) Unload() {
	c.unloadTargets()
	for _, pass := range c.passes {
		rl.UnloadShader(pass.Shader)
	}
	c.passes = nil
}
