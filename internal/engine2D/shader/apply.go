package shader

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ApplyPass uploads the pass constants and the per-input texel size. Call it
// between BeginShaderMode and the draw.
func ApplyPass(pass *Pass, input *rl.Texture2D) {
	shader := pass.Shader
	parameters := &pass.Parameters

	for _, uniform := range pass.Uniforms {
		rl.SetShaderValue(shader, uniform.Location, uniform.Values, uniform.Type)
	}

	if input == nil {
		return
	}
	if parameters.TexelSize != -1 && input.Width > 0 && input.Height > 0 {
		rl.SetShaderValue(shader, parameters.TexelSize, []float32{1 / float32(input.Width), 1 / float32(input.Height)}, rl.ShaderUniformVec2)
	}
	if parameters.Sampler != -1 {
		rl.SetShaderValueTexture(shader, parameters.Sampler, *input)
	}
}
