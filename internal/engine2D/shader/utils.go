package shader

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"glyphfield/internal/utils"
)

// compile builds a program from the shared vertex stage and a fragment source.
// A shader with ID 0 is returned when the driver rejects it.
func compile(name, fragment string, defines map[string]int) rl.Shader {
	vSource := Preprocess(vertexSource, nil)
	fSource := Preprocess(fragment, defines)

	var shader rl.Shader
	func() {
		defer func() {
			if r := recover(); r != nil {
				utils.Error("Shader: %s - Compilation panic (skipping): %v", name, r)
				shader = rl.Shader{}
			}
		}()
		shader = rl.LoadShaderFromMemory(vSource, fSource)
	}()

	if shader.ID == 0 {
		utils.Warn("Shader: %s - Failed to compile", name)
	} else {
		utils.Debug("Shader: %s - Loaded (ID: %d)", name, shader.ID)
	}
	return shader
}

func colorFloats(c color.RGBA) []float32 {
	return []float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
