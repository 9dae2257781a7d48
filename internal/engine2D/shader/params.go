package shader

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Parameters holds uniform locations, -1 where the program lacks one.
type Parameters struct {
	Sampler   int32
	TexelSize int32
	Direction int32
	Radius    int32
	Threshold int32
	Color     int32
}

// Uniform is a constant value uploaded every time its pass runs.
type Uniform struct {
	Location int32
	Type     rl.ShaderUniformDataType
	Values   []float32
}

// Pass is one full-screen draw through a compiled program.
type Pass struct {
	Name       string
	Shader     rl.Shader
	Parameters Parameters
	Uniforms   []Uniform
}

// ResolveLocations queries a shader for every uniform the filters use.
func ResolveLocations(shader rl.Shader) Parameters {
	return Parameters{
		Sampler:   rl.GetShaderLocation(shader, "texture0"),
		TexelSize: rl.GetShaderLocation(shader, "g_TexelSize"),
		Direction: rl.GetShaderLocation(shader, "g_Direction"),
		Radius:    rl.GetShaderLocation(shader, "g_Radius"),
		Threshold: rl.GetShaderLocation(shader, "g_Threshold"),
		Color:     rl.GetShaderLocation(shader, "g_Color"),
	}
}

// SetupPass wraps a compiled shader with its resolved locations.
func SetupPass(name string, shader rl.Shader) Pass {
	return Pass{
		Name:       name,
		Shader:     shader,
		Parameters: ResolveLocations(shader),
	}
}

// Set stores a constant for loc, replacing an earlier value. Locations of -1
// are ignored.
func (p *Pass) Set(loc int32, uType rl.ShaderUniformDataType, values ...float32) {
	if loc == -1 {
		return
	}
	for i := range p.Uniforms {
		if p.Uniforms[i].Location == loc {
			p.Uniforms[i].Type = uType
			p.Uniforms[i].Values = values
			return
		}
	}
	p.Uniforms = append(p.Uniforms, Uniform{Location: loc, Type: uType, Values: values})
}
