package engine2D

import (
	"image"
	"image/color"

	"glyphfield/internal/engine2D/shader"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MarkerStyle describes how each particle is drawn.
type MarkerStyle struct {
	Sprite image.Image
	Size   float32
	Tint   color.RGBA
}

// RendererOptions configures a Renderer. Filter is nil to draw markers as is.
type RendererOptions struct {
	Width      int
	Height     int
	Background color.RGBA
	Marker     MarkerStyle
	Filter     *shader.FilterSettings
}

// Renderer draws particle markers into a stage texture, runs the stage
// through the filter chain and presents it over the background.
type Renderer struct {
	Width      int
	Height     int
	Background color.RGBA
	Marker     MarkerStyle

	sprite      rl.Texture2D
	stage       *rl.RenderTexture2D
	filter      *shader.FilterChain
	filterReady bool
	lastDrawn   int
}
