package main

import (
	"context"
	"fmt"
	"time"

	"glyphfield/internal/config"
	"glyphfield/internal/debug"
	"glyphfield/internal/engine2D"
	"glyphfield/internal/engine2D/particle"
	"glyphfield/internal/engine2D/shader"
	"glyphfield/internal/glyph"
	"glyphfield/internal/pointer"
	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const filterKey = rl.KeyF10

type Window struct {
	cfg *config.Config

	rasterizer *glyph.Rasterizer
	layouts    *glyph.LayoutCache
	field      *particle.Field
	positions  []vmath.Vec2

	pointer      *pointer.Register
	windowOrigin *pointer.Register
	trackMouse   bool
	renderer     *engine2D.Renderer
	debugOverlay *debug.DebugOverlay
	clock        *utils.FrameClock

	width, height int
}

// NewWindow builds the field for the current screen size. The raylib window
// must already be open. origin may be nil; otherwise it receives the window
// position every frame.
func NewWindow(cfg *config.Config, rasterizer *glyph.Rasterizer, reg, origin *pointer.Register, marker engine2D.MarkerStyle, debugVisible bool) (*Window, error) {
	field, err := particle.NewField(cfg.ForceModel())
	if err != nil {
		return nil, err
	}

	opts := engine2D.RendererOptions{
		Width:      rl.GetScreenWidth(),
		Height:     rl.GetScreenHeight(),
		Background: cfg.Window.Background.MustRGBA(),
		Marker:     marker,
	}
	if cfg.Filter.Enabled {
		opts.Filter = &shader.FilterSettings{
			Blur:      cfg.Filter.Blur,
			Threshold: cfg.Filter.Threshold,
			Color:     cfg.Filter.Color.MustRGBA(),
		}
	}
	renderer, err := engine2D.NewRenderer(opts)
	if err != nil {
		return nil, err
	}

	w := &Window{
		cfg:          cfg,
		rasterizer:   rasterizer,
		layouts:      glyph.NewLayoutCache(0),
		field:        field,
		pointer:      reg,
		windowOrigin: origin,
		trackMouse:   cfg.Pointer.Source == config.PointerWindow,
		renderer:     renderer,
		debugOverlay: debug.NewDebugOverlay(debugVisible),
		clock:        utils.NewFrameClock(time.Now()),
	}

	if err := w.rebuild(opts.Width, opts.Height); err != nil {
		renderer.Unload()
		return nil, err
	}
	return w, nil
}

// rebuild resamples the glyph for a width x height stage and replaces every
// particle.
func (w *Window) rebuild(width, height int) error {
	start := time.Now()
	points, err := w.layouts.Points(w.rasterizer, w.cfg.Text.Text, width, height, w.cfg.Physics.Density)
	if err != nil {
		return fmt.Errorf("layout %dx%d: %w", width, height, err)
	}
	w.field.Build(points)
	w.renderer.Resize(width, height)
	w.width, w.height = width, height

	hits, misses := w.layouts.Stats()
	utils.Info("Field rebuilt for %dx%d: %d particles in %v (layout cache %d/%d)",
		width, height, w.field.Len(), time.Since(start).Round(time.Microsecond), hits, hits+misses)
	return nil
}

// Run drives one field advance and one render per frame until the window
// closes or ctx is cancelled.
func (w *Window) Run(ctx context.Context) error {
	utils.Info("Starting render loop...")
	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if rl.IsWindowResized() {
			if err := w.rebuild(rl.GetScreenWidth(), rl.GetScreenHeight()); err != nil {
				return err
			}
		}

		w.Update()
		w.Draw()
		w.clock.Tick(time.Now())
	}
	return nil
}

func (w *Window) Update() {
	w.debugOverlay.Update()
	if rl.IsKeyPressed(filterKey) {
		w.renderer.SetFilterEnabled(!w.renderer.FilterEnabled())
	}

	if w.windowOrigin != nil {
		p := rl.GetWindowPosition()
		w.windowOrigin.Store(vmath.Vec2{X: float64(p.X), Y: float64(p.Y)})
	}
	if w.trackMouse {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			mouse := rl.GetMousePosition()
			w.pointer.Store(vmath.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)})
		}
	}

	w.field.Advance(w.pointer.Load())
	w.positions = w.field.Positions(w.positions[:0])
}

func (w *Window) Draw() {
	rl.BeginDrawing()
	w.renderer.Render(w.positions)
	w.debugOverlay.Draw(debug.FrameInfo{
		Field:          w.field,
		Pointer:        w.pointer.Load(),
		PointerUpdates: w.pointer.Updates(),
		FilterEnabled:  w.renderer.FilterEnabled(),
		Clock:          w.clock,
	})
	rl.EndDrawing()
}

func (w *Window) Unload() {
	w.renderer.Unload()
}
