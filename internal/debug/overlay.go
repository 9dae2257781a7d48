package debug

import (
	"fmt"
	"runtime"
	"time"

	"glyphfield/internal/engine2D/particle"
	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	ToggleKey  = rl.KeyF8
	OriginsKey = rl.KeyF9

	memRefresh = time.Second
)

// FrameInfo is what the overlay reports for one frame.
type FrameInfo struct {
	Field          *particle.Field
	Pointer        vmath.Vec2
	PointerUpdates uint64
	FilterEnabled  bool
	Clock          *utils.FrameClock
}

type DebugOverlay struct {
	Visible     bool
	ShowOrigins bool

	fontHeight int32
	lineHeight int32
	memStats   runtime.MemStats
	lastMem    time.Time
}

func NewDebugOverlay(visible bool) *DebugOverlay {
	return &DebugOverlay{
		Visible:    visible,
		fontHeight: 16,
		lineHeight: 20,
	}
}

// Update handles the toggle keys. Call once per frame before drawing.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(ToggleKey) {
		d.Visible = !d.Visible
		utils.Debug("Debug: overlay %v", d.Visible)
	}
	if rl.IsKeyPressed(OriginsKey) {
		d.ShowOrigins = !d.ShowOrigins
	}

	if d.Visible && time.Since(d.lastMem) >= memRefresh {
		runtime.ReadMemStats(&d.memStats)
		d.lastMem = time.Now()
	}
}

// Draw renders the panel, the pointer influence ring and optionally every
// particle origin. Call inside BeginDrawing after the field is presented.
func (d *DebugOverlay) Draw(info FrameInfo) {
	if !d.Visible {
		return
	}

	field := info.Field
	if field != nil && d.ShowOrigins {
		for _, p := range field.Particles {
			rl.DrawRectangle(int32(p.Origin.X)-1, int32(p.Origin.Y)-1, 3, 3, rl.Red)
		}
	}

	if field != nil {
		px, py := int32(info.Pointer.X), int32(info.Pointer.Y)
		rl.DrawCircleLines(px, py, float32(field.Physics.PointerRadius), rl.NewColor(255, 255, 255, 160))
		rl.DrawCircleLines(px, py, float32(field.Physics.PointerRadius+field.Physics.ParticleRadius), rl.NewColor(0, 255, 255, 120))
	}

	lines := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Frame Time: %.2f ms", rl.GetFrameTime()*1000),
	}
	if info.Clock != nil {
		lines = append(lines, fmt.Sprintf("Frame: %d", info.Clock.Frame()))
	}
	if field != nil {
		moving := 0
		for _, p := range field.Particles {
			if p.Velocity.Len() > 0.01 {
				moving++
			}
		}
		lines = append(lines,
			fmt.Sprintf("Particles: %d (%d moving)", field.Len(), moving),
			fmt.Sprintf("Physics: speed %.3f friction %.2f radius %.0f+%.0f",
				field.Physics.MoveSpeed, field.Physics.Friction, field.Physics.PointerRadius, field.Physics.ParticleRadius),
		)
	}
	lines = append(lines,
		fmt.Sprintf("Pointer: %.0f, %.0f (%d updates)", info.Pointer.X, info.Pointer.Y, info.PointerUpdates),
		fmt.Sprintf("Filter: %v", info.FilterEnabled),
		fmt.Sprintf("Heap: %.2f MB, Goroutines: %d", float64(d.memStats.HeapAlloc)/1024/1024, runtime.NumGoroutine()),
		fmt.Sprintf("Window: %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight()),
		"F8 overlay, F9 origins, F10 filter",
	)

	width := int32(0)
	for _, line := range lines {
		if w := rl.MeasureText(line, d.fontHeight); w > width {
			width = w
		}
	}
	height := int32(len(lines))*d.lineHeight + 10
	rl.DrawRectangle(5, 5, width+20, height, rl.NewColor(0, 0, 0, 170))
	for i, line := range lines {
		rl.DrawText(line, 15, 10+int32(i)*d.lineHeight, d.fontHeight, rl.White)
	}
}
