package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"glyphfield/internal/config"
	"glyphfield/internal/convert"
	"glyphfield/internal/engine2D/particle"
	"glyphfield/internal/glyph"
	"glyphfield/internal/pointer"
	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"
)

const frameInterval = 16 * time.Millisecond

type App struct {
	screen tcell.Screen
	cfg    *config.Config

	rasterizer *glyph.Rasterizer
	layouts    *glyph.LayoutCache
	field      *particle.Field
	pointer    *pointer.Register
	grid       *halfGrid
	positions  []vmath.Vec2
	clock      *utils.FrameClock

	cols, rows int
	fill       tcell.Style
	background tcell.Style
	showStatus bool
}

func NewApp(cfg *config.Config, rasterizer *glyph.Rasterizer) (*App, error) {
	field, err := particle.NewField(cfg.ForceModel())
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	bg := cfg.Window.Background.MustRGBA()
	fg := cfg.Filter.Color.MustRGBA()
	if !cfg.Filter.Enabled {
		fg = cfg.Marker.Tint.MustRGBA()
	}
	bgColor := tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B))

	a := &App{
		screen:     screen,
		cfg:        cfg,
		rasterizer: rasterizer,
		layouts:    glyph.NewLayoutCache(0),
		field:      field,
		pointer:    pointer.NewRegister(vmath.Vec2{}),
		grid:       newHalfGrid(0, 0),
		clock:      utils.NewFrameClock(time.Now()),
		background: tcell.StyleDefault.Background(bgColor),
		fill: tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
			Background(bgColor),
		showStatus: utils.ShowDebugUI,
	}

	if err := a.rebuild(); err != nil {
		screen.Fini()
		return nil, err
	}
	return a, nil
}

// rebuild resamples the glyph for the current terminal size. The glyph is
// scaled to fit the stage, never above the configured font size.
func (a *App) rebuild() error {
	a.cols, a.rows = a.screen.Size()
	width, height := stageSize(a.cols, a.rows)
	if width == 0 || height == 0 {
		a.field.Build(nil)
		return nil
	}

	a.rasterizer.SetSize(math.Min(a.cfg.Text.FontSize, float64(height)*0.9))
	points, err := a.layouts.Points(a.rasterizer, a.cfg.Text.Text, width, height, a.cfg.Physics.Density)
	if err != nil {
		return fmt.Errorf("layout %dx%d: %w", width, height, err)
	}
	a.field.Build(points)
	a.grid.Resize(a.cols, a.rows)
	a.screen.Clear()
	return nil
}

// handleEvent returns false when the app should exit.
func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false, nil
		}
		if ev.Key() == tcell.KeyF8 {
			a.showStatus = !a.showStatus
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		a.pointer.Store(stagePoint(x, y))

	case *tcell.EventResize:
		a.screen.Sync()
		if err := a.rebuild(); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (a *App) step() {
	a.field.Advance(a.pointer.Load())
	a.positions = a.field.Positions(a.positions[:0])
	a.clock.Tick(time.Now())
}

func (a *App) draw() {
	a.grid.Clear()
	a.grid.Plot(a.positions)

	for row := 0; row < a.rows; row++ {
		for col := 0; col < a.cols; col++ {
			top, bottom := a.grid.Cell(col, row)
			r := blockRune(top, bottom)
			style := a.fill
			if r == ' ' {
				style = a.background
			}
			a.screen.SetContent(col, row, r, nil, style)
		}
	}

	if a.showStatus {
		status := fmt.Sprintf(" %d particles  %.0f fps  frame %d ", a.field.Len(), a.clock.FPS(), a.clock.Frame())
		for i, r := range status {
			if i >= a.cols {
				break
			}
			a.screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Reverse(true))
		}
	}
	a.screen.Show()
}

func (a *App) Run() error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			cont, err := a.handleEvent(ev)
			if err != nil || !cont {
				return err
			}

		case <-ticker.C:
			a.step()
			a.draw()
		}
	}
}

func (a *App) Close() {
	a.screen.Fini()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file")
	text := flag.String("text", "", "Text to sample (overrides config)")
	density := flag.Int("density", 0, "Sample spacing in stage pixels (overrides config)")
	debugFlag := flag.Bool("debug", false, "Show the status line")
	flag.Parse()

	// The terminal belongs to tcell; only errors reach stderr.
	utils.SetLevel(utils.LevelError)
	utils.ShowDebugUI = *debugFlag
	defer utils.Sync()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			utils.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}
	if *text != "" {
		cfg.Text.Text = *text
	}
	if *density != 0 {
		cfg.Physics.Density = *density
	}
	if err := cfg.Validate(); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	utils.AssetsDir = cfg.Assets.Dir

	if err := run(cfg); err != nil {
		utils.Error("%v", err)
		utils.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	bundle, err := convert.OpenBundle(cfg.Assets.Pkg)
	if err != nil {
		return err
	}
	fontData, err := convert.LoadFont(cfg.Text.Font, bundle)
	if err != nil {
		return err
	}
	rasterizer, err := glyph.NewRasterizer(fontData, cfg.Text.FontSize)
	if err != nil {
		return err
	}

	app, err := NewApp(cfg, rasterizer)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Run()
}
