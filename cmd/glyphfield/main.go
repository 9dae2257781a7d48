package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"glyphfield/internal/config"
	"glyphfield/internal/convert"
	"glyphfield/internal/engine2D"
	"glyphfield/internal/glyph"
	"glyphfield/internal/pointer"
	"glyphfield/internal/utils"
	"glyphfield/internal/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	// raylib calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML or JSON config file")
	text := flag.String("text", "", "Text to sample (overrides config)")
	density := flag.Int("density", 0, "Sample spacing in pixels (overrides config)")
	pointerSource := flag.String("pointer", "", "Pointer source: window or x11 (overrides config)")
	assetsDir := flag.String("assets", "", "Extra directory searched for fonts and sprites")
	noFilter := flag.Bool("no-filter", false, "Draw raw markers without the blur and threshold filter")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and the debug overlay")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	raylibInfo := flag.Bool("raylib-info", false, "Log raylib INFO messages at info level instead of debug")
	flag.Parse()

	level, err := utils.ParseLogLevel(*logLevel)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}
	if *debugFlag {
		level = utils.LevelDebug
	}
	utils.SetLevel(level)
	utils.ShowDebugUI = *debugFlag
	utils.ShowRaylibInfo = *raylibInfo
	defer utils.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			utils.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
		utils.Info("Loaded config %s", *configPath)
	}
	if *text != "" {
		cfg.Text.Text = *text
	}
	if *density != 0 {
		cfg.Physics.Density = *density
	}
	if *pointerSource != "" {
		cfg.Pointer.Source = *pointerSource
	}
	if *noFilter {
		cfg.Filter.Enabled = false
	}
	if *assetsDir != "" {
		cfg.Assets.Dir = *assetsDir
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
	utils.Info("--- glyphfield start ---")

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	reg := pointer.NewRegister(vmath.Vec2{})
	// Window position in screen space, published by the render loop for
	// the X11 poller.
	var origin *pointer.Register
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Pointer.Source == config.PointerX11 {
		src, err := pointer.NewX11Source()
		if err != nil {
			return err
		}
		defer src.Close()

		origin = pointer.NewRegister(vmath.Vec2{})
		utils.Info("Pointer: polling X11 root window every %v", cfg.PollInterval())
		g.Go(func() error {
			return pointer.Poll(gctx, pointer.Offset(src, origin.Load), reg, cfg.PollInterval())
		})
	}

	marker := engine2D.MarkerStyle{
		Sprite: convert.LoadSprite(cfg.Marker.Sprite, int(cfg.Marker.Size+0.5), bundle),
		Size:   float32(cfg.Marker.Size),
		Tint:   cfg.Marker.Tint.MustRGBA(),
	}
	window, err := NewWindow(cfg, rasterizer, reg, origin, marker, utils.ShowDebugUI)
	if err != nil {
		stop()
		_ = g.Wait()
		return err
	}
	defer window.Unload()

	runErr := window.Run(gctx)
	stop()
	if err := g.Wait(); err != nil {
		return err
	}
	utils.Info("Shutting down")
	return runErr
}
