package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/kjkrol/gotrees/assets"
	"github.com/kjkrol/gotrees/internal/config"
	"github.com/kjkrol/gotrees/internal/luarender"
	"github.com/kjkrol/gotrees/internal/platform/desktop"
	"github.com/kjkrol/gotrees/internal/renderer"
	"github.com/kjkrol/gotrees/pkg/gfx"
)

func init() {
	// glfw and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("trees failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	scriptPath := flag.String("script", "", "path to a render script (default: built-in)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides the config)")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *scriptPath != "" {
		conf.Script = *scriptPath
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: conf.Level()}))
	slog.SetDefault(logger)
	gfx.SetLogger(logger)

	opts := luarender.Options{
		ShaderSource: assets.ShaderSource,
		Script:       assets.RenderScript,
		ScriptName:   "render.lua",
		Tree:         conf.Tree,
	}
	if conf.Script != "" {
		src, err := os.ReadFile(conf.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		opts.Script = string(src)
		opts.ScriptName = conf.Script
	}

	window, err := gfx.NewWindow(
		gfx.WindowConfig{Width: conf.Window.Width, Height: conf.Window.Height, Title: conf.Window.Title},
		desktop.NewPlatformWindowWrapper,
		renderer.NewRendererFactory(opts),
	)
	if err != nil {
		return err
	}
	defer window.Close()

	window.RefreshRate(conf.Window.FPS)
	window.EventsPerFrame(conf.Window.EventsPerFrame)
	window.Show()
	slog.Info("rendering", "script", opts.ScriptName, "2d", conf.Tree.IsTree2D)

	return window.ListenEvents(func(event gfx.Event) {
		switch e := event.(type) {
		case gfx.DestroyNotify:
			window.Stop()
		case gfx.KeyPress:
			if e.Label == "Escape" || e.Label == "q" {
				window.Stop()
			}
		}
	})
}
