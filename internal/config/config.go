package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window Window `yaml:"window"`
	Tree   Tree   `yaml:"tree"`

	// Script is the render script path. Empty selects the built-in one.
	Script   string `yaml:"script,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`

	// EventsPerFrame caps the input events handled between two frames.
	EventsPerFrame int `yaml:"events_per_frame"`
}

// Tree holds the constants handed to the render script as globals.
type Tree struct {
	MaxTreeHeight    int     `yaml:"max_tree_height"`
	BranchSizeFactor float64 `yaml:"branch_size_factor"`
	IsTree2D         bool    `yaml:"is_tree_2d"`
	ZoomScale        float64 `yaml:"zoom_scale"`
	MaxRingCorners   int     `yaml:"max_ring_corners"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  800,
			Height: 800,
			Title:  "trees",
			FPS:    60,

			EventsPerFrame: 64,
		},
		Tree: Tree{
			MaxTreeHeight:    10,
			BranchSizeFactor: 0.79,
			IsTree2D:         false,
			ZoomScale:        2.3,
			MaxRingCorners:   8,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	conf.normalize()
	return conf, nil
}

func (c *Config) normalize() {
	def := Default()
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.FPS <= 0 {
		c.Window.FPS = def.Window.FPS
	}
	if c.Window.EventsPerFrame <= 0 {
		c.Window.EventsPerFrame = def.Window.EventsPerFrame
	}
	if c.Tree.MaxTreeHeight <= 0 {
		c.Tree.MaxTreeHeight = def.Tree.MaxTreeHeight
	}
	if c.Tree.BranchSizeFactor <= 0 {
		c.Tree.BranchSizeFactor = def.Tree.BranchSizeFactor
	}
	if c.Tree.ZoomScale <= 0 {
		c.Tree.ZoomScale = def.Tree.ZoomScale
	}
	if c.Tree.MaxRingCorners < 3 {
		c.Tree.MaxRingCorners = def.Tree.MaxRingCorners
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Level maps LogLevel to a slog level. Unknown names fall back to info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
