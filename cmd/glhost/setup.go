package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"glhost/internal/capability"
	"glhost/internal/config"
	"glhost/internal/logging"
	"glhost/internal/surface"
)

type flags struct {
	configPath  string
	scene       string
	texture     string
	fps         int
	forceTier   string
	logLevel    string
	pauseOnBlur bool
	stats       time.Duration
	vulkanInfo  bool
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "TOML configuration file")
	flag.StringVar(&f.scene, "scene", "", "scene to render (triangle, textured)")
	flag.StringVar(&f.texture, "texture", "", "image file for the textured scene")
	flag.IntVar(&f.fps, "fps", -1, "frame rate cap, 0 for unlimited")
	flag.StringVar(&f.forceTier, "force-tier", "", "report this GL ES tier instead of probing, e.g. 1.0")
	flag.StringVar(&f.logLevel, "log", "", "log level: debug, info, warn, error")
	flag.BoolVar(&f.pauseOnBlur, "pause-on-blur", false, "pause rendering while the window is unfocused")
	flag.DurationVar(&f.stats, "stats", 0, "log frame statistics at this interval (needs -log debug)")
	flag.BoolVar(&f.vulkanInfo, "vulkan-info", false, "log Vulkan devices at startup")
	flag.Parse()
	return f
}

// loadConfig applies the config file first and then any flags given on the
// command line.
func loadConfig(f flags) error {
	if f.configPath != "" {
		if err := config.Load(f.configPath); err != nil {
			return err
		}
	}
	if f.scene != "" {
		config.SetScene(f.scene)
	}
	if f.texture != "" {
		config.SetTexture(f.texture)
	}
	if f.fps >= 0 {
		config.SetFPSLimit(f.fps)
	}
	if f.forceTier != "" {
		config.SetForceTier(f.forceTier)
	}
	if f.logLevel != "" {
		config.SetLogLevel(f.logLevel)
	}
	return nil
}

func setupLogger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(config.GetLogLevel())
	if err != nil {
		return nil, err
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(l)
	return l, nil
}

func tiers() (required, forced capability.Tier, err error) {
	required, err = capability.ParseTier(config.GetRequiredTier())
	if err != nil {
		return 0, 0, fmt.Errorf("required_tier: %w", err)
	}
	if s := config.GetForceTier(); s != "" {
		forced, err = capability.ParseTier(s)
		if err != nil {
			return 0, 0, fmt.Errorf("force_tier: %w", err)
		}
	}
	return required, forced, nil
}

func surfaceOptions(log *slog.Logger) []surface.Option {
	mode := surface.RenderContinuously
	if config.GetRenderMode() == config.RenderWhenDirty {
		mode = surface.RenderWhenDirty
	}
	return []surface.Option{
		surface.WithRenderMode(mode),
		surface.WithFPSLimit(config.GetFPSLimit()),
		surface.WithPreserveContext(config.GetPreserveContext()),
		surface.WithLogger(log),
	}
}
