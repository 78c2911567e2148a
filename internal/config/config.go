package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// RenderMode selects how the render thread schedules frames.
type RenderMode string

const (
	RenderContinuously RenderMode = "continuous"
	RenderWhenDirty    RenderMode = "when_dirty"
)

// File mirrors the TOML configuration file. Zero values keep the defaults.
type File struct {
	FPSLimit        *int   `toml:"fps_limit"`
	RenderMode      string `toml:"render_mode"`
	PreserveContext *bool  `toml:"preserve_context"`
	RequiredTier    string `toml:"required_tier"`
	ForceTier       string `toml:"force_tier"`
	LogLevel        string `toml:"log_level"`
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	Title           string `toml:"title"`
	Scene           string `toml:"scene"`
	Texture         string `toml:"texture"`
}

// RenderSettings holds render configuration
type RenderSettings struct {
	mu              sync.RWMutex
	fpsLimit        int
	renderMode      RenderMode
	preserveContext bool
	requiredTier    string
	forceTier       string
}

// WindowSettings holds the initial window configuration
type WindowSettings struct {
	mu       sync.RWMutex
	width    int
	height   int
	title    string
	scene    string
	texture  string
	logLevel string
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:        60,
	renderMode:      RenderContinuously,
	preserveContext: true,
	requiredTier:    "2.0",
}

var globalWindowSettings = &WindowSettings{
	width:    900,
	height:   600,
	title:    "glhost",
	scene:    "triangle",
	logLevel: "info",
}

// GetFPSLimit returns the frame cap; 0 means unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap, clamped to [0, 1000]
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}

// GetRenderMode returns the configured render mode
func GetRenderMode() RenderMode {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderMode
}

// SetRenderMode sets the render mode, rejecting unknown values
func SetRenderMode(mode RenderMode) error {
	switch mode {
	case RenderContinuously, RenderWhenDirty:
	default:
		return fmt.Errorf("unknown render mode %q", mode)
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.renderMode = mode
	return nil
}

// GetPreserveContext reports whether GPU resources survive a pause
func GetPreserveContext() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.preserveContext
}

func SetPreserveContext(preserve bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.preserveContext = preserve
}

// GetRequiredTier returns the minimum context tier as written in the config
func GetRequiredTier() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.requiredTier
}

func SetRequiredTier(tier string) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.requiredTier = tier
}

// GetForceTier returns a tier that replaces the device query, or "" for none
func GetForceTier() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.forceTier
}

func SetForceTier(tier string) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.forceTier = tier
}

// GetWindowSize returns the initial window size
func GetWindowSize() (int, int) {
	globalWindowSettings.mu.RLock()
	defer globalWindowSettings.mu.RUnlock()
	return globalWindowSettings.width, globalWindowSettings.height
}

// SetWindowSize sets the initial window size, clamped to at least 64x64
func SetWindowSize(width, height int) {
	globalWindowSettings.mu.Lock()
	defer globalWindowSettings.mu.Unlock()
	globalWindowSettings.width = max(width, 64)
	globalWindowSettings.height = max(height, 64)
}

func GetTitle() string {
	globalWindowSettings.mu.RLock()
	defer globalWindowSettings.mu.RUnlock()
	return globalWindowSettings.title
}

func SetTitle(title string) {
	globalWindowSettings.mu.Lock()
	defer globalWindowSettings.mu.Unlock()
	globalWindowSettings.title = title
}

// GetScene returns the name of the scene to launch
func GetScene() string {
	globalWindowSettings.mu.RLock()
	defer globalWindowSettings.mu.RUnlock()
	return globalWindowSettings.scene
}

func SetScene(scene string) {
	globalWindowSettings.mu.Lock()
	defer globalWindowSettings.mu.Unlock()
	globalWindowSettings.scene = strings.ToLower(scene)
}

// GetTexture returns the image path used by the textured scene
func GetTexture() string {
	globalWindowSettings.mu.RLock()
	defer globalWindowSettings.mu.RUnlock()
	return globalWindowSettings.texture
}

func SetTexture(path string) {
	globalWindowSettings.mu.Lock()
	defer globalWindowSettings.mu.Unlock()
	globalWindowSettings.texture = path
}

func GetLogLevel() string {
	globalWindowSettings.mu.RLock()
	defer globalWindowSettings.mu.RUnlock()
	return globalWindowSettings.logLevel
}

func SetLogLevel(level string) {
	globalWindowSettings.mu.Lock()
	defer globalWindowSettings.mu.Unlock()
	globalWindowSettings.logLevel = level
}

// Load reads a TOML file and applies every key it sets.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	return Apply(data)
}

// Apply decodes TOML data and applies every key it sets.
func Apply(data []byte) error {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("could not parse config: %w", err)
	}

	if f.FPSLimit != nil {
		SetFPSLimit(*f.FPSLimit)
	}
	if f.RenderMode != "" {
		if err := SetRenderMode(RenderMode(f.RenderMode)); err != nil {
			return err
		}
	}
	if f.PreserveContext != nil {
		SetPreserveContext(*f.PreserveContext)
	}
	if f.RequiredTier != "" {
		SetRequiredTier(f.RequiredTier)
	}
	if f.ForceTier != "" {
		SetForceTier(f.ForceTier)
	}
	if f.LogLevel != "" {
		SetLogLevel(f.LogLevel)
	}
	if f.Width != 0 || f.Height != 0 {
		w, h := GetWindowSize()
		if f.Width != 0 {
			w = f.Width
		}
		if f.Height != 0 {
			h = f.Height
		}
		SetWindowSize(w, h)
	}
	if f.Title != "" {
		SetTitle(f.Title)
	}
	if f.Scene != "" {
		SetScene(f.Scene)
	}
	if f.Texture != "" {
		SetTexture(f.Texture)
	}
	return nil
}
