// Package scene maps scene names to renderer constructors.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"glhost/internal/graphics/renderables/stats"
	"glhost/internal/graphics/renderables/textured"
	"glhost/internal/graphics/renderables/triangle"
	"glhost/internal/graphics/renderer"
)

var ErrUnknownScene = errors.New("unknown scene")

// Options are the inputs a scene may use.
type Options struct {
	// Texture is the image file for the textured scene; empty selects a
	// generated checkerboard.
	Texture string
	// StatsInterval enables a frame statistics reporter when positive.
	StatsInterval time.Duration
	Logger        *slog.Logger
}

type constructor func(Options) renderer.Renderer

var registry = map[string]constructor{
	"triangle": func(Options) renderer.Renderer { return triangle.NewTriangle() },
	"textured": func(o Options) renderer.Renderer { return textured.NewTextured(o.Texture, o.Logger) },
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the named scene. The result is always a *renderer.Group so a
// statistics reporter can ride along after the scene.
func New(name string, o Options) (*renderer.Group, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	members := []renderer.Renderer{ctor(o)}
	if o.StatsInterval > 0 {
		members = append(members, stats.NewStats(o.StatsInterval, o.Logger))
	}
	return renderer.NewGroup(members...), nil
}
