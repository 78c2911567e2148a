package renderer

import "glhost/internal/profiling"

// Group fans the surface callbacks out to several renderers, drawing them in
// order and disposing them in reverse.
type Group struct {
	renderers []Renderer
	created   int
}

// NewGroup creates a renderer that draws rs in order.
func NewGroup(rs ...Renderer) *Group {
	return &Group{renderers: rs}
}

// SurfaceCreated initializes every member. On failure the members that were
// already initialized are disposed before the error is returned.
func (g *Group) SurfaceCreated() error {
	g.created = 0
	for _, r := range g.renderers {
		if err := r.SurfaceCreated(); err != nil {
			g.Dispose()
			return err
		}
		g.created++
	}
	return nil
}

func (g *Group) SurfaceChanged(width, height int) {
	for _, r := range g.renderers[:g.created] {
		r.SurfaceChanged(width, height)
	}
}

func (g *Group) DrawFrame() {
	defer profiling.Track("renderer.Group.DrawFrame")()
	for _, r := range g.renderers[:g.created] {
		r.DrawFrame()
	}
}

// Dispose cleans up initialized members in reverse order
func (g *Group) Dispose() {
	for i := g.created - 1; i >= 0; i-- {
		Dispose(g.renderers[i])
	}
	g.created = 0
}

// Len returns the number of member renderers.
func (g *Group) Len() int {
	return len(g.renderers)
}
