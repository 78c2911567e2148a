package renderer

// Renderer receives callbacks from the render thread of the surface it is
// bound to. All three methods run with the graphics context current.
type Renderer interface {
	// SurfaceCreated runs when the context is new or was lost, before any
	// other callback. GPU resources are (re)created here.
	SurfaceCreated() error
	// SurfaceChanged runs after SurfaceCreated and whenever the drawable
	// size changes.
	SurfaceChanged(width, height int)
	// DrawFrame issues one frame of draw commands.
	DrawFrame()
}

// Disposer is implemented by renderers that hold GPU resources which must be
// released before the context goes away.
type Disposer interface {
	Dispose()
}

// Dispose releases r's resources if it implements Disposer.
func Dispose(r Renderer) {
	if d, ok := r.(Disposer); ok {
		d.Dispose()
	}
}
