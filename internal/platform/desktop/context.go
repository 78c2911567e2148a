// Package desktop provides GLFW-backed graphics contexts, the capability
// probe and the window-to-lifecycle wiring for desktop hosts.
package desktop

import (
	"fmt"

	"glhost/internal/surface"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Factory creates one hidden GLFW window per context request. The window is
// shown when the surface is displayed.
type Factory struct {
	Width        int
	Height       int
	Title        string
	SwapInterval int
	// OnCreate, when set, is called with every window created, on the
	// creating thread, so the application can attach its callbacks.
	OnCreate func(*glfw.Window)
}

// NewContext implements surface.ContextFactory. It must run on the main
// thread, as GLFW requires for window creation.
func (f *Factory) NewContext(v surface.ContextVersion) (surface.Context, error) {
	glfw.DefaultWindowHints()
	applyVersionHints(v)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(f.Width, f.Height, f.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	if f.OnCreate != nil {
		f.OnCreate(win)
	}
	return &Context{win: win, swapInterval: f.SwapInterval}, nil
}

func applyVersionHints(v surface.ContextVersion) {
	switch v.API {
	case surface.OpenGLES:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	default:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		if v.Major > 3 || (v.Major == 3 && v.Minor >= 2) {
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		}
	}
	glfw.WindowHint(glfw.ContextVersionMajor, v.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, v.Minor)
}

// Context wraps a GLFW window and its context.
type Context struct {
	win          *glfw.Window
	swapInterval int
	intervalSet  bool
}

// MakeCurrent binds the context to the calling OS thread.
func (c *Context) MakeCurrent() error {
	c.win.MakeContextCurrent()
	if !c.intervalSet {
		// swap interval applies to the current context only
		glfw.SwapInterval(c.swapInterval)
		c.intervalSet = true
	}
	return nil
}

func (c *Context) ReleaseCurrent() { glfw.DetachCurrentContext() }
func (c *Context) SwapBuffers()    { c.win.SwapBuffers() }

func (c *Context) FramebufferSize() (int, int) {
	return c.win.GetFramebufferSize()
}

func (c *Context) Show()    { c.win.Show() }
func (c *Context) Destroy() { c.win.Destroy() }
