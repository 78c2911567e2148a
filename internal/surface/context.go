package surface

import (
	"fmt"

	"glhost/internal/capability"
)

// API identifies the client API a context is created for.
type API int

const (
	OpenGLES API = iota
	OpenGL
)

func (a API) String() string {
	switch a {
	case OpenGLES:
		return "OpenGL ES"
	case OpenGL:
		return "OpenGL"
	}
	return fmt.Sprintf("API(%d)", int(a))
}

// ContextVersion is the context a surface asks its platform for.
type ContextVersion struct {
	API   API
	Major int
	Minor int
}

// VersionForTier returns the OpenGL ES context version matching t.
func VersionForTier(t capability.Tier) ContextVersion {
	return ContextVersion{API: OpenGLES, Major: t.Major(), Minor: t.Minor()}
}

func (v ContextVersion) String() string {
	return fmt.Sprintf("%s %d.%d", v.API, v.Major, v.Minor)
}

// Context is a platform graphics context together with its drawable.
// MakeCurrent, ReleaseCurrent and SwapBuffers are called from the render
// thread; Show and Destroy from the thread that owns the surface.
type Context interface {
	MakeCurrent() error
	ReleaseCurrent()
	SwapBuffers()
	FramebufferSize() (width, height int)
	Show()
	Destroy()
}

// ContextFactory creates contexts of a requested version.
type ContextFactory interface {
	NewContext(v ContextVersion) (Context, error)
}

// ContextFactoryFunc adapts a function to ContextFactory.
type ContextFactoryFunc func(v ContextVersion) (Context, error)

func (f ContextFactoryFunc) NewContext(v ContextVersion) (Context, error) {
	return f(v)
}
