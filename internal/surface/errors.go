package surface

import "errors"

var (
	// ErrAlreadyConfigured is returned by a second Configure call.
	ErrAlreadyConfigured = errors.New("surface already configured")
	// ErrNotConfigured is returned by operations that need a context.
	ErrNotConfigured = errors.New("surface not configured")
	// ErrDestroyed is returned by operations on a destroyed surface.
	ErrDestroyed = errors.New("surface destroyed")
	// ErrNilRenderer is returned when Configure is given no renderer.
	ErrNilRenderer = errors.New("nil renderer")
	// ErrRendererBound means the renderer is already bound to another surface.
	ErrRendererBound = errors.New("renderer already bound to a surface")
)
