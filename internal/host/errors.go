package host

import "errors"

var (
	// ErrCapabilityUnmet is reported by Err after the device fell short of
	// the required tier. Activate itself does not return it.
	ErrCapabilityUnmet = errors.New("graphics capability below required tier")
	// ErrAlreadyActivated is returned by every Activate call after the first.
	ErrAlreadyActivated = errors.New("host already activated")
	// ErrNilRenderer means the renderer factory produced nothing.
	ErrNilRenderer = errors.New("renderer factory returned nil")
	// ErrNilSurface means the surface factory produced nothing.
	ErrNilSurface = errors.New("surface factory returned nil")
	// ErrMissingFactory means Factories was incomplete.
	ErrMissingFactory = errors.New("missing factory")
)
