// Package host drives the lifecycle of a render surface: it checks the
// device's graphics capability once, binds a renderer to a freshly created
// surface when the device qualifies, and forwards resume and pause signals.
package host

import (
	"fmt"
	"log/slog"
	"sync"

	"glhost/internal/capability"
	"glhost/internal/graphics/renderer"
	"glhost/internal/logging"
	"glhost/internal/surface"
)

// Surface is the render surface as seen by the host. *surface.Surface
// implements it.
type Surface interface {
	Configure(v surface.ContextVersion, r renderer.Renderer) error
	Show() error
	Resume()
	Pause()
	Resize(width, height int)
	Destroy()
}

// Factories are the two hooks a concrete usage supplies. NewRenderer is
// always called before NewSurface. Both run during Activate without the
// host's lock held.
type Factories struct {
	NewRenderer func() renderer.Renderer
	NewSurface  func() Surface
}

// Option configures a Host.
type Option func(*Host)

// WithRequiredTier replaces the default minimum of capability.MinimumTier.
func WithRequiredTier(t capability.Tier) Option { return func(h *Host) { h.required = t } }

func WithLogger(l *slog.Logger) Option { return func(h *Host) { h.log = l } }

// Host is the lifecycle controller. Its methods are meant to be called from
// the application's UI thread, mirroring the platform's own create, resume
// and pause transitions, but they are safe for concurrent use.
type Host struct {
	probe     capability.Probe
	factories Factories
	required  capability.Tier
	log       *slog.Logger

	mu         sync.Mutex
	state      State
	activating bool
	tier       capability.Tier
	surface    Surface
	renderer   renderer.Renderer
	err        error
}

// New creates a host in the Uninitialized state.
func New(probe capability.Probe, f Factories, opts ...Option) *Host {
	h := &Host{
		probe:     probe,
		factories: f,
		required:  capability.MinimumTier,
	}
	for _, o := range opts {
		o(h)
	}
	h.log = logging.Or(h.log)
	return h
}

// Activate runs the one-time activation sequence. When the device's tier is
// below the requirement the host declines to render: the state becomes
// FailedCapability, nothing is displayed and nil is returned. Errors are
// returned only for contract violations and for a surface that could not
// create its context.
//
// The factories, the probe and the surface's Configure and Show run without
// the host's lock held, so they may call back into the host's accessors.
func (h *Host) Activate() error {
	h.mu.Lock()
	if h.state != Uninitialized || h.activating {
		state := h.state
		h.mu.Unlock()
		h.log.Warn("activate called twice", "state", state)
		return ErrAlreadyActivated
	}
	h.activating = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.activating = false
		h.mu.Unlock()
	}()

	if h.factories.NewRenderer == nil || h.factories.NewSurface == nil {
		return h.fail(ErrMissingFactory)
	}
	r := h.factories.NewRenderer()
	if r == nil {
		return h.fail(ErrNilRenderer)
	}
	s := h.factories.NewSurface()
	if s == nil {
		return h.fail(ErrNilSurface)
	}

	tier := capability.Query(h.probe)
	h.mu.Lock()
	h.tier = tier
	h.mu.Unlock()

	if !capability.MeetsMinimum(tier, h.required) {
		s.Destroy()
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.state == Uninitialized {
			h.state = FailedCapability
			h.err = ErrCapabilityUnmet
		}
		h.log.Info("graphics capability below requirement, not rendering",
			"tier", tier, "required", h.required)
		return nil
	}

	v := surface.VersionForTier(h.required)
	if err := s.Configure(v, r); err != nil {
		s.Destroy()
		return h.fail(fmt.Errorf("configure surface: %w", err))
	}

	h.mu.Lock()
	if h.state == Destroyed {
		h.mu.Unlock()
		s.Destroy()
		return nil
	}
	h.surface = s
	h.renderer = r
	h.state = Bound
	h.mu.Unlock()
	h.log.Info("surface bound", "tier", tier, "context", v.String())

	if err := s.Show(); err != nil {
		return fmt.Errorf("show surface: %w", err)
	}
	return nil
}

func (h *Host) fail(err error) error {
	h.mu.Lock()
	if h.state == Uninitialized {
		h.state = FailedCapability
		h.err = err
	}
	h.mu.Unlock()
	h.log.Error("activation failed", "err", err)
	return err
}

// OnResume forwards a resume to the surface when the host is Bound or
// Inactive. In any other state it does nothing.
func (h *Host) OnResume() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.state.canResume() {
		h.log.Debug("resume ignored", "state", h.state)
		return
	}
	h.surface.Resume()
	h.state = Active
}

// OnPause forwards a pause to the surface when the host is Active. It blocks
// until the surface's in-flight frame has drained.
func (h *Host) OnPause() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != Active {
		h.log.Debug("pause ignored", "state", h.state)
		return
	}
	h.surface.Pause()
	h.state = Inactive
}

// OnResize forwards a drawable size change to a bound surface.
func (h *Host) OnResize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case Bound, Active, Inactive:
		h.surface.Resize(width, height)
	}
}

// Destroy tears the host down, pausing first if it is still active. The
// host ends in the Destroyed state; further calls do nothing.
func (h *Host) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == Destroyed {
		return
	}
	if h.state == Active {
		h.surface.Pause()
	}
	if h.surface != nil {
		h.surface.Destroy()
		h.surface = nil
	}
	h.renderer = nil
	h.state = Destroyed
}

// State returns the current lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Tier returns the tier reported by the probe during activation, or
// capability.TierNone before it ran.
func (h *Host) Tier() capability.Tier {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tier
}

// Err explains a FailedCapability state.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Surface returns the bound surface, or nil when none is bound.
func (h *Host) Surface() Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surface
}

// Renderer returns the bound renderer, or nil when none is bound.
func (h *Host) Renderer() renderer.Renderer {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renderer
}
