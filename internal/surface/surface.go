// Package surface owns a graphics context and the render thread that drives a
// bound renderer.
package surface

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"glhost/internal/graphics/renderer"
	"glhost/internal/logging"
)

// RenderMode selects how frames are scheduled.
type RenderMode int

const (
	// RenderContinuously draws frames back to back, paced by the FPS limit.
	RenderContinuously RenderMode = iota
	// RenderWhenDirty draws only after RequestRender, a resize or a queued event.
	RenderWhenDirty
)

const slowFrame = 16 * time.Millisecond

// Option configures a Surface.
type Option func(*Surface)

func WithRenderMode(m RenderMode) Option { return func(s *Surface) { s.mode = m } }

// WithFPSLimit caps continuous rendering; 0 means unlimited.
func WithFPSLimit(limit int) Option { return func(s *Surface) { s.fpsLimit = limit } }

// WithPreserveContext keeps renderer resources alive across a pause. When
// false the renderer is disposed on pause and SurfaceCreated runs again on
// the next resume.
func WithPreserveContext(preserve bool) Option {
	return func(s *Surface) { s.preserve = preserve }
}

func WithLogger(l *slog.Logger) Option { return func(s *Surface) { s.log = l } }

type renderThread struct {
	stop chan struct{}
	done chan struct{}
}

// Surface is the drawable target. It is created unconfigured; Configure binds
// a renderer and creates the context, after which Resume and Pause start and
// stop the render thread.
type Surface struct {
	factory  ContextFactory
	mode     RenderMode
	fpsLimit int
	preserve bool
	log      *slog.Logger

	// life serializes Configure, Resume, Pause and Destroy.
	life sync.Mutex

	mu         sync.Mutex
	configured bool
	destroyed  bool
	shown      bool
	version    ContextVersion
	ctx        Context
	renderer   renderer.Renderer
	thread     *renderThread
	width      int
	height     int
	sizeKnown  bool
	sizeDirty  bool
	events     []func()
	err        error

	// live is only touched by the render thread, or while no render thread
	// exists under life.
	live bool

	limiter *FPSLimiter
	wake    chan struct{}
	frames  atomic.Uint64
}

// New creates an unconfigured surface that will get its context from factory.
func New(factory ContextFactory, opts ...Option) *Surface {
	s := &Surface{
		factory:  factory,
		mode:     RenderContinuously,
		fpsLimit: 60,
		preserve: true,
		wake:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = logging.Or(s.log)
	s.limiter = NewFPSLimiter(s.fpsLimit)
	return s
}

// Configure requests a context of version v and binds r to receive the render
// thread's callbacks. It may succeed at most once per surface.
func (s *Surface) Configure(v ContextVersion, r renderer.Renderer) error {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	destroyed, configured := s.destroyed, s.configured
	s.mu.Unlock()
	switch {
	case destroyed:
		return ErrDestroyed
	case configured:
		return ErrAlreadyConfigured
	case r == nil:
		return ErrNilRenderer
	}

	if err := bind(r, s); err != nil {
		return err
	}
	if s.factory == nil {
		unbind(r, s)
		return fmt.Errorf("create %s context: no context factory", v)
	}
	ctx, err := s.factory.NewContext(v)
	if err != nil {
		unbind(r, s)
		return fmt.Errorf("create %s context: %w", v, err)
	}

	s.mu.Lock()
	s.ctx = ctx
	s.renderer = r
	s.version = v
	s.configured = true
	s.mu.Unlock()

	s.log.Debug("surface configured", "context", v.String())
	return nil
}

// Show makes the configured surface visible.
func (s *Surface) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.destroyed:
		return ErrDestroyed
	case !s.configured:
		return ErrNotConfigured
	case s.shown:
		return nil
	}
	s.ctx.Show()
	s.shown = true
	return nil
}

// Resume starts the render thread. It does nothing before Configure, after
// Destroy, or while the thread is already running.
func (s *Surface) Resume() {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	if !s.configured || s.destroyed || s.thread != nil {
		s.mu.Unlock()
		return
	}
	t := &renderThread{stop: make(chan struct{}), done: make(chan struct{})}
	s.thread = t
	s.mu.Unlock()

	s.signal()
	go s.run(t)
}

// Pause stops the render thread and blocks until its in-flight frame has
// finished and the context has been released.
func (s *Surface) Pause() {
	s.life.Lock()
	defer s.life.Unlock()
	s.stopThread()
}

func (s *Surface) stopThread() {
	s.mu.Lock()
	t := s.thread
	s.mu.Unlock()
	if t == nil {
		return
	}

	close(t.stop)
	<-t.done

	s.mu.Lock()
	s.thread = nil
	s.mu.Unlock()
}

// Resize records a new drawable size. The renderer sees it before the next
// frame.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	if s.sizeKnown && s.width == width && s.height == height {
		s.mu.Unlock()
		return
	}
	s.width, s.height = width, height
	s.sizeKnown = true
	s.sizeDirty = true
	s.mu.Unlock()
	s.signal()
}

// RequestRender asks for a frame in RenderWhenDirty mode.
func (s *Surface) RequestRender() {
	s.signal()
}

// QueueEvent runs f on the render thread with the context current, before
// the next frame. Events queued while paused run after the next Resume.
func (s *Surface) QueueEvent(f func()) {
	if f == nil {
		return
	}
	s.mu.Lock()
	s.events = append(s.events, f)
	s.mu.Unlock()
	s.signal()
}

// Destroy stops rendering, releases the renderer's resources, unbinds it and
// destroys the context. It is safe to call more than once.
func (s *Surface) Destroy() {
	s.life.Lock()
	defer s.life.Unlock()

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	configured := s.configured
	s.mu.Unlock()

	if configured {
		s.stopThread()
		if s.live {
			s.disposeDetached()
		}
		unbind(s.renderer, s)
		s.ctx.Destroy()
	}

	s.mu.Lock()
	s.destroyed = true
	s.events = nil
	s.mu.Unlock()
	s.log.Debug("surface destroyed")
}

// Err returns the last error reported by the renderer, if any.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Running reports whether the render thread is active.
func (s *Surface) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thread != nil
}

// Configured reports whether Configure has succeeded.
func (s *Surface) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

// Frames returns the number of frames presented so far.
func (s *Surface) Frames() uint64 {
	return s.frames.Load()
}

// Renderer returns the bound renderer, or nil before Configure.
func (s *Surface) Renderer() renderer.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

// Version returns the context version requested by Configure.
func (s *Surface) Version() ContextVersion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Surface) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Surface) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.log.Error("render thread stopped", "err", err)
}

// disposeDetached releases renderer resources when no render thread exists.
func (s *Surface) disposeDetached() {
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		if err := s.ctx.MakeCurrent(); err != nil {
			s.log.Warn("could not make context current for dispose", "err", err)
			return
		}
		renderer.Dispose(s.renderer)
		s.ctx.ReleaseCurrent()
	}()
	<-done
	s.live = false
}
