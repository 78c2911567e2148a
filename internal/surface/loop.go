package surface

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"glhost/internal/graphics/renderer"
	"glhost/internal/profiling"
)

var errRendererPanic = errors.New("renderer panicked")

// run is the render thread. The context stays current on this OS thread
// until the thread is asked to stop.
func (s *Surface) run(t *renderThread) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	if err := s.ctx.MakeCurrent(); err != nil {
		s.fail(fmt.Errorf("make context current: %w", err))
		return
	}
	defer s.ctx.ReleaseCurrent()

	if !s.live {
		if err := s.create(); err != nil {
			s.fail(err)
			return
		}
	}

	// the schedule from before a pause is stale
	s.limiter.Reset()
	for {
		if s.mode == RenderWhenDirty {
			select {
			case <-t.stop:
				s.stopping()
				return
			case <-s.wake:
			}
		} else {
			select {
			case <-t.stop:
				s.stopping()
				return
			default:
			}
		}

		if err := s.frame(); err != nil {
			s.fail(err)
			return
		}

		if s.mode == RenderContinuously {
			s.limiter.Wait()
		}
	}
}

// create runs SurfaceCreated and schedules the initial SurfaceChanged.
func (s *Surface) create() (err error) {
	defer recoverRenderer(&err)

	if err := s.renderer.SurfaceCreated(); err != nil {
		return fmt.Errorf("surface created: %w", err)
	}
	s.live = true

	w, h := s.ctx.FramebufferSize()
	s.mu.Lock()
	if !s.sizeKnown {
		s.width, s.height = w, h
		s.sizeKnown = true
	}
	s.sizeDirty = true
	s.mu.Unlock()

	s.log.Debug("surface created", "width", w, "height", h)
	return nil
}

func (s *Surface) frame() (err error) {
	defer recoverRenderer(&err)

	profiling.ResetFrame()
	start := time.Now()

	s.mu.Lock()
	events := s.events
	s.events = nil
	dirty := s.sizeDirty
	w, h := s.width, s.height
	s.sizeDirty = false
	s.mu.Unlock()

	if len(events) > 0 {
		stop := profiling.Track("surface.Events")
		for _, f := range events {
			f()
		}
		stop()
	}
	if dirty {
		s.renderer.SurfaceChanged(w, h)
	}

	func() { defer profiling.Track("surface.DrawFrame")(); s.renderer.DrawFrame() }()
	func() { defer profiling.Track("surface.SwapBuffers")(); s.ctx.SwapBuffers() }()
	s.frames.Add(1)

	if d := time.Since(start); d > slowFrame {
		p := profiling.Current()
		s.log.Warn("slow frame", "took", d,
			"draw", p.SumWithPrefix("surface.DrawFrame"),
			"swap", p.SumWithPrefix("surface.SwapBuffers"),
			"top", p.TopN(5))
	}
	return nil
}

// stopping runs on the render thread after the last frame of a resume
// period. Pending events are drained so work queued before a pause is not
// lost or run against a stale context.
func (s *Surface) stopping() {
	s.mu.Lock()
	events := s.events
	s.events = nil
	s.mu.Unlock()
	for _, f := range events {
		f()
	}

	if !s.preserve && s.live {
		renderer.Dispose(s.renderer)
		s.live = false
	}
}

func recoverRenderer(err *error) {
	if v := recover(); v != nil {
		*err = fmt.Errorf("%w: %v", errRendererPanic, v)
	}
}
