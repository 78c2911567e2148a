// Package stats is a renderer that draws nothing and periodically logs the
// frame rate and the most expensive tracked sections of the last frame.
package stats

import (
	"log/slog"
	"time"

	"glhost/internal/logging"
	"glhost/internal/profiling"
)

// Stats implements renderer.Renderer. Add it last to a renderer.Group so the
// scene's own timings are in the frame when it reports.
type Stats struct {
	interval time.Duration
	log      *slog.Logger
	clock    func() time.Time

	frames     int
	lastReport time.Time
	lastFPS    float64
}

func NewStats(interval time.Duration, log *slog.Logger) *Stats {
	return &Stats{
		interval: interval,
		log:      logging.Or(log),
		clock:    time.Now,
	}
}

func (s *Stats) WithClock(clock func() time.Time) *Stats {
	s.clock = clock
	return s
}

func (s *Stats) SurfaceCreated() error {
	s.frames = 0
	s.lastReport = s.clock()
	return nil
}

func (s *Stats) SurfaceChanged(width, height int) {
	s.log.Debug("surface changed", "width", width, "height", height)
}

func (s *Stats) DrawFrame() {
	s.frames++
	now := s.clock()
	elapsed := now.Sub(s.lastReport)
	if s.interval <= 0 || elapsed < s.interval {
		return
	}
	s.lastFPS = float64(s.frames) / elapsed.Seconds()
	s.log.Debug("frame stats", "fps", int(s.lastFPS+0.5), "top", profiling.TopNCurrentFrame(3))
	s.frames = 0
	s.lastReport = now
}

// FPS returns the rate measured over the last completed interval.
func (s *Stats) FPS() float64 {
	return s.lastFPS
}
