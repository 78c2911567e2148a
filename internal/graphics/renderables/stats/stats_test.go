package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glhost/internal/graphics/renderer"
)

var _ renderer.Renderer = (*Stats)(nil)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStatsMeasuresFPS(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	s := NewStats(time.Second, nil).WithClock(clock.Now)
	require.NoError(t, s.SurfaceCreated())

	for i := 0; i < 30; i++ {
		clock.Advance(20 * time.Millisecond)
		s.DrawFrame()
	}
	assert.Zero(t, s.FPS(), "no report before the interval")

	for i := 0; i < 20; i++ {
		clock.Advance(20 * time.Millisecond)
		s.DrawFrame()
	}
	assert.InDelta(t, 50, s.FPS(), 0.01)
}

func TestStatsDisabled(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := NewStats(0, nil).WithClock(clock.Now)
	require.NoError(t, s.SurfaceCreated())
	clock.Advance(time.Hour)
	s.DrawFrame()
	assert.Zero(t, s.FPS())
}
