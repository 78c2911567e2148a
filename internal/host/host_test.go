package host

import (
	"errors"
	"testing"
	"time"

	"glhost/internal/capability"
	"glhost/internal/graphics/renderer"
	"glhost/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog []string

type fakeSurface struct {
	log          *callLog
	configureErr error
	version      surface.ContextVersion
	renderer     renderer.Renderer
	configures   int
	shows        int
	resumes      int
	pauses       int
	destroys     int
	sizes        [][2]int
}

func (s *fakeSurface) Configure(v surface.ContextVersion, r renderer.Renderer) error {
	*s.log = append(*s.log, "configure")
	s.configures++
	if s.configureErr != nil {
		return s.configureErr
	}
	s.version, s.renderer = v, r
	return nil
}

func (s *fakeSurface) Show() error {
	*s.log = append(*s.log, "show")
	s.shows++
	return nil
}

func (s *fakeSurface) Resume() {
	*s.log = append(*s.log, "resume")
	s.resumes++
}

func (s *fakeSurface) Pause() {
	*s.log = append(*s.log, "pause")
	s.pauses++
}

func (s *fakeSurface) Resize(w, h int) { s.sizes = append(s.sizes, [2]int{w, h}) }

func (s *fakeSurface) Destroy() {
	*s.log = append(*s.log, "destroy")
	s.destroys++
}

type nopRenderer struct{ calls int }

func (r *nopRenderer) SurfaceCreated() error   { r.calls++; return nil }
func (r *nopRenderer) SurfaceChanged(int, int) { r.calls++ }
func (r *nopRenderer) DrawFrame()              { r.calls++ }

type fixture struct {
	log       callLog
	probes    int
	renderers []*nopRenderer
	surfaces  []*fakeSurface
	host      *Host
}

func newFixture(tier capability.Tier, opts ...Option) *fixture {
	f := &fixture{}
	probe := capability.ProbeFunc(func() capability.Tier {
		f.log = append(f.log, "probe")
		f.probes++
		return tier
	})
	factories := Factories{
		NewRenderer: func() renderer.Renderer {
			f.log = append(f.log, "new-renderer")
			r := &nopRenderer{}
			f.renderers = append(f.renderers, r)
			return r
		},
		NewSurface: func() Surface {
			f.log = append(f.log, "new-surface")
			s := &fakeSurface{log: &f.log}
			f.surfaces = append(f.surfaces, s)
			return s
		},
	}
	f.host = New(probe, factories, opts...)
	return f
}

func (f *fixture) surface() *fakeSurface { return f.surfaces[0] }

func TestStartsUninitialized(t *testing.T) {
	f := newFixture(capability.TierES2)
	assert.Equal(t, Uninitialized, f.host.State())
	assert.Equal(t, capability.TierNone, f.host.Tier())
	assert.Nil(t, f.host.Surface())
	assert.Nil(t, f.host.Renderer())
}

func TestActivateAtMinimumTier(t *testing.T) {
	f := newFixture(capability.Tier(0x20000))
	require.NoError(t, f.host.Activate())

	assert.Equal(t, Bound, f.host.State())
	assert.Equal(t, capability.TierES2, f.host.Tier())
	require.Len(t, f.renderers, 1)
	require.Len(t, f.surfaces, 1)
	s := f.surface()
	assert.Equal(t, 1, s.configures)
	assert.Same(t, f.renderers[0], s.renderer)
	assert.Equal(t, surface.ContextVersion{API: surface.OpenGLES, Major: 2, Minor: 0}, s.version)
	assert.Equal(t, 1, s.shows)
	assert.Equal(t, []string{"new-renderer", "new-surface", "probe", "configure", "show"}, []string(f.log))
	assert.Zero(t, f.renderers[0].calls)
	assert.NoError(t, f.host.Err())
	assert.Same(t, s, f.host.Surface())
}

func TestActivateAboveMinimumRequestsRequiredVersion(t *testing.T) {
	f := newFixture(capability.TierES32)
	require.NoError(t, f.host.Activate())
	assert.Equal(t, Bound, f.host.State())
	assert.Equal(t, 2, f.surface().version.Major)
}

func TestActivateBelowMinimumDeclines(t *testing.T) {
	f := newFixture(capability.Tier(0x10000))
	require.NoError(t, f.host.Activate())

	assert.Equal(t, FailedCapability, f.host.State())
	assert.ErrorIs(t, f.host.Err(), ErrCapabilityUnmet)
	s := f.surface()
	assert.Zero(t, s.configures)
	assert.Zero(t, s.shows, "nothing may be displayed")
	assert.Equal(t, 1, s.destroys)
	assert.Nil(t, f.host.Surface())
	assert.Nil(t, f.host.Renderer())
	assert.Zero(t, f.renderers[0].calls)
}

func TestBelowMinimumIgnoresLifecycle(t *testing.T) {
	f := newFixture(capability.TierES1)
	require.NoError(t, f.host.Activate())

	f.host.OnResume()
	f.host.OnPause()
	f.host.OnResize(10, 10)
	assert.Equal(t, FailedCapability, f.host.State())
	assert.Zero(t, f.surface().resumes)
	assert.Zero(t, f.surface().pauses)
	assert.Empty(t, f.surface().sizes)
}

func TestCustomRequiredTier(t *testing.T) {
	f := newFixture(capability.TierES2, WithRequiredTier(capability.TierES3))
	require.NoError(t, f.host.Activate())
	assert.Equal(t, FailedCapability, f.host.State())

	g := newFixture(capability.TierES31, WithRequiredTier(capability.TierES3))
	require.NoError(t, g.host.Activate())
	assert.Equal(t, Bound, g.host.State())
	assert.Equal(t, 3, g.surface().version.Major)
}

func TestActivateTwice(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())
	assert.ErrorIs(t, f.host.Activate(), ErrAlreadyActivated)

	assert.Equal(t, Bound, f.host.State())
	assert.Equal(t, 1, f.probes)
	assert.Len(t, f.renderers, 1)
	assert.Len(t, f.surfaces, 1)

	g := newFixture(capability.TierES1)
	require.NoError(t, g.host.Activate())
	assert.ErrorIs(t, g.host.Activate(), ErrAlreadyActivated)
	assert.Equal(t, FailedCapability, g.host.State())
	assert.Equal(t, 1, g.probes)
}

func TestLifecycleBeforeActivate(t *testing.T) {
	f := newFixture(capability.TierES2)
	f.host.OnResume()
	f.host.OnPause()
	f.host.OnResize(640, 480)

	assert.Equal(t, Uninitialized, f.host.State())
	assert.Empty(t, f.surfaces)
	assert.Empty(t, f.renderers)
	assert.Empty(t, f.log)
}

func TestResumeAfterActivate(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())

	f.host.OnResume()
	assert.Equal(t, Active, f.host.State())
	assert.Equal(t, 1, f.surface().resumes)

	f.host.OnResume()
	assert.Equal(t, 1, f.surface().resumes, "resume while active is a no-op")
}

func TestPauseIsIdempotent(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())

	f.host.OnPause()
	assert.Equal(t, Bound, f.host.State(), "pause before resume is a no-op")
	assert.Zero(t, f.surface().pauses)

	f.host.OnResume()
	f.host.OnPause()
	assert.Equal(t, Inactive, f.host.State())
	assert.Equal(t, 1, f.surface().pauses)

	f.host.OnPause()
	assert.Equal(t, Inactive, f.host.State())
	assert.Equal(t, 1, f.surface().pauses)
}

func TestResumePauseResumeSequence(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())
	f.log = nil

	f.host.OnResume()
	f.host.OnPause()
	f.host.OnResume()

	assert.Equal(t, Active, f.host.State())
	assert.Equal(t, []string{"resume", "pause", "resume"}, []string(f.log))
	assert.Len(t, f.surfaces, 1, "no surface re-creation")
	assert.Equal(t, 1, f.surface().configures)
}

func TestOnResize(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())
	f.host.OnResize(1024, 768)
	f.host.OnResume()
	f.host.OnResize(800, 600)
	assert.Equal(t, [][2]int{{1024, 768}, {800, 600}}, f.surface().sizes)
}

func TestDestroy(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())
	f.host.OnResume()
	f.log = nil

	f.host.Destroy()
	assert.Equal(t, Destroyed, f.host.State())
	assert.Equal(t, []string{"pause", "destroy"}, []string(f.log))
	assert.Nil(t, f.host.Surface())

	f.host.Destroy()
	f.host.OnResume()
	assert.Equal(t, Destroyed, f.host.State())
	assert.Equal(t, 1, f.surface().destroys)
	assert.ErrorIs(t, f.host.Activate(), ErrAlreadyActivated)
}

func TestDestroyWhileInactiveSkipsPause(t *testing.T) {
	f := newFixture(capability.TierES2)
	require.NoError(t, f.host.Activate())
	f.host.OnResume()
	f.host.OnPause()
	f.log = nil

	f.host.Destroy()
	assert.Equal(t, []string{"destroy"}, []string(f.log))
}

func TestConfigureFailure(t *testing.T) {
	boom := errors.New("no matching EGL config")
	f := newFixture(capability.TierES2)
	f.host.factories.NewSurface = func() Surface {
		s := &fakeSurface{log: &f.log, configureErr: boom}
		f.surfaces = append(f.surfaces, s)
		return s
	}

	err := f.host.Activate()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, FailedCapability, f.host.State())
	assert.ErrorIs(t, f.host.Err(), boom)
	assert.Zero(t, f.surface().shows)
	assert.Equal(t, 1, f.surface().destroys)
}

func TestNilFactoryResults(t *testing.T) {
	h := New(capability.Static(capability.TierES2), Factories{})
	assert.ErrorIs(t, h.Activate(), ErrMissingFactory)
	assert.Equal(t, FailedCapability, h.State())

	h = New(capability.Static(capability.TierES2), Factories{
		NewRenderer: func() renderer.Renderer { return nil },
		NewSurface:  func() Surface { t.Fatal("surface created without renderer"); return nil },
	})
	assert.ErrorIs(t, h.Activate(), ErrNilRenderer)

	h = New(capability.Static(capability.TierES2), Factories{
		NewRenderer: func() renderer.Renderer { return &nopRenderer{} },
		NewSurface:  func() Surface { return nil },
	})
	assert.ErrorIs(t, h.Activate(), ErrNilSurface)
	assert.Equal(t, FailedCapability, h.State())
}

func TestNilProbeCountsAsLowestTier(t *testing.T) {
	f := newFixture(capability.TierES2)
	f.host.probe = nil
	require.NoError(t, f.host.Activate())
	assert.Equal(t, FailedCapability, f.host.State())
	assert.Equal(t, capability.TierNone, f.host.Tier())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "failed-capability", FailedCapability.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "unknown", State(42).String())
}

// drawCounter is a renderer for exercising the host against a real surface.
type drawCounter struct {
	created chan struct{}
	frames  chan struct{}
}

func (d *drawCounter) SurfaceCreated() error   { close(d.created); return nil }
func (d *drawCounter) SurfaceChanged(int, int) {}
func (d *drawCounter) DrawFrame() {
	select {
	case d.frames <- struct{}{}:
	default:
	}
}

type nullContext struct{}

func (nullContext) MakeCurrent() error          { return nil }
func (nullContext) ReleaseCurrent()             {}
func (nullContext) SwapBuffers()                {}
func (nullContext) FramebufferSize() (int, int) { return 320, 240 }
func (nullContext) Show()                       {}
func (nullContext) Destroy()                    {}

func TestHostDrivesRealSurface(t *testing.T) {
	d := &drawCounter{created: make(chan struct{}), frames: make(chan struct{}, 1)}
	var surf *surface.Surface
	h := New(capability.Static(capability.TierES3), Factories{
		NewRenderer: func() renderer.Renderer { return d },
		NewSurface: func() Surface {
			surf = surface.New(surface.ContextFactoryFunc(func(surface.ContextVersion) (surface.Context, error) {
				return nullContext{}, nil
			}), surface.WithFPSLimit(200))
			return surf
		},
	})

	require.NoError(t, h.Activate())
	assert.False(t, surf.Running())

	h.OnResume()
	select {
	case <-d.frames:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame drawn after resume")
	}
	<-d.created

	h.OnPause()
	assert.False(t, surf.Running())
	frames := surf.Frames()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frames, surf.Frames())

	h.OnResume()
	assert.True(t, surf.Running())
	h.Destroy()
	assert.False(t, surf.Running())
	assert.Equal(t, Destroyed, h.State())
}

// reentrantSurface reads the host's state from inside Configure, the way a
// window-creation hook might.
type reentrantSurface struct {
	fakeSurface
	host *Host
	seen []State
}

func (s *reentrantSurface) Configure(v surface.ContextVersion, r renderer.Renderer) error {
	s.seen = append(s.seen, s.host.State())
	return s.fakeSurface.Configure(v, r)
}

func TestHooksMayCallBackIntoHost(t *testing.T) {
	var (
		h    *Host
		log  callLog
		seen []State
		surf *reentrantSurface
	)
	h = New(
		capability.ProbeFunc(func() capability.Tier {
			seen = append(seen, h.State())
			return capability.TierES2
		}),
		Factories{
			NewRenderer: func() renderer.Renderer {
				seen = append(seen, h.State())
				return &nopRenderer{}
			},
			NewSurface: func() Surface {
				seen = append(seen, h.State())
				surf = &reentrantSurface{fakeSurface: fakeSurface{log: &log}, host: h}
				return surf
			},
		},
	)

	done := make(chan error, 1)
	go func() { done <- h.Activate() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Activate deadlocked on a hook calling the host")
	}

	assert.Equal(t, []State{Uninitialized, Uninitialized, Uninitialized}, seen)
	assert.Equal(t, []State{Uninitialized}, surf.seen)
	assert.Equal(t, Bound, h.State())
	assert.ErrorIs(t, h.Activate(), ErrAlreadyActivated)
}
