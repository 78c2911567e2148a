package renderer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	log     *[]string
	failOn  bool
	created int
}

func (r *recorder) SurfaceCreated() error {
	*r.log = append(*r.log, r.name+".created")
	if r.failOn {
		return errors.New("shader compile failed")
	}
	r.created++
	return nil
}

func (r *recorder) SurfaceChanged(w, h int) { *r.log = append(*r.log, r.name+".changed") }
func (r *recorder) DrawFrame()              { *r.log = append(*r.log, r.name+".draw") }
func (r *recorder) Dispose()                { *r.log = append(*r.log, r.name+".dispose") }

func TestGroupOrder(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log}
	g := NewGroup(a, b)
	assert.Equal(t, 2, g.Len())

	require.NoError(t, g.SurfaceCreated())
	g.SurfaceChanged(640, 480)
	g.DrawFrame()
	g.Dispose()

	assert.Equal(t, []string{
		"a.created", "b.created",
		"a.changed", "b.changed",
		"a.draw", "b.draw",
		"b.dispose", "a.dispose",
	}, log)
}

func TestGroupCreateFailureDisposesInitialized(t *testing.T) {
	var log []string
	a := &recorder{name: "a", log: &log}
	b := &recorder{name: "b", log: &log, failOn: true}
	c := &recorder{name: "c", log: &log}
	g := NewGroup(a, b, c)

	require.Error(t, g.SurfaceCreated())
	g.DrawFrame()

	assert.Equal(t, []string{"a.created", "b.created", "a.dispose"}, log)
}

type plain struct{}

func (plain) SurfaceCreated() error   { return nil }
func (plain) SurfaceChanged(int, int) {}
func (plain) DrawFrame()              {}

func TestDisposeWithoutDisposer(t *testing.T) {
	assert.NotPanics(t, func() { Dispose(plain{}) })
}
