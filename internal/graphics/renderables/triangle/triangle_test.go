package triangle

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"glhost/internal/graphics/renderer"
)

var (
	_ renderer.Renderer = (*Triangle)(nil)
	_ renderer.Disposer = (*Triangle)(nil)
)

func TestVertexLayout(t *testing.T) {
	assert.Zero(t, len(Vertices)%strideFloats)
	assert.Equal(t, 3, len(Vertices)/strideFloats)
}

func TestModelsAtRest(t *testing.T) {
	m := Models(0)
	assert.True(t, m[0].ApproxEqual(mgl32.Ident4()))

	top := mgl32.Vec4{0, 0.559016994, 0, 1}
	got := m[1].Mul4x1(top)
	// mirrored about y then shifted down
	assert.InDelta(t, -0.5-0.559016994, got.Y(), 1e-5)
	assert.InDelta(t, 0, got.X(), 1e-5)
}

func TestModelsRotate(t *testing.T) {
	m := Models(90)
	got := m[0].Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, got.X(), 1e-5)
	assert.InDelta(t, 1, got.Y(), 1e-5)
}
