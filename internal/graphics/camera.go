package graphics

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	Near   float32
	Far    float32

	projection mgl32.Mat4
}

// NewCamera places the eye just behind the origin, looking into the screen.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 0, 1.5},
		Center: mgl32.Vec3{0, 0, -5},
		Up:     mgl32.Vec3{0, 1, 0},
		Near:   1,
		Far:    10,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport rebuilds the projection. The height always spans [-1, 1] and
// the width follows the aspect ratio.
func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		height = 1
	}
	ratio := float32(width) / float32(height)
	c.projection = mgl32.Frustum(-ratio, ratio, -1, 1, c.Near, c.Far)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// MVP combines model with the camera's view and projection.
func (c *Camera) MVP(model mgl32.Mat4) mgl32.Mat4 {
	return c.projection.Mul4(c.ViewMatrix()).Mul4(model)
}

// RotationAngle returns the angle in degrees reached after elapsed time when
// one full turn takes period.
func RotationAngle(elapsed, period time.Duration) float32 {
	if period <= 0 {
		return 0
	}
	phase := elapsed % period
	return 360 * float32(phase) / float32(period)
}
