// Package triangle draws two vertex-coloured triangles spinning about the
// view axis, the second one mirrored below the first.
package triangle

import (
	_ "embed"
	"time"

	"glhost/internal/graphics"
	"glhost/internal/profiling"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/triangle.vert
	vertShader string
	//go:embed shaders/triangle.frag
	fragShader string
)

// Vertices holds position (xyz) followed by colour (rgba) per vertex.
var Vertices = []float32{
	-0.5, -0.25, 0.0,
	1.0, 0.0, 0.0, 1.0,

	0.5, -0.25, 0.0,
	0.0, 0.0, 1.0, 1.0,

	0.0, 0.559016994, 0.0,
	0.0, 1.0, 0.0, 1.0,
}

const (
	positionSize = 3
	colorSize    = 4
	strideFloats = positionSize + colorSize
	floatSize    = 4
)

// Period is the time for one full turn.
const Period = 10 * time.Second

// Triangle implements renderer.Renderer.
type Triangle struct {
	shader *graphics.Shader
	camera *graphics.Camera
	vbo    uint32
	mvp    int32

	clock func() time.Time
	start time.Time
}

func NewTriangle() *Triangle {
	return &Triangle{clock: time.Now}
}

// WithClock replaces the time source used for the rotation angle.
func (t *Triangle) WithClock(clock func() time.Time) *Triangle {
	t.clock = clock
	return t
}

func (t *Triangle) SurfaceCreated() error {
	if err := graphics.InitGL(); err != nil {
		return err
	}
	shader, err := graphics.NewShader(vertShader, fragShader, "a_Position", "a_Color")
	if err != nil {
		return err
	}
	t.shader = shader
	t.mvp = shader.Uniform("u_MVPMatrix")
	t.camera = graphics.NewCamera(1, 1)

	gl.GenBuffers(1, &t.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(Vertices)*floatSize, gl.Ptr(Vertices), gl.STATIC_DRAW)

	gl.ClearColor(0.5, 0.5, 0.5, 0.5)
	t.start = t.clock()
	return nil
}

func (t *Triangle) SurfaceChanged(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	t.camera.SetViewport(width, height)
}

func (t *Triangle) DrawFrame() {
	defer profiling.Track("triangle.DrawFrame")()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	t.shader.Use()

	angle := graphics.RotationAngle(t.clock().Sub(t.start), Period)
	for _, model := range Models(angle) {
		t.draw(model)
	}
}

// Models returns the model matrices of both triangles at the given angle in
// degrees.
func Models(angle float32) [2]mgl32.Mat4 {
	spin := mgl32.HomogRotate3DZ(mgl32.DegToRad(angle))
	mirrored := mgl32.Translate3D(0, -0.5, 0).
		Mul4(mgl32.Scale3D(1, -1, 1)).
		Mul4(spin)
	return [2]mgl32.Mat4{spin, mirrored}
}

func (t *Triangle) draw(model mgl32.Mat4) {
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.VertexAttribPointer(0, positionSize, gl.FLOAT, false, strideFloats*floatSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, colorSize, gl.FLOAT, false, strideFloats*floatSize, gl.PtrOffset(positionSize*floatSize))
	gl.EnableVertexAttribArray(1)

	mvp := t.camera.MVP(model)
	gl.UniformMatrix4fv(t.mvp, 1, false, &mvp[0])
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(Vertices)/strideFloats))
}

// Dispose cleans up GL resources. The context must be current.
func (t *Triangle) Dispose() {
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
	t.shader.Delete()
	t.shader = nil
}
