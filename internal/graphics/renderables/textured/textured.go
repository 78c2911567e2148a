// Package textured draws a spinning textured quad. The texture is loaded
// lazily on the first frame, from an image file when one is configured and
// from a generated checkerboard otherwise.
package textured

import (
	_ "embed"
	"image/color"
	"log/slog"
	"time"

	"glhost/internal/graphics"
	"glhost/internal/logging"
	"glhost/internal/profiling"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed shaders/textured.vert
	vertShader string
	//go:embed shaders/textured.frag
	fragShader string
)

// Positions are two triangles forming a sheared quad.
var Positions = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,

	0.0, 0.5, 0.0,
	0.5, -0.5, 0.0,
	1.0, 0.5, 0.0,
}

// TexCoords maps each position onto the unit square.
var TexCoords = []float32{
	0, 0,
	1, 0,
	0, 1,

	0, 1,
	1, 0,
	1, 1,
}

const (
	floatSize    = 4
	positionSize = 3
	texCoordSize = 2
)

const (
	checkerSize  = 256
	checkerCells = 8
)

const Period = 10 * time.Second

// Textured implements renderer.Renderer.
type Textured struct {
	path string
	log  *slog.Logger

	shader    *graphics.Shader
	camera    *graphics.Camera
	positions uint32
	texCoords uint32
	mvp       int32

	cache   *graphics.TextureCache
	texture uint32
	ownTex  bool

	clock func() time.Time
	start time.Time
}

// NewTextured creates the scene. An empty path selects the checkerboard.
func NewTextured(path string, log *slog.Logger) *Textured {
	return &Textured{
		path:  path,
		log:   logging.Or(log),
		cache: graphics.NewTextureCache(),
		clock: time.Now,
	}
}

func (t *Textured) WithClock(clock func() time.Time) *Textured {
	t.clock = clock
	return t
}

func (t *Textured) SurfaceCreated() error {
	if err := graphics.InitGL(); err != nil {
		return err
	}
	shader, err := graphics.NewShader(vertShader, fragShader, "a_Position", "a_TexCoord")
	if err != nil {
		return err
	}
	t.shader = shader
	t.mvp = shader.Uniform("u_MVPMatrix")
	t.camera = graphics.NewCamera(1, 1)

	t.positions = upload(Positions)
	t.texCoords = upload(TexCoords)

	gl.ClearColor(0.5, 0.5, 0.5, 0.5)
	t.texture = 0
	t.start = t.clock()
	return nil
}

func upload(data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)
	return vbo
}

func (t *Textured) SurfaceChanged(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	t.camera.SetViewport(width, height)
}

func (t *Textured) DrawFrame() {
	defer profiling.Track("textured.DrawFrame")()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	t.shader.Use()

	if t.texture == 0 {
		t.loadTexture()
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.texture)
	t.shader.SetInt("s_texture", 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, t.positions)
	gl.VertexAttribPointer(0, positionSize, gl.FLOAT, false, positionSize*floatSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.texCoords)
	gl.VertexAttribPointer(1, texCoordSize, gl.FLOAT, false, texCoordSize*floatSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)

	angle := graphics.RotationAngle(t.clock().Sub(t.start), Period)
	model := mgl32.HomogRotate3DZ(mgl32.DegToRad(angle))
	mvp := t.camera.MVP(model)
	gl.UniformMatrix4fv(t.mvp, 1, false, &mvp[0])

	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(Positions)/positionSize))
}

// loadTexture falls back to the checkerboard when the configured image
// cannot be loaded.
func (t *Textured) loadTexture() {
	defer profiling.Track("textured.loadTexture")()

	if t.path != "" {
		tex, err := t.cache.Get(t.path)
		if err == nil {
			t.texture = tex
			return
		}
		t.log.Warn("texture load failed, using checkerboard", "path", t.path, "err", err)
	}

	img := graphics.Checkerboard(checkerSize, checkerCells,
		color.RGBA{R: 40, G: 40, B: 40, A: 255},
		color.RGBA{R: 230, G: 230, B: 230, A: 255})
	tex, err := graphics.UploadTexture(img)
	if err != nil {
		t.log.Error("checkerboard upload failed", "err", err)
		return
	}
	t.texture = tex
	t.ownTex = true
}

// Dispose cleans up GL resources. The context must be current.
func (t *Textured) Dispose() {
	if t.ownTex && t.texture != 0 {
		gl.DeleteTextures(1, &t.texture)
	}
	t.texture = 0
	t.ownTex = false
	t.cache.Release()

	if t.positions != 0 {
		gl.DeleteBuffers(1, &t.positions)
		t.positions = 0
	}
	if t.texCoords != 0 {
		gl.DeleteBuffers(1, &t.texCoords)
		t.texCoords = 0
	}
	t.shader.Delete()
	t.shader = nil
}
