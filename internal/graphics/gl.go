package graphics

import (
	"fmt"
	"sync"

	"glhost/internal/logging"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

var (
	initOnce sync.Once
	initErr  error
)

// InitGL loads the OpenGL ES entry points. It needs a current context the
// first time it runs and is a no-op afterwards.
func InitGL() error {
	initOnce.Do(func() {
		if err := gl.Init(); err != nil {
			initErr = fmt.Errorf("could not load OpenGL ES functions: %w", err)
			return
		}
		logging.Logger().Info("OpenGL ES loaded", "version", Version())
	})
	return initErr
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}
