package desktop

import (
	"glhost/internal/capability"
	"glhost/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// probeVersions are tried in order; drivers hand back the newest context
// compatible with the request, so asking for 2.0 usually yields 3.x.
var probeVersions = [][2]int{{2, 0}, {1, 0}}

// Probe reports the OpenGL ES tier of the default display by creating an
// invisible window and reading back its context version. GLFW must already
// be initialized, and QueryTier must run on the main thread.
type Probe struct{}

func (Probe) QueryTier() (tier capability.Tier) {
	defer func() {
		// GLFW reports some failures by panicking
		if v := recover(); v != nil {
			logging.Logger().Warn("capability query failed", "err", v)
			tier = capability.TierNone
		}
	}()

	for _, v := range probeVersions {
		if t := queryES(v[0], v[1]); t != capability.TierNone {
			return t
		}
	}
	return capability.TierNone
}

func queryES(major, minor int) capability.Tier {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)

	win, err := glfw.CreateWindow(1, 1, "probe", nil, nil)
	if err != nil {
		logging.Logger().Debug("no OpenGL ES context", "major", major, "minor", minor, "err", err)
		return capability.TierNone
	}
	defer win.Destroy()

	return capability.NewTier(
		win.GetAttrib(glfw.ContextVersionMajor),
		win.GetAttrib(glfw.ContextVersionMinor),
	)
}
