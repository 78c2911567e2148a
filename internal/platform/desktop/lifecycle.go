package desktop

import "github.com/go-gl/glfw/v3.3/glfw"

// Lifecycle receives the host transitions derived from window events.
// *host.Host implements it.
type Lifecycle interface {
	OnResume()
	OnPause()
	OnResize(width, height int)
}

// BindLifecycle maps window events to lifecycle calls: iconify pauses and
// restore resumes, framebuffer size changes resize. When pauseOnBlur is set
// losing focus pauses too. Callbacks fire from glfw.PollEvents or
// glfw.WaitEvents on the main thread.
func BindLifecycle(win *glfw.Window, l Lifecycle, pauseOnBlur bool) {
	win.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		if iconified {
			l.OnPause()
		} else {
			l.OnResume()
		}
	})

	win.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !pauseOnBlur {
			return
		}
		if focused {
			l.OnResume()
		} else {
			l.OnPause()
		}
	})

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		// a zero size arrives while iconified on some platforms
		if width == 0 || height == 0 {
			return
		}
		l.OnResize(width, height)
	})
}
