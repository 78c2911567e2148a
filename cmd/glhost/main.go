package main

import (
	"log/slog"
	"runtime"

	"glhost/internal/capability"
	"glhost/internal/config"
	"glhost/internal/graphics/renderer"
	"glhost/internal/host"
	"glhost/internal/platform/desktop"
	"glhost/internal/platform/vkinfo"
	"glhost/internal/scene"
	"glhost/internal/surface"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	f := parseFlags()
	if err := loadConfig(f); err != nil {
		closer.Fatalln(err)
	}
	log, err := setupLogger()
	if err != nil {
		closer.Fatalln(err)
	}
	required, forced, err := tiers()
	if err != nil {
		closer.Fatalln(err)
	}

	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}

	// A signal asks the main loop to stop and waits for it to tear down, so
	// GLFW is only touched from this thread.
	quit := make(chan struct{})
	done := make(chan struct{})
	closer.Bind(func() {
		select {
		case <-done:
			return
		default:
		}
		close(quit)
		glfw.PostEmptyEvent()
		<-done
	})
	defer closer.Close()

	if f.vulkanInfo {
		logVulkanDevices(log)
	}

	width, height := config.GetWindowSize()
	var (
		h   *host.Host
		win *glfw.Window
	)
	factory := &desktop.Factory{
		Width:  width,
		Height: height,
		Title:  config.GetTitle(),
		OnCreate: func(w *glfw.Window) {
			win = w
			desktop.BindLifecycle(w, h, f.pauseOnBlur)
		},
	}

	var surf *surface.Surface
	h = host.New(
		capability.Override(desktop.Probe{}, forced),
		host.Factories{
			NewRenderer: func() renderer.Renderer {
				g, err := scene.New(config.GetScene(), scene.Options{
					Texture:       config.GetTexture(),
					StatsInterval: f.stats,
					Logger:        log,
				})
				if err != nil {
					log.Error("scene", "err", err)
					return nil
				}
				return g
			},
			NewSurface: func() host.Surface {
				surf = surface.New(factory, surfaceOptions(log)...)
				return surf
			},
		},
		host.WithRequiredTier(required),
		host.WithLogger(log),
	)

	if err := h.Activate(); err != nil {
		h.Destroy()
		glfw.Terminate()
		close(done)
		closer.Fatalln(err)
	}
	if h.State() == host.FailedCapability {
		log.Warn("device does not support the required OpenGL ES version",
			"tier", h.Tier(), "required", required)
		h.Destroy()
		glfw.Terminate()
		close(done)
		return
	}

	win.SetRefreshCallback(func(*glfw.Window) { surf.RequestRender() })
	h.OnResume()
	log.Info("rendering", "scene", config.GetScene(), "tier", h.Tier())

	runLoop(win, surf, quit)

	h.Destroy()
	if err := surf.Err(); err != nil {
		log.Error("render thread failed", "err", err)
	}
	glfw.Terminate()
	close(done)
}

// runLoop pumps window events until the window is closed, a quit is
// requested or the render thread stops with an error.
func runLoop(win *glfw.Window, surf *surface.Surface, quit <-chan struct{}) {
	for !win.ShouldClose() {
		select {
		case <-quit:
			return
		default:
		}
		if surf.Err() != nil {
			return
		}
		glfw.WaitEventsTimeout(0.25)
	}
}

func logVulkanDevices(log *slog.Logger) {
	devices, err := vkinfo.Devices()
	if err != nil {
		log.Info("vulkan unavailable", "err", err)
		return
	}
	for _, d := range devices {
		log.Info("vulkan device", "device", d.String())
	}
}
