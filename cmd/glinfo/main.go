// Command glinfo reports the graphics capability of this machine: the
// OpenGL ES tier the host would see and the Vulkan physical devices.
package main

import (
	"errors"
	"fmt"
	"runtime"

	"glhost/internal/capability"
	"glhost/internal/platform/desktop"
	"glhost/internal/platform/vkinfo"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		closer.Fatalln(err)
	}
	closer.Bind(glfw.Terminate)
	defer closer.Close()

	tier := desktop.Probe{}.QueryTier()
	fmt.Printf("OpenGL ES tier: %s (0x%x)\n", tier, uint32(tier))
	if capability.MeetsMinimum(tier, capability.MinimumTier) {
		fmt.Printf("meets minimum %s: yes\n", capability.MinimumTier)
	} else {
		fmt.Printf("meets minimum %s: no\n", capability.MinimumTier)
	}

	devices, err := vkinfo.Devices()
	switch {
	case errors.Is(err, vkinfo.ErrUnsupported):
		fmt.Println("Vulkan: not supported")
		return
	case err != nil:
		fmt.Println("Vulkan:", err)
		return
	}
	fmt.Printf("Vulkan devices: %d\n", len(devices))
	for i, d := range devices {
		fmt.Printf("  [%d] %s\n", i, d)
	}
}
