// Package vkinfo reports the Vulkan physical devices visible through GLFW's
// loader. It is diagnostic only; nothing renders through Vulkan.
package vkinfo

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// ErrUnsupported means no Vulkan loader or ICD was found.
var ErrUnsupported = errors.New("vulkan not supported")

// Version is a packed Vulkan version number.
type Version uint32

func (v Version) Major() int { return int(uint32(v) >> 22) }
func (v Version) Minor() int { return int((uint32(v) >> 12) & 0x3ff) }
func (v Version) Patch() int { return int(uint32(v) & 0xfff) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// Device describes one physical device.
type Device struct {
	Name          string
	Type          string
	APIVersion    Version
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
}

func (d Device) String() string {
	return fmt.Sprintf("%s (%s, Vulkan %s, vendor 0x%04x)", d.Name, d.Type, d.APIVersion, d.VendorID)
}

// NewError converts a Vulkan result into an error, or nil on success.
func NewError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	return fmt.Errorf("vulkan error: %w (%d)", vk.Error(ret), ret)
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	}
	return "other"
}

// Devices lists the physical devices. GLFW must be initialized.
func Devices() ([]Device, error) {
	if !glfw.VulkanSupported() {
		return nil, ErrUnsupported
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan init: %w", err)
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:            vk.StructureTypeApplicationInfo,
			ApiVersion:       vk.MakeVersion(1, 0, 0),
			PApplicationName: "glinfo\x00",
			PEngineName:      "glhost\x00",
		},
	}, nil, &instance)
	if err := NewError(ret); err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	defer vk.DestroyInstance(instance, nil)

	if err := vk.InitInstance(instance); err != nil {
		return nil, fmt.Errorf("init instance: %w", err)
	}

	var count uint32
	if err := NewError(vk.EnumeratePhysicalDevices(instance, &count, nil)); err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	handles := make([]vk.PhysicalDevice, count)
	if err := NewError(vk.EnumeratePhysicalDevices(instance, &count, handles)); err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}

	devices := make([]Device, 0, count)
	for _, h := range handles[:count] {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(h, &props)
		props.Deref()
		devices = append(devices, Device{
			Name:          vk.ToString(props.DeviceName[:]),
			Type:          deviceTypeName(props.DeviceType),
			APIVersion:    Version(props.ApiVersion),
			DriverVersion: props.DriverVersion,
			VendorID:      props.VendorID,
			DeviceID:      props.DeviceID,
		})
	}
	return devices, nil
}
