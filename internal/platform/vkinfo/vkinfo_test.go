package vkinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestVersion(t *testing.T) {
	v := Version(vk.MakeVersion(1, 3, 204))
	assert.Equal(t, 1, v.Major())
	assert.Equal(t, 3, v.Minor())
	assert.Equal(t, 204, v.Patch())
	assert.Equal(t, "1.3.204", v.String())
}

func TestDeviceString(t *testing.T) {
	d := Device{Name: "llvmpipe", Type: "cpu", APIVersion: Version(vk.MakeVersion(1, 2, 0)), VendorID: 0x10005}
	assert.Equal(t, "llvmpipe (cpu, Vulkan 1.2.0, vendor 0x10005)", d.String())
}

func TestDeviceTypeName(t *testing.T) {
	assert.Equal(t, "discrete", deviceTypeName(vk.PhysicalDeviceTypeDiscreteGpu))
	assert.Equal(t, "integrated", deviceTypeName(vk.PhysicalDeviceTypeIntegratedGpu))
	assert.Equal(t, "other", deviceTypeName(vk.PhysicalDeviceTypeOther))
}

func TestNewError(t *testing.T) {
	assert.NoError(t, NewError(vk.Success))
	assert.Error(t, NewError(vk.ErrorInitializationFailed))
}
