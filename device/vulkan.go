// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"fmt"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/wlvk/core"
)

// Enumerate returns a description of every physical device of instance.
func Enumerate(instance *core.Instance) ([]PhysicalDeviceInfo, error) {
	l := instance.Loader()

	var pdi []PhysicalDeviceInfo
	err := instance.Do(func(handle vk.Instance) error {
		devices, err := enumerateDevices(l, handle)
		if err != nil {
			return err
		}
		pdi = make([]PhysicalDeviceInfo, len(devices))
		for i, dev := range devices {
			if pdi[i], err = describe(l, dev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pdi, nil
}

func enumerateDevices(l core.Loader, instance vk.Instance) ([]vk.PhysicalDevice, error) {
	for {
		var deviceCount uint32
		if res := l.EnumeratePhysicalDevices(instance, &deviceCount, nil); res != vk.Success {
			return nil, &core.ResultError{Op: "vk.EnumeratePhysicalDevices", Result: res}
		}
		availableDevices := make([]vk.PhysicalDevice, deviceCount)
		res := l.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)
		if res == vk.Incomplete {
			continue
		}
		if res != vk.Success {
			return nil, &core.ResultError{Op: "vk.EnumeratePhysicalDevices", Result: res}
		}
		return availableDevices[:deviceCount], nil
	}
}

func describe(l core.Loader, dev vk.PhysicalDevice) (PhysicalDeviceInfo, error) {
	var info PhysicalDeviceInfo

	// Get extension info
	exts, err := deviceExtensions(l, dev)
	if err != nil {
		return info, err
	}
	info.Extensions = exts

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	l.GetPhysicalDeviceMemoryProperties(dev, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
	}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	l.GetPhysicalDeviceProperties(dev, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	info.ID = int(physicalDeviceProperties.DeviceID)
	info.VendorID = int(physicalDeviceProperties.VendorID)
	info.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	info.DriverVersion = int(physicalDeviceProperties.DriverVersion)
	info.APIVersion = versionString(physicalDeviceProperties.ApiVersion)
	return info, nil
}

func deviceExtensions(l core.Loader, dev vk.PhysicalDevice) ([]string, error) {
	for {
		var numDeviceExtensions uint32
		if res := l.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, nil); res != vk.Success {
			return nil, &core.ResultError{Op: "vk.EnumerateDeviceExtensionProperties", Result: res}
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		res := l.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, deviceExt)
		if res == vk.Incomplete {
			continue
		}
		if res != vk.Success {
			return nil, &core.ResultError{Op: "vk.EnumerateDeviceExtensionProperties", Result: res}
		}
		names := make([]string, 0, numDeviceExtensions)
		for _, ext := range deviceExt[:numDeviceExtensions] {
			ext.Deref()
			names = append(names, vk.ToString(ext.ExtensionName[:]))
		}
		return names, nil
	}
}

// versionString formats a version made by VK_MAKE_VERSION.
func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22&0x7f, v>>12&0x3ff, v&0xfff)
}
