// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device lists the physical devices visible to a Vulkan instance.
package device

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	APIVersion    string
	Name          string
	Extensions    []string

	// Memory is the size of all memory heaps, in bytes.
	Memory uint64
}

// HasExtension reports whether the device offers the named extension.
func (pdi PhysicalDeviceInfo) HasExtension(name string) bool {
	for _, ext := range pdi.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}
