// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package vktest provides a scriptable stand-in for the Vulkan loader,
// so code built on core.Loader can be tested without a driver.
package vktest

import (
	"sync"
	"unsafe"

	vk "github.com/devblok/vulkan"
)

// PhysicalDevice describes a device the fake loader reports.
type PhysicalDevice struct {
	Name          string
	ID            uint32
	VendorID      uint32
	DriverVersion uint32
	APIVersion    uint32
	Extensions    []string
	HeapSizes     []uint64
}

// Loader implements core.Loader from plain Go values. Set the exported
// fields before use; the recorded calls are read through methods.
type Loader struct {
	Extensions      []string
	Layers          []string
	LayerExtensions map[string][]string
	Devices         []PhysicalDevice

	// Non-zero results make the matching call fail with them.
	ExtensionsResult vk.Result
	LayersResult     vk.Result
	CreateResult     vk.Result
	DevicesResult    vk.Result

	// IncompleteExtensions makes that many extension queries report
	// VK_INCOMPLETE as if the list changed between the two calls.
	IncompleteExtensions int

	// IncompleteLayers does the same for layer queries.
	IncompleteLayers int

	mu           sync.Mutex
	handles      []*uint64
	created      []vk.Instance
	destroyed    map[vk.Instance]int
	createInfos  []CreateInfo
	appInfos     []*vk.ApplicationInfo
	deviceHandle map[vk.PhysicalDevice]int
}

// CreateInfo is what a CreateInstance call asked for.
type CreateInfo struct {
	Extensions []string
	Layers     []string
}

// New returns a loader offering the given extensions and layers.
func New(extensions, layers []string) *Loader {
	return &Loader{
		Extensions: extensions,
		Layers:     layers,
	}
}

// handle returns a distinct address. The loader keeps the memory so the
// address is not reused while the fake is alive.
func (l *Loader) handle() unsafe.Pointer {
	h := new(uint64)
	l.handles = append(l.handles, h)
	return unsafe.Pointer(h)
}

// EnumerateInstanceExtensionProperties implements core.Loader.
func (l *Loader) EnumerateInstanceExtensionProperties(layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ExtensionsResult != vk.Success {
		return l.ExtensionsResult
	}
	names := l.Extensions
	if layerName != "" {
		var ok bool
		if names, ok = l.LayerExtensions[trimNul(layerName)]; !ok {
			return vk.ErrorLayerNotPresent
		}
	}
	if props == nil {
		*count = uint32(len(names))
		return vk.Success
	}
	n := fill(len(names), count)
	for i := 0; i < n; i++ {
		copy(props[i].ExtensionName[:], names[i])
	}
	if l.IncompleteExtensions > 0 {
		l.IncompleteExtensions--
		return vk.Incomplete
	}
	if n < len(names) {
		return vk.Incomplete
	}
	return vk.Success
}

// EnumerateInstanceLayerProperties implements core.Loader.
func (l *Loader) EnumerateInstanceLayerProperties(count *uint32, props []vk.LayerProperties) vk.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.LayersResult != vk.Success {
		return l.LayersResult
	}
	if props == nil {
		*count = uint32(len(l.Layers))
		return vk.Success
	}
	n := fill(len(l.Layers), count)
	for i := 0; i < n; i++ {
		copy(props[i].LayerName[:], l.Layers[i])
	}
	if l.IncompleteLayers > 0 {
		l.IncompleteLayers--
		return vk.Incomplete
	}
	if n < len(l.Layers) {
		return vk.Incomplete
	}
	return vk.Success
}

// CreateInstance implements core.Loader.
func (l *Loader) CreateInstance(info *vk.InstanceCreateInfo, alloc *vk.AllocationCallbacks, instance *vk.Instance) vk.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	ci := CreateInfo{}
	for _, name := range info.PpEnabledExtensionNames[:info.EnabledExtensionCount] {
		ci.Extensions = append(ci.Extensions, trimNul(name))
	}
	for _, name := range info.PpEnabledLayerNames[:info.EnabledLayerCount] {
		ci.Layers = append(ci.Layers, trimNul(name))
	}
	l.createInfos = append(l.createInfos, ci)
	l.appInfos = append(l.appInfos, info.PApplicationInfo)
	if l.CreateResult != vk.Success {
		return l.CreateResult
	}
	*instance = vk.Instance(l.handle())
	l.created = append(l.created, *instance)
	return vk.Success
}

// DestroyInstance implements core.Loader.
func (l *Loader) DestroyInstance(instance vk.Instance, alloc *vk.AllocationCallbacks) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.destroyed == nil {
		l.destroyed = make(map[vk.Instance]int)
	}
	l.destroyed[instance]++
}

// EnumeratePhysicalDevices implements core.Loader.
func (l *Loader) EnumeratePhysicalDevices(instance vk.Instance, count *uint32, devices []vk.PhysicalDevice) vk.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.DevicesResult != vk.Success {
		return l.DevicesResult
	}
	if l.deviceHandle == nil {
		l.deviceHandle = make(map[vk.PhysicalDevice]int)
		for i := range l.Devices {
			l.deviceHandle[vk.PhysicalDevice(l.handle())] = i
		}
	}
	if devices == nil {
		*count = uint32(len(l.Devices))
		return vk.Success
	}
	n := fill(len(l.Devices), count)
	for h, i := range l.deviceHandle {
		if i < n {
			devices[i] = h
		}
	}
	if n < len(l.Devices) {
		return vk.Incomplete
	}
	return vk.Success
}

func (l *Loader) device(h vk.PhysicalDevice) PhysicalDevice {
	i, ok := l.deviceHandle[h]
	if !ok {
		panic("vktest: unknown physical device handle")
	}
	return l.Devices[i]
}

// GetPhysicalDeviceProperties implements core.Loader.
func (l *Loader) GetPhysicalDeviceProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceProperties) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.device(device)
	copy(props.DeviceName[:], d.Name)
	props.DeviceID = d.ID
	props.VendorID = d.VendorID
	props.DriverVersion = d.DriverVersion
	props.ApiVersion = d.APIVersion
}

// GetPhysicalDeviceMemoryProperties implements core.Loader.
func (l *Loader) GetPhysicalDeviceMemoryProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceMemoryProperties) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.device(device)
	props.MemoryHeapCount = uint32(len(d.HeapSizes))
	for i, size := range d.HeapSizes {
		props.MemoryHeaps[i].Size = vk.DeviceSize(size)
	}
}

// EnumerateDeviceExtensionProperties implements core.Loader.
func (l *Loader) EnumerateDeviceExtensionProperties(device vk.PhysicalDevice, layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.device(device)
	if props == nil {
		*count = uint32(len(d.Extensions))
		return vk.Success
	}
	n := fill(len(d.Extensions), count)
	for i := 0; i < n; i++ {
		copy(props[i].ExtensionName[:], d.Extensions[i])
	}
	if n < len(d.Extensions) {
		return vk.Incomplete
	}
	return vk.Success
}

// CreateCalls returns every CreateInstance request, failed ones included.
func (l *Loader) CreateCalls() []CreateInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CreateInfo(nil), l.createInfos...)
}

// ApplicationInfos returns the application info of every CreateInstance
// request, in call order.
func (l *Loader) ApplicationInfos() []*vk.ApplicationInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*vk.ApplicationInfo(nil), l.appInfos...)
}

// Created returns the handles of the instances successfully created.
func (l *Loader) Created() []vk.Instance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]vk.Instance(nil), l.created...)
}

// Destroyed returns how often instance was destroyed.
func (l *Loader) Destroyed(instance vk.Instance) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.destroyed[instance]
}

// DestroyCalls returns the number of DestroyInstance calls.
func (l *Loader) DestroyCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, n := range l.destroyed {
		total += n
	}
	return total
}

// fill clamps the caller's capacity to total and stores the count written.
func fill(total int, count *uint32) int {
	n := int(*count)
	if n > total {
		n = total
	}
	*count = uint32(n)
	return n
}

func trimNul(s string) string {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s[:len(s)-1]
	}
	return s
}
