// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"sync"
	"unsafe"

	vk "github.com/devblok/vulkan"
)

// Loader is the set of global and instance level Vulkan entry points
// this package calls into. It is obtained once per process with Load or
// LoadFromProcAddr and passed explicitly to everything that needs it.
type Loader interface {
	EnumerateInstanceExtensionProperties(layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result
	EnumerateInstanceLayerProperties(count *uint32, props []vk.LayerProperties) vk.Result
	CreateInstance(info *vk.InstanceCreateInfo, alloc *vk.AllocationCallbacks, instance *vk.Instance) vk.Result
	DestroyInstance(instance vk.Instance, alloc *vk.AllocationCallbacks)

	EnumeratePhysicalDevices(instance vk.Instance, count *uint32, devices []vk.PhysicalDevice) vk.Result
	GetPhysicalDeviceProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceProperties)
	GetPhysicalDeviceMemoryProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceMemoryProperties)
	EnumerateDeviceExtensionProperties(device vk.PhysicalDevice, layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result
}

var (
	loadOnce   sync.Once
	loadErr    error
	loadResult Loader
)

// Load initializes the Vulkan entry point from the system loader library.
//
// Initialization happens once per process. Load and LoadFromProcAddr share
// that single initialization: whichever runs first decides where the entry
// point comes from, and every later call returns its result.
func Load() (Loader, error) {
	return load(func() error {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
		return nil
	})
}

// LoadFromProcAddr initializes the Vulkan entry point from a
// vkGetInstanceProcAddr pointer, as handed out by windowing libraries
// that load Vulkan themselves. See Load for the initialization rules.
func LoadFromProcAddr(procAddr unsafe.Pointer) (Loader, error) {
	if procAddr == nil {
		return nil, errors.New("core.LoadFromProcAddr(): nil vkGetInstanceProcAddr")
	}
	return load(func() error {
		vk.SetGetInstanceProcAddr(procAddr)
		return nil
	})
}

func load(setProcAddr func() error) (Loader, error) {
	loadOnce.Do(func() {
		if err := setProcAddr(); err != nil {
			loadErr = err
			return
		}
		if err := vk.Init(); err != nil {
			loadErr = errors.New("vk.Init(): " + err.Error())
			return
		}
		loadResult = vulkanLoader{}
	})
	return loadResult, loadErr
}

// vulkanLoader forwards to the cgo bindings.
type vulkanLoader struct{}

func (vulkanLoader) EnumerateInstanceExtensionProperties(layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result {
	return vk.EnumerateInstanceExtensionProperties(layerName, count, props)
}

func (vulkanLoader) EnumerateInstanceLayerProperties(count *uint32, props []vk.LayerProperties) vk.Result {
	return vk.EnumerateInstanceLayerProperties(count, props)
}

func (vulkanLoader) CreateInstance(info *vk.InstanceCreateInfo, alloc *vk.AllocationCallbacks, instance *vk.Instance) vk.Result {
	res := vk.CreateInstance(info, alloc, instance)
	if res != vk.Success {
		return res
	}
	// Instance level procs must be resolved before the handle is usable.
	if err := vk.InitInstance(*instance); err != nil {
		vk.DestroyInstance(*instance, alloc)
		*instance = nil
		return vk.ErrorInitializationFailed
	}
	return res
}

func (vulkanLoader) DestroyInstance(instance vk.Instance, alloc *vk.AllocationCallbacks) {
	vk.DestroyInstance(instance, alloc)
}

func (vulkanLoader) EnumeratePhysicalDevices(instance vk.Instance, count *uint32, devices []vk.PhysicalDevice) vk.Result {
	return vk.EnumeratePhysicalDevices(instance, count, devices)
}

func (vulkanLoader) GetPhysicalDeviceProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceProperties) {
	vk.GetPhysicalDeviceProperties(device, props)
}

func (vulkanLoader) GetPhysicalDeviceMemoryProperties(device vk.PhysicalDevice, props *vk.PhysicalDeviceMemoryProperties) {
	vk.GetPhysicalDeviceMemoryProperties(device, props)
}

func (vulkanLoader) EnumerateDeviceExtensionProperties(device vk.PhysicalDevice, layerName string, count *uint32, props []vk.ExtensionProperties) vk.Result {
	return vk.EnumerateDeviceExtensionProperties(device, layerName, count, props)
}
