// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core bootstraps a Vulkan instance.
//
// Vulkan is explicit: every extension and layer has to be requested when
// the instance is created. This package lists what the loader offers,
// collects what the caller wants, and refuses to create an instance when
// anything requested is missing, naming each missing extension and layer.
//
// Start by obtaining a Loader with Load, then request capabilities on an
// InstanceBuilder:
//
//	loader, err := core.Load()
//	if err != nil {
//		return err
//	}
//	instance, err := core.NewInstanceBuilder(loader).
//		WithExtension("VK_KHR_surface").
//		WithLayer(core.ValidationLayerName).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer instance.Release()
//
// Validation layers can also be enabled without code changes through the
// VK_INSTANCE_LAYERS environment variable, which the loader honours on
// its own.
package core

// Releasable is anything owning native resources that must be freed.
type Releasable interface {
	// Release frees what the implementing value owns.
	Release()
}

var _ Releasable = (*Instance)(nil)
