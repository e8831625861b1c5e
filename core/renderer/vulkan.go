// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package renderer holds what a Vulkan renderer needs from the bootstrap
// layer: a share of the instance and the pixel formats it can import.
// Allocating images and recording copies is not done here.
package renderer

import (
	"errors"

	vk "github.com/devblok/vulkan"

	"github.com/devblok/wlvk/core"
	"github.com/devblok/wlvk/format"
)

// ErrNoFormats is returned when a configuration leaves no wl_shm format
// the host can map.
var ErrNoFormats = errors.New("renderer: no supported wl_shm format configured")

// NewVulkanRenderer creates a renderer sharing instance. The renderer
// holds its own owner of the instance until Release.
func NewVulkanRenderer(instance *core.Instance, cfg Configuration) (*Vulkan, error) {
	shmFormats := format.ShmFormats()
	if len(cfg.ShmFormats) > 0 {
		seen := make(map[format.ShmFormat]bool, len(cfg.ShmFormats))
		shmFormats = shmFormats[:0]
		for _, f := range cfg.ShmFormats {
			if _, ok := format.ShmToVulkan(f); !ok || seen[f] {
				continue
			}
			seen[f] = true
			shmFormats = append(shmFormats, f)
		}
	}
	if len(shmFormats) == 0 {
		return nil, ErrNoFormats
	}

	return &Vulkan{
		instance:   instance.Clone(),
		shmFormats: shmFormats,
	}, nil
}

// Vulkan is a Vulkan API renderer
type Vulkan struct {
	instance   *core.Instance
	shmFormats []format.ShmFormat
}

// Instance returns the renderer's owner of the instance. It stays valid
// until Release.
func (v *Vulkan) Instance() *core.Instance {
	return v.instance
}

// ShmFormats returns the wl_shm formats clients may use with this
// renderer.
func (v *Vulkan) ShmFormats() []format.ShmFormat {
	return append([]format.ShmFormat(nil), v.shmFormats...)
}

// ViewFormat returns the image format and view swizzle for buffers of
// the given wl_shm format. The boolean is false for formats the renderer
// does not advertise.
func (v *Vulkan) ViewFormat(f format.ShmFormat) (vk.Format, vk.ComponentMapping, bool) {
	for _, supported := range v.shmFormats {
		if supported != f {
			continue
		}
		m, ok := format.ShmToVulkan(f)
		if !ok {
			break
		}
		return m.Format, format.ComponentMapping(m.Alpha), true
	}
	return vk.FormatUndefined, vk.ComponentMapping{}, false
}

// Release releases the renderer's owner of the instance.
func (v *Vulkan) Release() {
	v.instance.Release()
}

var _ core.Releasable = (*Vulkan)(nil)
