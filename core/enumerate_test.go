// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"sort"
	"testing"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"

	"github.com/devblok/wlvk/core"
	"github.com/devblok/wlvk/internal/vktest"
)

func TestEnumerateExtensions(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()

	exts, err := core.EnumerateExtensions(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(exts, qt.DeepEquals, []string{"VK_KHR_surface", "VK_KHR_wayland_surface", "VK_EXT_debug_utils"})
}

func TestEnumerateLayers(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()

	layers, err := core.EnumerateLayers(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(layers, qt.DeepEquals, []string{"VK_LAYER_KHRONOS_validation"})
}

func TestEnumerateEmpty(t *testing.T) {
	c := qt.New(t)
	loader := vktest.New(nil, nil)

	exts, err := core.EnumerateExtensions(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(exts, qt.HasLen, 0)

	layers, err := core.EnumerateLayers(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(layers, qt.HasLen, 0)
}

func TestEnumerateIdempotent(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()

	first, err := core.EnumerateExtensions(loader)
	c.Assert(err, qt.IsNil)
	second, err := core.EnumerateExtensions(loader)
	c.Assert(err, qt.IsNil)

	sort.Strings(first)
	sort.Strings(second)
	c.Assert(first, qt.DeepEquals, second)
}

func TestEnumerateIncomplete(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	loader.IncompleteExtensions = 2

	exts, err := core.EnumerateExtensions(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(exts, qt.HasLen, 3)
	c.Assert(loader.IncompleteExtensions, qt.Equals, 0)
}

func TestEnumerateLayersIncomplete(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	loader.IncompleteLayers = 2

	layers, err := core.EnumerateLayers(loader)
	c.Assert(err, qt.IsNil)
	c.Assert(layers, qt.DeepEquals, []string{core.ValidationLayerName})
	c.Assert(loader.IncompleteLayers, qt.Equals, 0)
}

func TestEnumerateLayerExtensions(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	loader.LayerExtensions = map[string][]string{
		"VK_LAYER_KHRONOS_validation": {"VK_EXT_debug_report", "VK_EXT_validation_features"},
	}

	exts, err := core.EnumerateLayerExtensions(loader, "VK_LAYER_KHRONOS_validation")
	c.Assert(err, qt.IsNil)
	c.Assert(exts, qt.DeepEquals, []string{"VK_EXT_debug_report", "VK_EXT_validation_features"})

	_, err = core.EnumerateLayerExtensions(loader, "VK_LAYER_unknown")
	var enumErr *core.EnumerationError
	c.Assert(errors.As(err, &enumErr), qt.Equals, true)
	c.Assert(enumErr.Result, qt.Equals, vk.ErrorLayerNotPresent)
}

func TestEnumerateFailure(t *testing.T) {
	for _, test := range []struct {
		name   string
		result vk.Result
		oom    bool
	}{
		{"host memory", vk.ErrorOutOfHostMemory, true},
		{"device memory", vk.ErrorOutOfDeviceMemory, true},
		{"other", vk.ErrorInitializationFailed, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			loader := newLoader()
			loader.ExtensionsResult = test.result

			exts, err := core.EnumerateExtensions(loader)
			c.Assert(exts, qt.IsNil)
			c.Assert(errors.Is(err, core.ErrOutOfMemory), qt.Equals, test.oom)

			var enumErr *core.EnumerationError
			c.Assert(errors.As(err, &enumErr), qt.Equals, true)
			c.Assert(enumErr.Result, qt.Equals, test.result)
			c.Assert(enumErr.Property, qt.Equals, "extensions")
		})
	}
}
