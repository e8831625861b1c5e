// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package vktest_test

import (
	"runtime"
	"testing"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"

	"github.com/devblok/wlvk/internal/vktest"
)

func create(c *qt.C, l *vktest.Loader) vk.Instance {
	var instance vk.Instance
	info := vk.InstanceCreateInfo{SType: vk.StructureTypeInstanceCreateInfo}
	c.Assert(l.CreateInstance(&info, nil, &instance), qt.Equals, vk.Success)
	return instance
}

func TestDistinctHandles(t *testing.T) {
	c := qt.New(t)
	l := vktest.New(nil, nil)

	seen := make(map[vk.Instance]bool)
	for i := 0; i < 16; i++ {
		h := create(c, l)
		runtime.GC()
		c.Assert(seen[h], qt.Equals, false)
		seen[h] = true
	}

	a, b := l.Created()[0], l.Created()[1]
	l.DestroyInstance(a, nil)
	c.Assert(l.Destroyed(a), qt.Equals, 1)
	c.Assert(l.Destroyed(b), qt.Equals, 0)
	c.Assert(l.DestroyCalls(), qt.Equals, 1)
}

func TestIncompleteLayers(t *testing.T) {
	c := qt.New(t)
	l := vktest.New(nil, []string{"VK_LAYER_KHRONOS_validation"})
	l.IncompleteLayers = 1

	count := uint32(1)
	props := make([]vk.LayerProperties, 1)
	c.Assert(l.EnumerateInstanceLayerProperties(&count, props), qt.Equals, vk.Incomplete)
	c.Assert(l.EnumerateInstanceLayerProperties(&count, props), qt.Equals, vk.Success)
	c.Assert(l.IncompleteLayers, qt.Equals, 0)
}

func TestApplicationInfos(t *testing.T) {
	c := qt.New(t)
	l := vktest.New(nil, nil)

	app := &vk.ApplicationInfo{SType: vk.StructureTypeApplicationInfo, PApplicationName: "test\x00"}
	var instance vk.Instance
	info := vk.InstanceCreateInfo{SType: vk.StructureTypeInstanceCreateInfo, PApplicationInfo: app}
	c.Assert(l.CreateInstance(&info, nil, &instance), qt.Equals, vk.Success)
	infos := l.ApplicationInfos()
	c.Assert(infos, qt.HasLen, 1)
	c.Assert(infos[0], qt.Equals, app)
}
