// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"runtime"
	"sync/atomic"

	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"
)

// Instance is one owner of a Vulkan instance. Owners are created by
// InstanceBuilder.Build and Clone, and each must be released with Release.
// The VkInstance is destroyed when the last owner is released.
//
// Owners may be used from several goroutines. Vulkan requires that
// destroying an instance does not overlap any other use of it, which holds
// as long as nothing keeps using the handle after releasing its owner.
type Instance struct {
	inner    *instanceInner
	released atomic.Bool
}

type instanceInner struct {
	refs atomic.Int32

	loader     Loader
	logger     log.FieldLogger
	instance   vk.Instance
	extensions []string
	layers     []string
}

func (i *instanceInner) release() {
	if refs := i.refs.Add(-1); refs > 0 {
		return
	} else if refs < 0 {
		panic("vulkan instance released more often than it was owned")
	}
	i.loader.DestroyInstance(i.instance, nil)
	i.logger.Debug("vulkan instance destroyed")
}

func (v *Instance) live() *instanceInner {
	if v.released.Load() {
		panic("use of released vulkan instance")
	}
	return v.inner
}

// Clone returns a new owner of the same instance.
func (v *Instance) Clone() *Instance {
	inner := v.live()
	inner.refs.Add(1)
	owner := &Instance{inner: inner}
	runtime.SetFinalizer(owner, (*Instance).Release)
	return owner
}

// Release gives up this owner. Releasing an owner more than once has no
// further effect. Owners dropped without Release are released when the
// garbage collector finalizes them, which may be arbitrarily late.
func (v *Instance) Release() {
	if v == nil || !v.released.CompareAndSwap(false, true) {
		return
	}
	runtime.SetFinalizer(v, nil)
	v.inner.release()
}

// Do calls fn with the VkInstance while keeping this owner alive.
// fn must not destroy the handle or keep it past its return.
func (v *Instance) Do(fn func(vk.Instance) error) error {
	err := fn(v.live().instance)
	runtime.KeepAlive(v)
	return err
}

// Handle returns the VkInstance for work this package does not wrap.
//
// The caller must not destroy the handle, and must stop using it, and
// every object created from it, before the last owner is released. Prefer
// Do, which bounds the use to a call.
func (v *Instance) Handle() vk.Instance {
	return v.live().instance
}

// Loader returns the loader the instance was created through.
func (v *Instance) Loader() Loader {
	return v.live().loader
}

// Extensions returns the extensions the instance was created with.
func (v *Instance) Extensions() []string {
	return append([]string(nil), v.live().extensions...)
}

// Layers returns the layers the instance was created with.
func (v *Instance) Layers() []string {
	return append([]string(nil), v.live().layers...)
}
