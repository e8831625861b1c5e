// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"

	"github.com/devblok/wlvk/core"
	"github.com/devblok/wlvk/internal/vktest"
)

func buildInstance(c *qt.C, loader *vktest.Loader) *core.Instance {
	instance, err := core.NewInstanceBuilder(loader).Build()
	c.Assert(err, qt.IsNil)
	return instance
}

func TestCloneReleaseOrder(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	instance := buildInstance(c, loader)
	handle := instance.Handle()

	owners := []*core.Instance{instance, instance.Clone(), instance.Clone(), instance.Clone()}
	rand.Shuffle(len(owners), func(i, j int) {
		owners[i], owners[j] = owners[j], owners[i]
	})
	for i, owner := range owners {
		c.Assert(loader.Destroyed(handle), qt.Equals, 0, qt.Commentf("destroyed before release %d", i+1))
		owner.Release()
	}
	c.Assert(loader.Destroyed(handle), qt.Equals, 1)
	c.Assert(loader.DestroyCalls(), qt.Equals, 1)
}

func TestCloneSharesHandle(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	instance := buildInstance(c, loader)
	clone := instance.Clone()

	c.Assert(clone.Handle(), qt.Equals, instance.Handle())
	c.Assert(clone.Loader(), qt.Equals, core.Loader(loader))

	instance.Release()
	c.Assert(clone.Handle(), qt.Not(qt.IsNil))
	clone.Release()
	c.Assert(loader.DestroyCalls(), qt.Equals, 1)
}

func TestReleaseTwice(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	instance := buildInstance(c, loader)
	clone := instance.Clone()

	instance.Release()
	instance.Release()
	c.Assert(loader.DestroyCalls(), qt.Equals, 0)

	clone.Release()
	c.Assert(loader.DestroyCalls(), qt.Equals, 1)
}

func TestUseAfterRelease(t *testing.T) {
	c := qt.New(t)
	instance := buildInstance(c, newLoader())
	instance.Release()

	c.Assert(func() { instance.Handle() }, qt.PanicMatches, "use of released vulkan instance")
	c.Assert(func() { instance.Clone() }, qt.PanicMatches, "use of released vulkan instance")
}

func TestConcurrentRelease(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	instance := buildInstance(c, loader)
	handle := instance.Handle()

	const owners = 64
	clones := make([]*core.Instance, owners)
	for i := range clones {
		clones[i] = instance.Clone()
	}
	instance.Release()

	var wg sync.WaitGroup
	for _, clone := range clones {
		wg.Add(1)
		go func(clone *core.Instance) {
			defer wg.Done()
			nested := clone.Clone()
			clone.Release()
			nested.Release()
		}(clone)
	}
	wg.Wait()

	c.Assert(loader.Destroyed(handle), qt.Equals, 1)
}

func TestDo(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	instance := buildInstance(c, loader)
	defer instance.Release()

	var seen vk.Instance
	err := instance.Do(func(handle vk.Instance) error {
		seen = handle
		return nil
	})
	c.Assert(err, qt.IsNil)
	c.Assert(seen, qt.Equals, instance.Handle())

	errDo := errors.New("do failed")
	c.Assert(instance.Do(func(vk.Instance) error { return errDo }), qt.Equals, errDo)
}

func TestIndependentInstances(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()
	first := buildInstance(c, loader)
	second := buildInstance(c, loader)

	c.Assert(first.Handle() == second.Handle(), qt.Equals, false)
	first.Release()
	c.Assert(loader.Destroyed(second.Handle()), qt.Equals, 0)
	second.Release()
	c.Assert(loader.DestroyCalls(), qt.Equals, 2)
}

func TestFinalizerReleasesDroppedOwners(t *testing.T) {
	c := qt.New(t)
	loader := newLoader()

	func() {
		instance := buildInstance(c, loader)
		instance.Clone()
	}()

	deadline := time.Now().Add(5 * time.Second)
	for loader.DestroyCalls() == 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	c.Assert(loader.DestroyCalls(), qt.Equals, 1)

	// Further collections find nothing left to release.
	runtime.GC()
	runtime.GC()
	c.Assert(loader.DestroyCalls(), qt.Equals, 1)
	c.Assert(loader.Destroyed(loader.Created()[0]), qt.Equals, 1)
}
