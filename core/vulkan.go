// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"runtime"

	vk "github.com/devblok/vulkan"
	log "github.com/sirupsen/logrus"
)

// ValidationLayerName is the Khronos validation layer. It is not present
// on every system and slows everything down, so only request it while
// developing.
const ValidationLayerName = "VK_LAYER_KHRONOS_validation"

// DebugUtilsExtensionName is the instance extension validation messages
// are routed through.
const DebugUtilsExtensionName = "VK_EXT_debug_utils"

// DefaultApplicationInfo describes this library to the Vulkan runtime.
var DefaultApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "wlvk\x00",
	PEngineName:        "wlvk\x00",
}

// NewInstanceBuilder returns an empty builder for an Instance created
// through l.
func NewInstanceBuilder(l Loader) *InstanceBuilder {
	return &InstanceBuilder{
		loader:  l,
		appInfo: DefaultApplicationInfo,
		logger:  log.StandardLogger(),
	}
}

// InstanceBuilder accumulates the extensions and layers an Instance is
// created with. It builds at most one Instance and must not be shared
// between goroutines.
type InstanceBuilder struct {
	loader  Loader
	appInfo *vk.ApplicationInfo
	logger  log.FieldLogger

	extensions []string
	layers     []string
	consumed   bool
}

// WithExtension requests an instance extension. Building fails unless the
// extension is listed by EnumerateExtensions.
func (b *InstanceBuilder) WithExtension(name string) *InstanceBuilder {
	b.extensions = append(b.extensions, name)
	return b
}

// WithExtensions requests several instance extensions at once.
func (b *InstanceBuilder) WithExtensions(names ...string) *InstanceBuilder {
	b.extensions = append(b.extensions, names...)
	return b
}

// WithLayer requests an instance layer. Building fails unless the layer
// is listed by EnumerateLayers.
func (b *InstanceBuilder) WithLayer(name string) *InstanceBuilder {
	b.layers = append(b.layers, name)
	return b
}

// WithLayers requests several instance layers at once.
func (b *InstanceBuilder) WithLayers(names ...string) *InstanceBuilder {
	b.layers = append(b.layers, names...)
	return b
}

// WithApplicationInfo replaces DefaultApplicationInfo. Its strings must be
// NUL terminated.
func (b *InstanceBuilder) WithApplicationInfo(info *vk.ApplicationInfo) *InstanceBuilder {
	b.appInfo = info
	return b
}

// WithLogger sets where build and destruction events are logged at debug
// level.
func (b *InstanceBuilder) WithLogger(logger log.FieldLogger) *InstanceBuilder {
	b.logger = logger
	return b
}

// Build checks every requested extension and layer against what the
// loader offers and then creates the Instance.
//
// A request the loader cannot satisfy fails with a *MissingError naming
// every absent extension and layer, before anything native is created.
// Out of memory failures match ErrOutOfMemory, other native failures are
// a *ResultError or *EnumerationError carrying the VkResult.
//
// The builder is consumed by the call whatever the outcome.
func (b *InstanceBuilder) Build() (*Instance, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if err := b.validate(); err != nil {
		return nil, err
	}

	extensions := safeStrings(b.extensions)
	layers := safeStrings(b.layers)
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        b.appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	var instance vk.Instance
	if res := b.loader.CreateInstance(&instanceInfo, nil, &instance); res != vk.Success {
		return nil, &ResultError{Op: "vk.CreateInstance", Result: res}
	}

	b.logger.WithFields(log.Fields{
		"extensions": b.extensions,
		"layers":     b.layers,
	}).Debug("vulkan instance created")

	return newInstance(&instanceInner{
		loader:     b.loader,
		logger:     b.logger,
		instance:   instance,
		extensions: b.extensions,
		layers:     b.layers,
	}), nil
}

// validate returns a *MissingError for every requested name absent from
// the enumerated sets. Duplicated requests are reported as often as they
// were made.
func (b *InstanceBuilder) validate() error {
	availableLayers, err := EnumerateLayers(b.loader)
	if err != nil {
		return err
	}
	availableExtensions, err := EnumerateExtensions(b.loader)
	if err != nil {
		return err
	}

	missingExtensions := missingFrom(b.extensions, availableExtensions)
	missingLayers := missingFrom(b.layers, availableLayers)
	if missing := newMissingError(missingExtensions, missingLayers); missing != nil {
		b.logger.WithFields(log.Fields{
			"extensions": missingExtensions,
			"layers":     missingLayers,
		}).Debug("vulkan instance capabilities missing")
		return missing
	}
	return nil
}

func missingFrom(requested, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, name := range available {
		set[name] = struct{}{}
	}
	var missing []string
	for _, name := range requested {
		if _, ok := set[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func newInstance(inner *instanceInner) *Instance {
	inner.refs.Add(1)
	owner := &Instance{inner: inner}
	runtime.SetFinalizer(owner, (*Instance).Release)
	return owner
}
