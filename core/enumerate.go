// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"unicode/utf8"

	vk "github.com/devblok/vulkan"
)

// EnumerateExtensions returns the names of every instance extension the
// loader and its implicit layers offer.
func EnumerateExtensions(l Loader) ([]string, error) {
	return EnumerateLayerExtensions(l, "")
}

// EnumerateLayerExtensions returns the names of the instance extensions
// provided by the named layer. An empty layer name queries the loader
// and implicit layers, like EnumerateExtensions.
func EnumerateLayerExtensions(l Loader, layer string) ([]string, error) {
	var props []vk.ExtensionProperties
	for {
		var count uint32
		if res := l.EnumerateInstanceExtensionProperties(safeString(layer), &count, nil); res != vk.Success {
			return nil, &EnumerationError{Property: "extensions", Result: res}
		}
		props = make([]vk.ExtensionProperties, count)
		res := l.EnumerateInstanceExtensionProperties(safeString(layer), &count, props)
		if res == vk.Incomplete {
			// The list grew between the two calls.
			continue
		}
		if res != vk.Success {
			return nil, &EnumerationError{Property: "extensions", Result: res}
		}
		props = props[:count]
		break
	}

	names := make([]string, 0, len(props))
	for _, ext := range props {
		ext.Deref()
		names = append(names, propertyName(ext.ExtensionName[:]))
	}
	return names, nil
}

// EnumerateLayers returns the names of every instance layer the loader
// can enable.
func EnumerateLayers(l Loader) ([]string, error) {
	var props []vk.LayerProperties
	for {
		var count uint32
		if res := l.EnumerateInstanceLayerProperties(&count, nil); res != vk.Success {
			return nil, &EnumerationError{Property: "layers", Result: res}
		}
		props = make([]vk.LayerProperties, count)
		res := l.EnumerateInstanceLayerProperties(&count, props)
		if res == vk.Incomplete {
			continue
		}
		if res != vk.Success {
			return nil, &EnumerationError{Property: "layers", Result: res}
		}
		props = props[:count]
		break
	}

	names := make([]string, 0, len(props))
	for _, layer := range props {
		layer.Deref()
		names = append(names, propertyName(layer.LayerName[:]))
	}
	return names, nil
}

// propertyName decodes a fixed size, NUL terminated name field.
// Vulkan guarantees these are UTF-8, anything else is a broken loader.
func propertyName(field []byte) string {
	name := vk.ToString(field)
	if !utf8.ValidString(name) {
		panic("vulkan property name is not valid UTF-8: " + name)
	}
	return name
}
