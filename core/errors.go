// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"strings"

	vk "github.com/devblok/vulkan"
)

// package errors
var (
	// ErrOutOfMemory matches, through errors.Is, every failure caused by the
	// loader running out of host or device memory.
	ErrOutOfMemory = errors.New("vulkan runtime out of memory")

	// ErrBuilderConsumed is returned by InstanceBuilder.Build when the
	// builder already built, or tried to build, an instance.
	ErrBuilderConsumed = errors.New("instance builder already consumed")
)

func isOutOfMemory(res vk.Result) bool {
	return res == vk.ErrorOutOfHostMemory || res == vk.ErrorOutOfDeviceMemory
}

func resultString(res vk.Result) string {
	if err := vk.Error(res); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("VkResult(%d)", int32(res))
}

// EnumerationError reports a failed query of the loader's global
// property lists. Result is the code the loader returned.
type EnumerationError struct {
	Property string
	Result   vk.Result
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerating instance %s: %s", e.Property, resultString(e.Result))
}

// Is reports out of memory results as ErrOutOfMemory.
func (e *EnumerationError) Is(target error) bool {
	return target == ErrOutOfMemory && isOutOfMemory(e.Result)
}

// ResultError is a native failure other than a missing capability.
// Op names the Vulkan call that failed.
type ResultError struct {
	Op     string
	Result vk.Result
}

func (e *ResultError) Error() string {
	return e.Op + "(): " + resultString(e.Result)
}

// Is reports out of memory results as ErrOutOfMemory.
func (e *ResultError) Is(target error) bool {
	return target == ErrOutOfMemory && isOutOfMemory(e.Result)
}

// MissingError lists the requested extensions and layers the loader
// does not offer. At least one of the lists is never empty.
type MissingError struct {
	extensions []string
	layers     []string
}

// newMissingError returns nil when nothing is missing.
func newMissingError(extensions, layers []string) *MissingError {
	if len(extensions) == 0 && len(layers) == 0 {
		return nil
	}
	return &MissingError{
		extensions: extensions,
		layers:     layers,
	}
}

// MissingExtensions returns the requested extensions that were not
// available, in request order, or nil if none were missing.
func (e *MissingError) MissingExtensions() []string {
	if len(e.extensions) == 0 {
		return nil
	}
	return append([]string(nil), e.extensions...)
}

// MissingLayers returns the requested layers that were not available,
// in request order, or nil if none were missing.
func (e *MissingError) MissingLayers() []string {
	if len(e.layers) == 0 {
		return nil
	}
	return append([]string(nil), e.layers...)
}

func (e *MissingError) Error() string {
	var parts []string
	if len(e.extensions) > 0 {
		parts = append(parts, "instance extensions not present: ("+strings.Join(e.extensions, ", ")+")")
	}
	if len(e.layers) > 0 {
		parts = append(parts, "instance layers not present: ("+strings.Join(e.layers, ", ")+")")
	}
	return strings.Join(parts, "; ")
}
