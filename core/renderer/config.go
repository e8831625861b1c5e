// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package renderer

import "github.com/devblok/wlvk/format"

// Configuration describes the renderer configuration
type Configuration struct {
	// ShmFormats restricts the advertised wl_shm formats. Formats the host
	// cannot map and repeated entries are dropped. Empty means every
	// supported format.
	ShmFormats []format.ShmFormat
}
