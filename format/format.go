// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package format translates compositor pixel formats, DRM fourcc codes and
// wl_shm formats, into Vulkan formats.
//
// Only sRGB encoded Vulkan formats are mapped. Vulkan has no format with a
// padding byte where alpha would be, so the X variants share the format of
// their alpha counterpart and the mapping reports that alpha carries no
// data. Image views of such images must use ComponentMapping(false).
//
// The PACK32 Vulkan formats are described as a 32 bit word and so depend on
// host byte order. They are only mapped on little-endian hosts: on a
// big-endian host their memory layout is that of a format which already
// has a mapping, and mapping both would make the Vulkan to DRM direction
// ambiguous.
//
// Mapping a Vulkan format back to a DRM or wl_shm format is not supported.
package format

import (
	vk "github.com/devblok/vulkan"
	"golang.org/x/sys/cpu"
)

// Mapping is a row of the format table.
type Mapping struct {
	Fourcc Fourcc
	Format vk.Format

	// Alpha reports whether the alpha channel of Format holds data. When
	// false, views must force alpha to one.
	Alpha bool

	// LittleEndianOnly rows do not exist on big-endian hosts.
	LittleEndianOnly bool
}

var mappings = []Mapping{
	// Formats every wl_shm implementation has to support.
	{Fourcc: Argb8888, Format: vk.FormatB8g8r8a8Srgb, Alpha: true},
	{Fourcc: Xrgb8888, Format: vk.FormatB8g8r8a8Srgb, Alpha: false},

	{Fourcc: Abgr8888, Format: vk.FormatR8g8b8a8Srgb, Alpha: true},
	{Fourcc: Xbgr8888, Format: vk.FormatR8g8b8a8Srgb, Alpha: false},

	{Fourcc: Rgba8888, Format: vk.FormatA8b8g8r8SrgbPack32, Alpha: true, LittleEndianOnly: true},
	{Fourcc: Rgbx8888, Format: vk.FormatA8b8g8r8SrgbPack32, Alpha: false, LittleEndianOnly: true},

	{Fourcc: Bgr888, Format: vk.FormatR8g8b8Srgb, Alpha: false},
	{Fourcc: Rgb888, Format: vk.FormatB8g8r8Srgb, Alpha: false},
	{Fourcc: R8, Format: vk.FormatR8Srgb, Alpha: false},
	{Fourcc: Gr88, Format: vk.FormatR8g8Srgb, Alpha: false},

	// Half floats are IEEE 754 binary16 on both sides.
	{Fourcc: Abgr16161616f, Format: vk.FormatR16g16b16a16Sfloat, Alpha: true},
	{Fourcc: Xbgr16161616f, Format: vk.FormatR16g16b16a16Sfloat, Alpha: false},
}

// Table is the format table for one host byte order.
type Table struct {
	byFourcc map[Fourcc]Mapping
	shm      []ShmFormat
}

// NewTable builds the table for a host of the given byte order.
func NewTable(bigEndian bool) *Table {
	t := &Table{
		byFourcc: make(map[Fourcc]Mapping, len(mappings)),
	}
	for _, m := range mappings {
		if m.LittleEndianOnly && bigEndian {
			continue
		}
		if _, dup := t.byFourcc[m.Fourcc]; dup {
			panic("format: duplicate mapping for " + m.Fourcc.String())
		}
		t.byFourcc[m.Fourcc] = m
		t.shm = append(t.shm, ShmFromFourcc(m.Fourcc))
	}
	return t
}

// FourccToVulkan returns the mapping of f. The boolean is false when f
// has no Vulkan equivalent, which only means the format is unsupported.
func (t *Table) FourccToVulkan(f Fourcc) (Mapping, bool) {
	m, ok := t.byFourcc[f]
	return m, ok
}

// ShmToVulkan is FourccToVulkan for a wl_shm format. Values that are not
// wl_shm formats have no mapping.
func (t *Table) ShmToVulkan(f ShmFormat) (Mapping, bool) {
	if !f.Valid() {
		return Mapping{}, false
	}
	return t.FourccToVulkan(f.Fourcc())
}

// ShmFormats returns the wl_shm formats that have a mapping, in table
// order.
func (t *Table) ShmFormats() []ShmFormat {
	return append([]ShmFormat(nil), t.shm...)
}

var host = NewTable(cpu.IsBigEndian)

// FourccToVulkan looks f up in the table of the host.
func FourccToVulkan(f Fourcc) (Mapping, bool) {
	return host.FourccToVulkan(f)
}

// ShmToVulkan looks f up in the table of the host.
func ShmToVulkan(f ShmFormat) (Mapping, bool) {
	return host.ShmToVulkan(f)
}

// ShmFormats returns the wl_shm formats supported on the host.
func ShmFormats() []ShmFormat {
	return host.ShmFormats()
}

// ComponentMapping returns the image view swizzle for a mapping's Alpha.
func ComponentMapping(alpha bool) vk.ComponentMapping {
	m := vk.ComponentMapping{
		R: vk.ComponentSwizzleIdentity,
		G: vk.ComponentSwizzleIdentity,
		B: vk.ComponentSwizzleIdentity,
		A: vk.ComponentSwizzleIdentity,
	}
	if !alpha {
		m.A = vk.ComponentSwizzleOne
	}
	return m
}
