// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package format

import "fmt"

// Fourcc is a DRM pixel format code, as used for the compositor's own
// buffers.
type Fourcc uint32

// NewFourcc packs four characters into a code, first character in the
// least significant byte.
func NewFourcc(a, b, c, d byte) Fourcc {
	return Fourcc(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

func (f Fourcc) String() string {
	s := []byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, ch := range s {
		if ch < ' ' || ch > '~' {
			return fmt.Sprintf("Fourcc(0x%08x)", uint32(f))
		}
	}
	return string(s)
}

// DRM formats. Channel order is listed from the most significant bits of
// a little-endian word.
const (
	Argb8888      Fourcc = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
	Xrgb8888      Fourcc = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
	Abgr8888      Fourcc = 'A' | 'B'<<8 | '2'<<16 | '4'<<24
	Xbgr8888      Fourcc = 'X' | 'B'<<8 | '2'<<16 | '4'<<24
	Rgba8888      Fourcc = 'R' | 'A'<<8 | '2'<<16 | '4'<<24
	Rgbx8888      Fourcc = 'R' | 'X'<<8 | '2'<<16 | '4'<<24
	Bgra8888      Fourcc = 'B' | 'A'<<8 | '2'<<16 | '4'<<24
	Bgrx8888      Fourcc = 'B' | 'X'<<8 | '2'<<16 | '4'<<24
	Rgb888        Fourcc = 'R' | 'G'<<8 | '2'<<16 | '4'<<24
	Bgr888        Fourcc = 'B' | 'G'<<8 | '2'<<16 | '4'<<24
	Rgb565        Fourcc = 'R' | 'G'<<8 | '1'<<16 | '6'<<24
	R8            Fourcc = 'R' | '8'<<8 | ' '<<16 | ' '<<24
	Gr88          Fourcc = 'G' | 'R'<<8 | '8'<<16 | '8'<<24
	Argb2101010   Fourcc = 'A' | 'R'<<8 | '3'<<16 | '0'<<24
	Xrgb2101010   Fourcc = 'X' | 'R'<<8 | '3'<<16 | '0'<<24
	Abgr16161616f Fourcc = 'A' | 'B'<<8 | '4'<<16 | 'H'<<24
	Xbgr16161616f Fourcc = 'X' | 'B'<<8 | '4'<<16 | 'H'<<24
	Nv12          Fourcc = 'N' | 'V'<<8 | '1'<<16 | '2'<<24
)

// ShmFormat is a wl_shm format. It coincides with the DRM code for every
// format except argb8888 and xrgb8888, which the protocol numbers 0 and 1.
type ShmFormat uint32

// wl_shm formats.
const (
	ShmArgb8888 ShmFormat = 0
	ShmXrgb8888 ShmFormat = 1
)

// wl_shm formats sharing the DRM code.
const (
	ShmAbgr8888      = ShmFormat(Abgr8888)
	ShmXbgr8888      = ShmFormat(Xbgr8888)
	ShmRgba8888      = ShmFormat(Rgba8888)
	ShmRgbx8888      = ShmFormat(Rgbx8888)
	ShmBgra8888      = ShmFormat(Bgra8888)
	ShmBgrx8888      = ShmFormat(Bgrx8888)
	ShmRgb888        = ShmFormat(Rgb888)
	ShmBgr888        = ShmFormat(Bgr888)
	ShmRgb565        = ShmFormat(Rgb565)
	ShmR8            = ShmFormat(R8)
	ShmGr88          = ShmFormat(Gr88)
	ShmAbgr16161616f = ShmFormat(Abgr16161616f)
	ShmXbgr16161616f = ShmFormat(Xbgr16161616f)
)

// Fourcc returns the DRM code describing the same layout.
func (f ShmFormat) Fourcc() Fourcc {
	switch f {
	case ShmArgb8888:
		return Argb8888
	case ShmXrgb8888:
		return Xrgb8888
	}
	return Fourcc(f)
}

// Valid reports whether f is a wl_shm value. The DRM codes of argb8888
// and xrgb8888 are not: the protocol numbers those formats 0 and 1.
func (f ShmFormat) Valid() bool {
	return f != ShmFormat(Argb8888) && f != ShmFormat(Xrgb8888)
}

// ShmFromFourcc returns the wl_shm format describing the same layout.
func ShmFromFourcc(f Fourcc) ShmFormat {
	switch f {
	case Argb8888:
		return ShmArgb8888
	case Xrgb8888:
		return ShmXrgb8888
	}
	return ShmFormat(f)
}

func (f ShmFormat) String() string {
	return "wl_shm:" + f.Fourcc().String()
}
