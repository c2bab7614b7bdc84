// Package qoidsp implements the data-parallel inner engine of the QOI
// codec: the 6-bit pixel hasher, the 64-entry hash-indexed array,
// CPU-feature dispatch, and the alignment splitter.
//
// A set of pure-Go reference kernels wired up by an init()-time
// dispatch table, with wider kernels substituted in when the CPU
// supports them.
package qoidsp

// Pixel is an ordered RGBA 4-tuple.
type Pixel struct {
	R, G, B, A uint8
}

// ZeroPixel is the HIA's initial fill value: all four channels zero, alpha included.
var ZeroPixel = Pixel{}

// StartPixel is the initial "previous pixel" for both encode and decode.
var StartPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// Hash computes (3R+5G+7B+11A) mod 64 in 8-bit wrapping arithmetic.
// uint8 multiplication and addition in Go already wrap at 256, so the
// low 6 bits of the wrapped sum equal the mathematical result mod 64.
func (p Pixel) Hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) & 0x3f
}

// Pack encodes p as a little-endian 32-bit word, the layout bulk operations
// operate on when they treat a pixel run as a word array.
func (p Pixel) Pack() uint32 {
	return uint32(p.R) | uint32(p.G)<<8 | uint32(p.B)<<16 | uint32(p.A)<<24
}

// Unpack decodes a little-endian 32-bit word into a Pixel.
func Unpack(word uint32) Pixel {
	return Pixel{
		R: uint8(word),
		G: uint8(word >> 8),
		B: uint8(word >> 16),
		A: uint8(word >> 24),
	}
}

// HashWord computes the same hash as Pixel.Hash directly from a packed word.
func HashWord(word uint32) uint8 {
	r := uint8(word)
	g := uint8(word >> 8)
	b := uint8(word >> 16)
	a := uint8(word >> 24)
	return (r*3 + g*5 + b*7 + a*11) & 0x3f
}
