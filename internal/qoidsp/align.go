package qoidsp

import "unsafe"

// Split partitions pixels into (head, body, tail) so that body begins at
// the natural byte alignment of tier's vector register and has a length
// that is an exact multiple of tier's chunk size. head and tail are
// meant for the scalar kernel; body feeds the wide kernel.
//
// A nil or empty slice, or a scalar tier, yields an all-tail split: there
// is nothing to align a single-pixel-at-a-time kernel to.
func Split(pixels []Pixel, t FeatureTier) (head, body, tail []Pixel) {
	chunk := chunkSize(t)
	if chunk <= 1 || len(pixels) == 0 {
		return nil, nil, pixels
	}

	regBytes := uintptr(laneWidth(t)) * 4 // 4 bytes per packed pixel
	addr := uintptr(unsafe.Pointer(&pixels[0]))
	misalign := addr % regBytes

	headLen := 0
	if misalign != 0 {
		headLen = int((regBytes - misalign) / 4)
		if headLen > len(pixels) {
			headLen = len(pixels)
		}
	}

	rest := pixels[headLen:]
	bodyLen := (len(rest) / chunk) * chunk
	return pixels[:headLen], rest[:bodyLen], rest[bodyLen:]
}
