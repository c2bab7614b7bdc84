package qoicodec

import (
	"fmt"

	"github.com/Borketh/qoivec/internal/qoidsp"
	"github.com/Borketh/qoivec/internal/qoiheader"
)

// ErrPixelCountMismatch reports that the pixel slice handed to Encode does
// not match the pixel count implied by the header's dimensions.
type ErrPixelCountMismatch struct {
	Got, Expected int
}

func (e *ErrPixelCountMismatch) Error() string {
	return fmt.Sprintf("qoicodec: got %d pixels, header implies %d", e.Got, e.Expected)
}

// Encode serializes pixels as a complete QOI stream: header, op stream,
// end marker. len(pixels) must equal hdr.ImageSize(). The returned slice
// is freshly allocated; callers that want to supply (and reuse) their
// own backing buffer should use EncodeInto.
func Encode(pixels []qoidsp.Pixel, hdr qoiheader.Header) ([]byte, error) {
	return EncodeInto(nil, pixels, hdr)
}

// EncodeInto is Encode, but appends to (and may grow) buf instead of
// allocating a fresh buffer. buf may be nil; it is typically a slice
// obtained from a buffer pool so the caller can return it once the
// result has been copied out.
//
// The scan loop mirrors the reference encoder's run-length handling by
// finding the full length of a repeated run in one forward scan rather
// than incrementing a counter one pixel at a time; the two are
// observationally identical since a run is split into fixed 62-pixel
// groups either way.
func EncodeInto(buf []byte, pixels []qoidsp.Pixel, hdr qoiheader.Header) ([]byte, error) {
	expected, err := hdr.ImageSize()
	if err != nil {
		return nil, err
	}
	if len(pixels) != expected {
		return nil, &ErrPixelCountMismatch{Got: len(pixels), Expected: expected}
	}

	out := buf[:0]
	out = qoiheader.Append(out, hdr)

	// Hash every pixel up front with the active dispatch tier's bulk
	// kernel, so the per-pixel state machine below only ever does table
	// lookups, never its own hashing.
	hashes := qoidsp.HashPixels(pixels)

	var hia qoidsp.HIA
	prev := qoidsp.StartPixel
	n := len(pixels)

	for i := 0; i < n; {
		cur := pixels[i]

		if cur == prev {
			run := 1
			for i+run < n && pixels[i+run] == cur {
				run++
			}
			i += run
			for run > 0 {
				chunk := run
				if chunk > runMaxLength {
					chunk = runMaxLength
				}
				out = appendRun(out, chunk)
				run -= chunk
			}
			continue
		}

		prevAtHash, hash := hia.SwapOrPushHash(cur, hashes[i])
		switch {
		case cur == prevAtHash:
			out = appendIndex(out, hash)
		case cur.A != prev.A:
			out = appendRGBA(out, cur)
		default:
			dr, dg, db, diffOK := diffDeltas(prev, cur)
			switch {
			case diffOK:
				out = appendDiff(out, dr, dg, db)
			default:
				if dgB, drdgB, dbdgB, lumaOK := lumaFields(dr, dg, db); lumaOK {
					out = appendLuma(out, dgB, drdgB, dbdgB)
				} else {
					out = appendRGB(out, cur)
				}
			}
		}
		prev = cur
		i++
	}

	out = append(out, qoiheader.EndMarker[:]...)
	return out, nil
}
