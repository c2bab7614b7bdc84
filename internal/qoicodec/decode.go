package qoicodec

import (
	"errors"
	"fmt"

	"github.com/Borketh/qoivec/internal/qoidsp"
	"github.com/Borketh/qoivec/internal/qoiheader"
)

// ErrTruncated reports that the op stream ended before the declared pixel
// count was reached, or that an op's operand bytes run past the input. A
// missing end marker is reported as ErrBadEndMarker instead.
var ErrTruncated = errors.New("qoicodec: op stream truncated")

// ErrBadEndMarker reports that the 8 bytes following the last op did not
// match the expected end marker.
var ErrBadEndMarker = errors.New("qoicodec: missing or malformed end marker")

// ErrDecodedSizeMismatch reports that the op stream produced a different
// pixel count than the header declared.
type ErrDecodedSizeMismatch struct {
	Got, Expected int
}

func (e *ErrDecodedSizeMismatch) Error() string {
	return fmt.Sprintf("qoicodec: decoded %d pixels, header declared %d", e.Got, e.Expected)
}

// Decode parses a complete QOI stream (header, op stream, end marker) and
// returns the header and the reconstructed pixels.
func Decode(data []byte) ([]qoidsp.Pixel, qoiheader.Header, error) {
	hdr, err := qoiheader.Parse(data)
	if err != nil {
		return nil, qoiheader.Header{}, err
	}
	expected, err := hdr.ImageSize()
	if err != nil {
		return nil, qoiheader.Header{}, err
	}

	pixels, err := decodeBody(data[qoiheader.Size:], expected)
	if err != nil {
		return nil, qoiheader.Header{}, err
	}
	return pixels, hdr, nil
}

// decodeBody decodes the op stream in body (everything after the header,
// including the trailing end marker) into exactly expected pixels,
// honoring the lazy HIA resync policy: RUN and DIFF/LUMA/RGB/RGBA ops
// never touch the table (apart from a RUN that is the very first op,
// which stores the start pixel), so it is only brought current with the
// already-decoded pixels right before an INDEX op needs to read it, via
// a bulk update from the last synced position.
func decodeBody(body []byte, expected int) ([]qoidsp.Pixel, error) {
	out := make([]qoidsp.Pixel, 0, expected)
	var hia qoidsp.HIA
	prev := qoidsp.StartPixel
	pos := 0
	firstOp := true

	// toSync holds the non-run pixels decoded since the last bulk sync.
	// RUN never updates the encoder's HIA, so run-repeated pixels must
	// never appear here or the decoder's table would diverge from the
	// encoder's.
	var toSync []qoidsp.Pixel
	sync := func() {
		if len(toSync) > 0 {
			hia.BulkUpdate(toSync)
			toSync = toSync[:0]
		}
	}

	for len(out) < expected {
		if pos >= len(body) {
			return nil, ErrTruncated
		}
		tag := body[pos]

		switch {
		case tag == tagRGBA:
			if pos+5 > len(body) {
				return nil, ErrTruncated
			}
			cur := qoidsp.Pixel{R: body[pos+1], G: body[pos+2], B: body[pos+3], A: body[pos+4]}
			out = append(out, cur)
			toSync = append(toSync, cur)
			prev = cur
			pos += 5
			firstOp = false

		case tag == tagRGB:
			if pos+4 > len(body) {
				return nil, ErrTruncated
			}
			cur := qoidsp.Pixel{R: body[pos+1], G: body[pos+2], B: body[pos+3], A: prev.A}
			out = append(out, cur)
			toSync = append(toSync, cur)
			prev = cur
			pos += 4
			firstOp = false

		default:
			switch tag >> 6 {
			case kindIndex:
				sync()
				cur := hia.Fetch(tag & 0x3f)
				out = append(out, cur)
				prev = cur
				pos++

			case kindDiff:
				cur := decodeDiff(prev, tag)
				out = append(out, cur)
				toSync = append(toSync, cur)
				prev = cur
				pos++

			case kindLuma:
				if pos+2 > len(body) {
					return nil, ErrTruncated
				}
				cur := decodeLuma(prev, tag, body[pos+1])
				out = append(out, cur)
				toSync = append(toSync, cur)
				prev = cur
				pos += 2

			default: // kindRun
				if firstOp {
					hia.Set(prev)
				}
				length := runLength(tag)
				for j := 0; j < length; j++ {
					out = append(out, prev)
				}
				pos++
			}
			firstOp = false
		}
	}

	if len(out) != expected {
		return nil, &ErrDecodedSizeMismatch{Got: len(out), Expected: expected}
	}
	if pos+len(qoiheader.EndMarker) > len(body) || !endMarkerMatches(body[pos:pos+len(qoiheader.EndMarker)]) {
		return nil, ErrBadEndMarker
	}
	return out, nil
}

func endMarkerMatches(tail []byte) bool {
	for i, b := range qoiheader.EndMarker {
		if tail[i] != b {
			return false
		}
	}
	return true
}
