// Package qoivec provides a pure Go encoder and decoder for the Quite
// OK Image (QOI) lossless format, with an internal data-parallel pixel
// hasher that dispatches to a wider kernel when the running CPU
// supports it.
//
// Basic usage for decoding:
//
//	pixels, hdr, err := qoivec.Decode(data)
//
// Basic usage for encoding:
//
//	data, err := qoivec.Encode(pixels, hdr)
package qoivec

import (
	"errors"
	"fmt"

	"github.com/Borketh/qoivec/internal/pool"
	"github.com/Borketh/qoivec/internal/qoicodec"
	"github.com/Borketh/qoivec/internal/qoidsp"
	"github.com/Borketh/qoivec/internal/qoiheader"
)

// Header describes the dimensions and pixel format of a QOI image.
type Header struct {
	Width, Height uint32
	HasAlpha      bool
	LinearRGB     bool
}

func (h Header) toInternal() qoiheader.Header {
	channels := uint8(qoiheader.Channels3)
	if h.HasAlpha {
		channels = qoiheader.Channels4
	}
	colorspace := uint8(qoiheader.ColorspaceSRGB)
	if h.LinearRGB {
		colorspace = qoiheader.ColorspaceLinear
	}
	return qoiheader.Header{Width: h.Width, Height: h.Height, Channels: channels, Colorspace: colorspace}
}

func headerFromInternal(h qoiheader.Header) Header {
	return Header{
		Width:     h.Width,
		Height:    h.Height,
		HasAlpha:  h.Channels == qoiheader.Channels4,
		LinearRGB: h.Colorspace == qoiheader.ColorspaceLinear,
	}
}

// Errors returned by Encode and Decode. Each internal sentinel is
// translated into the matching public value below (not wrapped), so
// callers compare against these.
var (
	ErrBadMagic      = errors.New("qoivec: bad magic bytes")
	ErrBadChannels   = errors.New("qoivec: channels must be 3 or 4")
	ErrBadColorspace = errors.New("qoivec: colorspace must be 0 or 1")
	ErrBadEndMarker  = errors.New("qoivec: missing or malformed end marker")
	ErrTruncated     = errors.New("qoivec: input shorter than expected")
)

// SizeMismatch reports that the header's width*height does not match
// the number of pixels actually decoded or supplied for encoding.
type SizeMismatch struct {
	Got, Expected int
}

func (e *SizeMismatch) Error() string {
	return fmt.Sprintf("qoivec: size mismatch: got %d pixels, want %d", e.Got, e.Expected)
}

// CapabilityMissing reports that a requested FeatureTier exceeds what
// the running CPU supports.
type CapabilityMissing struct {
	Requested, Detected string
}

func (e *CapabilityMissing) Error() string {
	return fmt.Sprintf("qoivec: requested tier %s exceeds detected %s", e.Requested, e.Detected)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, qoiheader.ErrBadMagic):
		return ErrBadMagic
	case errors.Is(err, qoiheader.ErrBadChannels):
		return ErrBadChannels
	case errors.Is(err, qoiheader.ErrBadColorspace):
		return ErrBadColorspace
	case errors.Is(err, qoiheader.ErrTruncated), errors.Is(err, qoicodec.ErrTruncated):
		return ErrTruncated
	case errors.Is(err, qoicodec.ErrBadEndMarker):
		return ErrBadEndMarker
	}
	var dimErr *qoiheader.ErrDimensionOverflow
	if errors.As(err, &dimErr) {
		return err
	}
	var countErr *qoicodec.ErrPixelCountMismatch
	if errors.As(err, &countErr) {
		return &SizeMismatch{Got: countErr.Got, Expected: countErr.Expected}
	}
	var sizeErr *qoicodec.ErrDecodedSizeMismatch
	if errors.As(err, &sizeErr) {
		return &SizeMismatch{Got: sizeErr.Got, Expected: sizeErr.Expected}
	}
	var capErr *qoidsp.ErrCapabilityMissing
	if errors.As(err, &capErr) {
		return &CapabilityMissing{Requested: capErr.Requested.String(), Detected: capErr.Detected.String()}
	}
	return err
}

// Encode serializes pixels (packed little-endian RGBA words, row-major,
// one per image pixel) as a complete QOI stream.
func Encode(pixels []uint32, hdr Header) ([]byte, error) {
	internalPixels := make([]qoidsp.Pixel, len(pixels))
	for i, w := range pixels {
		internalPixels[i] = qoidsp.Unpack(w)
	}

	ihdr := hdr.toInternal()
	estimate := qoiheader.Size + len(pixels)*2 + len(qoiheader.EndMarker)
	buf := pool.GetBytes(estimate)
	encoded, err := qoicodec.EncodeInto(buf, internalPixels, ihdr)
	if err != nil {
		pool.PutBytes(buf)
		return nil, translateError(err)
	}

	result := make([]byte, len(encoded))
	copy(result, encoded)
	pool.PutBytes(encoded)
	return result, nil
}

// Decode parses a complete QOI stream and returns its pixels as packed
// little-endian RGBA words (row-major) along with the parsed header.
func Decode(data []byte) ([]uint32, Header, error) {
	pixels, ihdr, err := qoicodec.Decode(data)
	if err != nil {
		return nil, Header{}, translateError(err)
	}

	out := pool.GetPixelWords(len(pixels))
	out = out[:len(pixels)]
	for i, p := range pixels {
		out[i] = p.Pack()
	}
	return out, headerFromInternal(ihdr), nil
}

// SetFeatureTier overrides the hashing kernel tier used by subsequent
// Encode calls. force bypasses the detected-hardware check, matching a
// force-compile escape hatch for testing on hardware the tier wasn't
// actually validated against.
func SetFeatureTier(name string, force bool) error {
	tier, ok := tierByName[name]
	if !ok {
		return fmt.Errorf("qoivec: unknown feature tier %q", name)
	}
	return translateError(qoidsp.SetFeatureTier(tier, force))
}

var tierByName = map[string]qoidsp.FeatureTier{
	"scalar": qoidsp.TierScalar,
	"x4":     qoidsp.TierX4,
	"x8":     qoidsp.TierX8,
	"x16":    qoidsp.TierX16,
}

// ActiveFeatureTier names the hashing kernel tier currently in use.
func ActiveFeatureTier() string {
	return qoidsp.ActiveTier().String()
}
