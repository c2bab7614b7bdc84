// Package qoicodec implements the six QOI ops, the per-pixel encoder
// state machine, and the decoder dispatch/state machine.
package qoicodec

import "github.com/Borketh/qoivec/internal/qoidsp"

// Op tag bytes and masks.
const (
	tagRGBA = 0xff
	tagRGB  = 0xfe

	kindIndex = 0 // tag>>6 == 0
	kindDiff  = 1
	kindLuma  = 2
	kindRun   = 3

	runMaxLength = 62 // wire-encodable run length, biased by -1 on the wire
)

// appendRun appends one OP_RUN op for a run of the given length,
// 1 <= length <= runMaxLength.
func appendRun(buf []byte, length int) []byte {
	return append(buf, 0xc0|byte(length-1))
}

// appendIndex appends one OP_INDEX op for the given 6-bit hash.
func appendIndex(buf []byte, hash uint8) []byte {
	return append(buf, hash&0x3f)
}

// diffDeltas computes the wrapping per-channel delta and reports whether
// it fits in OP_DIFF's range: each channel's actual delta in [-2, +1].
func diffDeltas(prev, cur qoidsp.Pixel) (dr, dg, db uint8, ok bool) {
	dr = cur.R - prev.R
	dg = cur.G - prev.G
	db = cur.B - prev.B
	return dr, dg, db, (dr+2) < 4 && (dg+2) < 4 && (db+2) < 4
}

// appendDiff appends one OP_DIFF op given the already-range-checked deltas.
func appendDiff(buf []byte, dr, dg, db uint8) []byte {
	return append(buf, 0x40|(dr+2)<<4|(dg+2)<<2|(db+2))
}

// lumaFields computes the OP_LUMA byte fields and reports whether the
// delta fits in OP_LUMA's range.
func lumaFields(dr, dg, db uint8) (dgBiased, drdgBiased, dbdgBiased uint8, ok bool) {
	dgBiased = dg + 32
	drdgBiased = dr - dg + 8
	dbdgBiased = db - dg + 8
	return dgBiased, drdgBiased, dbdgBiased, dgBiased < 64 && drdgBiased < 16 && dbdgBiased < 16
}

// appendLuma appends one OP_LUMA op given the already-range-checked fields.
func appendLuma(buf []byte, dgBiased, drdgBiased, dbdgBiased uint8) []byte {
	return append(buf, 0x80|dgBiased, drdgBiased<<4|dbdgBiased)
}

// appendRGB appends one OP_RGB op.
func appendRGB(buf []byte, p qoidsp.Pixel) []byte {
	return append(buf, tagRGB, p.R, p.G, p.B)
}

// appendRGBA appends one OP_RGBA op.
func appendRGBA(buf []byte, p qoidsp.Pixel) []byte {
	return append(buf, tagRGBA, p.R, p.G, p.B, p.A)
}

// decodeDiff reconstructs the current pixel from an OP_DIFF tag byte.
func decodeDiff(prev qoidsp.Pixel, tag byte) qoidsp.Pixel {
	dr := (tag>>4)&0x3 - 2
	dg := (tag>>2)&0x3 - 2
	db := tag&0x3 - 2
	return qoidsp.Pixel{
		R: prev.R + dr,
		G: prev.G + dg,
		B: prev.B + db,
		A: prev.A,
	}
}

// decodeLuma reconstructs the current pixel from an OP_LUMA tag byte
// plus its one operand byte.
func decodeLuma(prev qoidsp.Pixel, tag, rb byte) qoidsp.Pixel {
	dg := (tag & 0x3f) - 32
	dr := dg + (rb>>4)&0xf - 8
	db := dg + rb&0xf - 8
	return qoidsp.Pixel{
		R: prev.R + dr,
		G: prev.G + dg,
		B: prev.B + db,
		A: prev.A,
	}
}

// runLength decodes an OP_RUN tag byte into its repeat count (1..62).
func runLength(tag byte) int {
	return int(tag&0x3f) + 1
}
