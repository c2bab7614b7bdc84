package qoidsp

// HIA is the 64-entry hash-indexed array: a direct-mapped table of the
// most recently seen pixel for each 6-bit hash bucket.
type HIA [64]Pixel

// Reset fills every slot with the zero pixel, the array's initial state.
func (h *HIA) Reset() {
	*h = HIA{}
}

// Fetch returns the pixel stored at hash h. The caller is trusted to have
// computed h via Pixel.Hash (or HashWord), which already masks to 6 bits;
// Fetch masks again so an out-of-range index can never panic.
func (hia *HIA) Fetch(h uint8) Pixel {
	return hia[h&0x3f]
}

// SwapOrPush stores p at its hash bucket and returns the previous
// occupant along with the hash.
func (hia *HIA) SwapOrPush(p Pixel) (prev Pixel, hash uint8) {
	return hia.SwapOrPushHash(p, p.Hash())
}

// SwapOrPushHash is SwapOrPush with an already-computed hash, for callers
// that batch-hash pixels ahead of the sequential encode loop (via
// HashPixels) instead of hashing one pixel at a time.
func (hia *HIA) SwapOrPushHash(p Pixel, hash uint8) (prev Pixel, _ uint8) {
	hash &= 0x3f
	prev = hia[hash]
	hia[hash] = p
	return prev, hash
}

// Set stores p at its hash bucket without returning the previous occupant.
func (hia *HIA) Set(p Pixel) {
	hia[p.Hash()] = p
}

// BulkUpdate resynchronizes the table from a run of already-decoded
// pixels, in order, as the decoder's lazy-sync policy requires: each
// pixel overwrites whatever was at its hash bucket, so only the last
// pixel for a given hash survives. Hashing is delegated to the active
// dispatch tier's bulk kernel rather than hashing one pixel at a time.
func (hia *HIA) BulkUpdate(pixels []Pixel) {
	hashes := HashPixels(pixels)
	for i, p := range pixels {
		hia[hashes[i]] = p
	}
}
