package qoidsp

import "golang.org/x/sys/cpu"

// FeatureTier names a data-parallel hashing kernel width: scalar, or one
// of three wider lane widths mirroring SSSE3/NEON, AVX2/SVE, and
// AVX-512/SVE2 register sizes.
//
// qoivec does not emit hand-written assembly for these tiers (see
// DESIGN.md): each tier is a portable Go kernel that processes pixels in
// batches of laneWidth(tier)*unrollFactor(tier) at a time, reproducing
// the chunk sizes a real vector implementation would use (16, 32, 160
// pixels) while staying correct on any GOARCH. The scalar tier is always
// present and is what every other tier is checked against for
// correctness.
type FeatureTier int

const (
	// TierScalar processes one pixel at a time. Always available.
	TierScalar FeatureTier = iota
	// TierX4 models a 128-bit vector register (4 packed 32-bit pixels),
	// the width class of SSSE3 on x86-64 and NEON on AArch64.
	TierX4
	// TierX8 models a 256-bit register (8 packed pixels): AVX/AVX2 on
	// x86-64, SVE on AArch64.
	TierX8
	// TierX16 models a 512-bit register (16 packed pixels): AVX-512 on
	// x86-64, SVE2 on AArch64.
	TierX16
)

// String names a tier for diagnostics (e.g. the CLI's info output).
func (t FeatureTier) String() string {
	switch t {
	case TierScalar:
		return "scalar"
	case TierX4:
		return "x4"
	case TierX8:
		return "x8"
	case TierX16:
		return "x16"
	default:
		return "unknown"
	}
}

// laneWidth is the number of pixels held by one vector register at this tier.
func laneWidth(t FeatureTier) int {
	switch t {
	case TierX4:
		return 4
	case TierX8:
		return 8
	case TierX16:
		return 16
	default:
		return 1
	}
}

// unrollFactor is how many registers' worth of pixels one hashing chunk
// covers, chosen so chunkSize comes out to 16, 32, and 160 pixels for
// the x4/x8/x16 tiers respectively.
func unrollFactor(t FeatureTier) int {
	switch t {
	case TierX4:
		return 4
	case TierX8:
		return 4
	case TierX16:
		return 10
	default:
		return 1
	}
}

// chunkSize returns the pixel-count granularity a tier's hashing kernel
// processes per call.
func chunkSize(t FeatureTier) int {
	return laneWidth(t) * unrollFactor(t)
}

// detectedTier is set once at init() by probing CPU features: detect
// once, expose a getter, using the standard library's CPU-feature
// package instead of a hand-rolled CPUID instruction sequence.
var detectedTier FeatureTier

func init() {
	detectedTier = probeTier()
	activeTier = detectedTier
}

// probeTier inspects runtime CPU features (via golang.org/x/sys/cpu) and
// returns the widest tier this hardware supports. Platforms golang.org/x/sys/cpu
// does not probe (anything but amd64/arm64) fall back to TierScalar, which
// is always correct, only not maximally fast.
func probeTier() FeatureTier {
	if cpu.X86.HasAVX512BW {
		return TierX16
	}
	if cpu.X86.HasAVX2 {
		return TierX8
	}
	if cpu.X86.HasSSSE3 {
		return TierX4
	}
	if cpu.ARM64.HasASIMD {
		return TierX4
	}
	return TierScalar
}

// activeTier is the tier actually used by HashPixels, defaulting to the
// detected tier but overridable by SetFeatureTier for tests and for a
// force-compile escape hatch that pins a tier regardless of detection.
var activeTier = detectedTier

// ActiveTier returns the tier HashPixels currently dispatches to.
func ActiveTier() FeatureTier { return activeTier }

// SetFeatureTier overrides the active tier. It exists so conformance
// tests can force every tier on a single machine, and so a caller can
// implement a force-compile option by requesting a tier the running CPU
// may not actually support. That case must fail fast rather than
// silently corrupt output, so SetFeatureTier validates against the
// detected hardware tier unless force is true.
func SetFeatureTier(t FeatureTier, force bool) error {
	if !force && t > detectedTier {
		return &ErrCapabilityMissing{Requested: t, Detected: detectedTier}
	}
	activeTier = t
	return nil
}

// ErrCapabilityMissing reports a force-compiled tier requested on
// hardware that does not support it.
type ErrCapabilityMissing struct {
	Requested, Detected FeatureTier
}

func (e *ErrCapabilityMissing) Error() string {
	return "qoidsp: requested tier " + e.Requested.String() + " exceeds detected " + e.Detected.String()
}
