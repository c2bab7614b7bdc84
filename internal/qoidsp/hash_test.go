package qoidsp

import (
	"math/rand"
	"testing"
)

// TestHashScalarReference checks Pixel.Hash against the (3R+5G+7B+11A) mod 64
// formula directly for a spread of values, including wraparound cases.
func TestHashScalarReference(t *testing.T) {
	cases := []struct {
		p    Pixel
		want uint8
	}{
		{Pixel{0, 0, 0, 0}, 0},
		{Pixel{0, 0, 0, 255}, (11 * 255) & 0x3f},
		{Pixel{255, 255, 255, 255}, (255*3 + 255*5 + 255*7 + 255*11) & 0x3f},
		{Pixel{1, 2, 3, 4}, (1*3 + 2*5 + 3*7 + 4*11) & 0x3f},
	}
	for _, c := range cases {
		if got := c.p.Hash(); got != c.want {
			t.Errorf("Hash(%+v) = %d, want %d", c.p, got, c.want)
		}
	}
}

func TestHashWordMatchesPixel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := Pixel{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
		if got, want := HashWord(p.Pack()), p.Hash(); got != want {
			t.Fatalf("HashWord(Pack(%+v)) = %d, want %d", p, got, want)
		}
	}
}

// TestBulkHasherAgreement checks that every tier's bulk kernel agrees with
// the scalar reference hash: HashPixelsTier(P)[i] == P[i].Hash() for all i and N.
func TestBulkHasherAgreement(t *testing.T) {
	tiers := []FeatureTier{TierScalar, TierX4, TierX8, TierX16}
	rng := rand.New(rand.NewSource(2))

	for _, tier := range tiers {
		for _, n := range []int{0, 1, 3, 4, 15, 16, 17, 32, 159, 160, 161, 400} {
			pixels := make([]Pixel, n)
			for i := range pixels {
				pixels[i] = Pixel{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
			}
			got := HashPixelsTier(pixels, tier)
			if len(got) != n {
				t.Fatalf("tier %v n=%d: len(got)=%d", tier, n, len(got))
			}
			for i, p := range pixels {
				if got[i] != p.Hash() {
					t.Fatalf("tier %v n=%d: hash[%d]=%d, want %d", tier, n, i, got[i], p.Hash())
				}
			}
		}
	}
}

// TestSetFeatureTierRejectsUnsupported exercises the CapabilityMissing path.
func TestSetFeatureTierRejectsUnsupported(t *testing.T) {
	original := activeTier
	defer func() { activeTier = original }()

	savedDetected := detectedTier
	detectedTier = TierScalar
	defer func() { detectedTier = savedDetected }()

	if err := SetFeatureTier(TierX16, false); err == nil {
		t.Fatal("expected CapabilityMissing error")
	}
	if err := SetFeatureTier(TierX16, true); err != nil {
		t.Fatalf("force=true should not error, got %v", err)
	}
	if ActiveTier() != TierX16 {
		t.Fatalf("ActiveTier() = %v, want TierX16", ActiveTier())
	}
}
