// Package benchmark provides comparative benchmarks between qoivec and
// other Go QOI implementations, plus round-trips through golang.org/x/image
// decoders to source auxiliary raster fixtures.
//
// Run with:
//
//	go test -bench=. -benchmem -count=3
package benchmark

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"os"
	"testing"

	// Our library.
	qoivec "github.com/Borketh/qoivec"

	// Competitor.
	kfqoi "github.com/kriticalflare/qoi"

	// Auxiliary raster decoders, used to build test fixtures from
	// formats the core codec never has to speak.
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// testImage is a synthetic 512x384 gradient, regenerated at test start
// rather than loaded from a checked-in fixture so the benchmark module
// carries no binary testdata.
var testImage *image.NRGBA

// testImageSmall is a 64x64 crop for faster benchmarks.
var testImageSmall *image.NRGBA

// Pre-encoded QOI buffers for decode benchmarks.
var (
	qoiQoivec []byte
	qoiKF     []byte
)

func TestMain(m *testing.M) {
	testImage = makeGradient(512, 384)

	b := testImage.Bounds()
	cropped := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(cropped, cropped.Bounds(), testImage, b.Min, draw.Src)
	testImageSmall = cropped

	qoiQoivec = mustEncodeQoivec(testImage)
	qoiKF = mustEncodeKF(testImage)

	os.Exit(m.Run())
}

func makeGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// ============================================================================
// BMP/TIFF round-trip fixtures — exercises golang.org/x/image's auxiliary
// raster decoders as inputs the core codec can then re-encode as QOI.
// ============================================================================

func TestAuxiliaryFixtureRoundTrip(t *testing.T) {
	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, testImageSmall); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	fromBMP, err := bmp.Decode(&bmpBuf)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if _, err := encodeQoivecImage(fromBMP); err != nil {
		t.Fatalf("re-encoding BMP-sourced image as QOI: %v", err)
	}

	var tiffBuf bytes.Buffer
	if err := tiff.Encode(&tiffBuf, testImageSmall, nil); err != nil {
		t.Fatalf("tiff.Encode: %v", err)
	}
	fromTIFF, err := tiff.Decode(&tiffBuf)
	if err != nil {
		t.Fatalf("tiff.Decode: %v", err)
	}
	if _, err := encodeQoivecImage(fromTIFF); err != nil {
		t.Fatalf("re-encoding TIFF-sourced image as QOI: %v", err)
	}
}

// ============================================================================
// Helper encode functions
// ============================================================================

func encodeQoivecImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := qoivec.ImageEncode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mustEncodeQoivec(img image.Image) []byte {
	data, err := encodeQoivecImage(img)
	if err != nil {
		panic("qoivec encode: " + err.Error())
	}
	return data
}

func mustEncodeKF(img image.Image) []byte {
	var buf bytes.Buffer
	if err := kfqoi.ImageEncode(&buf, img); err != nil {
		panic("kriticalflare/qoi encode: " + err.Error())
	}
	return buf.Bytes()
}

// ============================================================================
// Size report (not a benchmark, but prints file sizes for comparison)
// ============================================================================

func TestFileSizes(t *testing.T) {
	t.Logf("Source image: %dx%d", testImage.Bounds().Dx(), testImage.Bounds().Dy())
	t.Log("")
	t.Log("=== QOI file sizes ===")
	t.Logf("  qoivec:             %6d bytes", len(qoiQoivec))
	t.Logf("  kriticalflare/qoi:  %6d bytes", len(qoiKF))
	if len(qoiQoivec) != len(qoiKF) {
		t.Logf("  NOTE: sizes differ; both are valid QOI streams for the same pixels")
	}
}

// ============================================================================
// ENCODE BENCHMARKS
// ============================================================================

func BenchmarkEncode_Qoivec(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()
	for b.Loop() {
		buf.Reset()
		if err := qoivec.ImageEncode(&buf, testImage); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

func BenchmarkEncode_KriticalFlare(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()
	for b.Loop() {
		buf.Reset()
		if err := kfqoi.ImageEncode(&buf, testImage); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

func BenchmarkEncodeSmall_Qoivec(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()
	for b.Loop() {
		buf.Reset()
		if err := qoivec.ImageEncode(&buf, testImageSmall); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

func BenchmarkEncodeSmall_KriticalFlare(b *testing.B) {
	var buf bytes.Buffer
	b.ResetTimer()
	for b.Loop() {
		buf.Reset()
		if err := kfqoi.ImageEncode(&buf, testImageSmall); err != nil {
			b.Fatal(err)
		}
	}
	b.SetBytes(int64(buf.Len()))
}

// ============================================================================
// DECODE BENCHMARKS
// ============================================================================

func BenchmarkDecode_Qoivec(b *testing.B) {
	r := bytes.NewReader(qoiQoivec)
	b.ResetTimer()
	for b.Loop() {
		r.Seek(0, 0)
		if _, err := qoivec.ImageDecode(r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_KriticalFlare(b *testing.B) {
	r := bytes.NewReader(qoiKF)
	b.ResetTimer()
	for b.Loop() {
		r.Seek(0, 0)
		if _, err := kfqoi.ImageDecode(r); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_Qoivec_CrossDecodeKFEncoded(b *testing.B) {
	r := bytes.NewReader(qoiKF)
	b.ResetTimer()
	for b.Loop() {
		r.Seek(0, 0)
		if _, err := qoivec.ImageDecode(r); err != nil {
			b.Fatal(err)
		}
	}
}

func TestCrossDecodeKFEncodedStream(t *testing.T) {
	img, err := qoivec.ImageDecode(bytes.NewReader(qoiKF))
	if err != nil {
		t.Fatalf("qoivec failed to decode a kriticalflare/qoi-encoded stream: %v", err)
	}
	if img.Bounds() != testImage.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), testImage.Bounds())
	}
}
