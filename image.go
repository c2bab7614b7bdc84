package qoivec

import (
	"image"
	"image/color"
	"io"

	"github.com/Borketh/qoivec/internal/qoiheader"
)

func init() {
	image.RegisterFormat("qoi", string(qoiheader.Magic[:]), ImageDecode, imageDecodeConfig)
}

// ImageDecode reads a complete QOI stream from r and returns it as a
// standard library image.Image.
func ImageDecode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	pixels, hdr, err := Decode(data)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(hdr.Width), int(hdr.Height)))
	for i, word := range pixels {
		img.SetNRGBA(i%int(hdr.Width), i/int(hdr.Width), color.NRGBA{
			R: uint8(word),
			G: uint8(word >> 8),
			B: uint8(word >> 16),
			A: uint8(word >> 24),
		})
	}
	return img, nil
}

func imageDecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, qoiheader.Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, err
	}
	hdr, err := qoiheader.Parse(buf)
	if err != nil {
		return image.Config{}, translateError(err)
	}
	model := color.NRGBAModel
	if hdr.Channels == qoiheader.Channels3 {
		model = color.RGBAModel
	}
	return image.Config{Width: int(hdr.Width), Height: int(hdr.Height), ColorModel: model}, nil
}

// DecodeConfig reports an image's dimensions and color model without
// decoding the full pixel data. It is registered with the standard
// library's image package so image.DecodeConfig works transparently.
func DecodeConfig(r io.Reader) (image.Config, error) {
	return imageDecodeConfig(r)
}

// ImageEncode writes m to w as a complete QOI stream. Any image.Image is
// accepted; non-NRGBA sources are converted one pixel at a time.
func ImageEncode(w io.Writer, m image.Image) error {
	bounds := m.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]uint32, 0, width*height)
	hasAlpha := false

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A != 255 {
				hasAlpha = true
			}
			pixels = append(pixels, uint32(c.R)|uint32(c.G)<<8|uint32(c.B)<<16|uint32(c.A)<<24)
		}
	}

	data, err := Encode(pixels, Header{Width: uint32(width), Height: uint32(height), HasAlpha: hasAlpha})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
