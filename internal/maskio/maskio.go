package maskio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// Load reads a part mask image (PNG or TGA) and returns it as NRGBA.
// The alpha channel is the mask: alpha > 128 means inside.
func Load(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maskio: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("maskio: decode %s: %w", path, err)
	}

	return toNRGBA(img), nil
}

// FromAlpha builds a mask from a raw width×height alpha buffer.
// Short buffers leave the remaining pixels transparent.
func FromAlpha(width, height int, alpha []byte) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, a := range alpha {
		if i >= width*height {
			break
		}
		x, y := i%width, i/width
		o := img.PixOffset(x, y)
		img.Pix[o] = 255
		img.Pix[o+1] = 255
		img.Pix[o+2] = 255
		img.Pix[o+3] = a
	}
	return img
}

// toNRGBA converts any decoded image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}
