package assets

import (
	"image"
	"image/color"
)

// Grayscale converts img to luminance using the ITU-R 601 weights. Alpha is kept.
func Grayscale(img image.Image) *image.NRGBA {
	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		y := uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B) + 500) / 1000)
		return color.NRGBA{R: y, G: y, B: y, A: c.A}
	})
}

// Invert flips every colour channel. Alpha is kept.
func Invert(img image.Image) *image.NRGBA {
	return mapPixels(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B, A: c.A}
	})
}

func mapPixels(img image.Image, fn func(color.NRGBA) color.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetNRGBA(x-bounds.Min.X, y-bounds.Min.Y, fn(c))
		}
	}
	return out
}
