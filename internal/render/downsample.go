package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to width x height with a Catmull-Rom filter.
// Filtering happens on premultiplied colour so transparent background
// pixels do not darken object edges.
func Downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}

	// x/image/draw premultiplies NRGBA sources while filtering
	rect := image.Rect(0, 0, width, height)
	filtered := image.NewRGBA(rect)
	draw.CatmullRom.Scale(filtered, rect, img, b, draw.Src, nil)

	out := image.NewNRGBA(rect)
	if img.Opaque() {
		// Alpha is 255 everywhere, premultiplied and straight colour agree
		copy(out.Pix, filtered.Pix)
		return out
	}
	draw.Draw(out, rect, filtered, image.Point{}, draw.Src)
	return out
}
