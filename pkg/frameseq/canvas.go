package frameseq

import (
	"context"
	"image"
	"image/draw"
	"io"
)

// Clone returns an independent copy of img.
func Clone(img *image.NRGBA) *image.NRGBA {
	out := &image.NRGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// ClearRect resets r to fully transparent.
func ClearRect(img *image.NRGBA, r image.Rectangle) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// ToNRGBA converts img to *image.NRGBA anchored at the origin, reusing it
// when no conversion is needed.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// SliceSource yields the given frames in order.
func SliceSource(frames []image.Image) Source {
	i := 0
	return func(ctx context.Context) (image.Image, error) {
		if i >= len(frames) {
			return nil, io.EOF
		}
		img := frames[i]
		i++
		return img, nil
	}
}
