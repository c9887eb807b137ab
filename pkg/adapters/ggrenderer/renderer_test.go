package ggrenderer

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 60, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("expected 100x60, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if r, g, b, _ := img.At(50, 30).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Error("expected white background")
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(solid(30, 20, color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 20 {
		t.Errorf("expected 30x20, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_DecodeInvalid(t *testing.T) {
	if _, err := New().DecodeImage([]byte("not a png")); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestCanvas_DrawImageFit(t *testing.T) {
	canvas := New().CreateCanvas(100, 100, color.White)

	// A 2:1 image in a square box is letterboxed vertically.
	canvas.DrawImageFit(solid(40, 20, color.NRGBA{B: 255, A: 255}), 0, 0, 100, 100)
	img := canvas.ToImage()

	if _, _, b, _ := img.At(50, 50).RGBA(); b>>8 != 255 {
		t.Error("expected image at center")
	}
	if r, _, _, _ := img.At(50, 5).RGBA(); r>>8 != 255 {
		t.Error("expected background above letterboxed image")
	}
}

func TestCanvas_DrawChecker(t *testing.T) {
	canvas := New().CreateCanvas(16, 16, color.White)
	canvas.DrawChecker(0, 0, 16, 16, 8, color.Black, color.White)
	img := canvas.ToImage()

	if r, _, _, _ := img.At(2, 2).RGBA(); r != 0 {
		t.Error("expected first cell to use the first color")
	}
	if r, _, _, _ := img.At(10, 2).RGBA(); r>>8 != 255 {
		t.Error("expected second cell to use the second color")
	}
}

func TestCanvas_DrawTextAndStroke(t *testing.T) {
	canvas := New().CreateCanvas(80, 30, color.White)
	canvas.DrawRectStroke(1, 1, 78, 28, color.Black, 2)
	canvas.DrawText("#0001", 5, 20, color.Black)

	img := canvas.ToImage()
	if r, _, _, _ := img.At(1, 15).RGBA(); r>>8 == 255 {
		t.Error("expected stroke on the left edge")
	}
}
