// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/stickerize/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// DecodeImage decodes PNG data. Staged frames are always PNG.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode PNG: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image as PNG.
func (r *Renderer) EncodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// DrawImageFit scales img into the box keeping its aspect ratio and centers it.
func (c *Canvas) DrawImageFit(img image.Image, x, y, width, height int) {
	b := img.Bounds()
	if b.Empty() || width <= 0 || height <= 0 {
		return
	}
	scale := min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))

	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
	c.dc.DrawImage(scaled, x+(width-w)/2, y+(height-h)/2)
}

// DrawChecker fills the box with alternating cells of a and b.
func (c *Canvas) DrawChecker(x, y, width, height, cell int, a, b color.Color) {
	if cell <= 0 {
		cell = 8
	}
	for row := 0; row*cell < height; row++ {
		for col := 0; col*cell < width; col++ {
			fill := a
			if (row+col)%2 == 1 {
				fill = b
			}
			cw := min(cell, width-col*cell)
			ch := min(cell, height-row*cell)
			c.dc.SetColor(fill)
			c.dc.DrawRectangle(float64(x+col*cell), float64(y+row*cell), float64(cw), float64(ch))
			c.dc.Fill()
		}
	}
}

// DrawRectStroke draws a rectangle outline.
func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Stroke()
}

// DrawText draws text with the built-in face.
func (c *Canvas) DrawText(text string, x, y int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawString(text, float64(x), float64(y))
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
