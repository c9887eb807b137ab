package mocks

import (
	"image"
	"image/color"

	"github.com/user/stickerize/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	DecodeImageFunc func(data []byte) (image.Image, error)
	EncodeImageFunc func(img image.Image) ([]byte, error)

	// Recorded calls
	Canvases     []*Canvas
	DecodeCalls  int
	EncodeCalled bool
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	c := &Canvas{Width: width, Height: height}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	m.DecodeCalls++
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewNRGBA(image.Rect(0, 0, 64, 64)), nil
}

func (m *Renderer) EncodeImage(img image.Image) ([]byte, error) {
	m.EncodeCalled = true
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img)
	}
	return []byte("png"), nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas records drawing calls.
type Canvas struct {
	Width, Height int
	ImagesDrawn   int
	Texts         []string
}

func (m *Canvas) DrawImageFit(img image.Image, x, y, width, height int) {
	m.ImagesDrawn++
}

func (m *Canvas) DrawChecker(x, y, width, height, cell int, a, b color.Color) {}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {}

func (m *Canvas) DrawText(text string, x, y int, c color.Color) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	return image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
