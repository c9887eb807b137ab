package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the raster operations used for debug artifacts.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes PNG data into an image.Image.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image as PNG.
	EncodeImage(img image.Image) ([]byte, error)
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImageFit draws img centered inside the box, keeping its aspect ratio.
	DrawImageFit(img image.Image, x, y, width, height int)

	// DrawChecker fills the box with a two-tone checkerboard so transparency stays visible.
	DrawChecker(x, y, width, height, cell int, a, b color.Color)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws text anchored at its left baseline.
	DrawText(text string, x, y int, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}
