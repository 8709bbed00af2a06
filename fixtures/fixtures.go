// Package fixtures generates synthetic test images for exercising the
// conversion pipeline without real photo sets.
package fixtures

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// blockColors are the solid panels drawn onto the steel-blue background.
var blockColors = []color.NRGBA{
	{R: 255, G: 100, B: 100, A: 255},
	{R: 100, G: 255, B: 100, A: 255},
	{R: 100, G: 100, B: 255, A: 255},
}

var background = color.NRGBA{R: 70, G: 130, B: 180, A: 255}

// TestImage builds a width×height image: colored panels over a solid
// background, with a gradient strip along the bottom so encoders see both
// flat and varying regions.
func TestImage(width, height int) *image.NRGBA {
	img := imaging.New(width, height, background)

	panelW := width / 4
	panelH := height / 2
	for i, c := range blockColors {
		panel := imaging.New(panelW, panelH, c)
		x := (i + 1) * width / 5
		img = imaging.Paste(img, panel, image.Pt(x-panelW/2, height/8))
	}

	for y := 3 * height / 4; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

// WritePNG saves a synthetic PNG at path, creating parent directories.
func WritePNG(path string, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return imaging.Save(TestImage(width, height), path)
}

// WriteJPEG saves a synthetic JPEG at path with the given quality,
// creating parent directories.
func WriteJPEG(path string, width, height, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return imaging.Save(TestImage(width, height), path, imaging.JPEGQuality(quality))
}
