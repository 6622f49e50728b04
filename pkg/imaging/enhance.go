package imaging

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// FitToScreen scales a page onto a width x height canvas, preserving the
// aspect ratio and centering the result. The canvas background is black
// or white, whichever gives more contrast against the page's average
// brightness. Non-positive dimensions disable fitting.
func FitToScreen(img image.Image, width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return img
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return img
	}

	imgAspect := float64(bounds.Dx()) / float64(bounds.Dy())
	screenAspect := float64(width) / float64(height)

	var w, h int
	if imgAspect > screenAspect {
		w = width
		h = int(float64(width) / imgAspect)
	} else {
		h = height
		w = int(float64(height) * imgAspect)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(backgroundFor(img)), image.Point{}, draw.Src)

	x := (width - w) / 2
	y := (height - h) / 2
	xdraw.CatmullRom.Scale(canvas, image.Rect(x, y, x+w, y+h), img, bounds, xdraw.Over, nil)
	return canvas
}

// AverageBrightness returns the mean luminance of a page, 0-255.
func AverageBrightness(img image.Image) float64 {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return 0
	}

	var sum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += uint64(luminance(r, g, b))
		}
	}
	return float64(sum) / float64(total)
}

// backgroundFor picks the backing color that blends with the page tone:
// dark pages get a black canvas, bright pages a white one.
func backgroundFor(img image.Image) color.Color {
	avg := AverageBrightness(img)
	if 255-avg > avg {
		return color.Black
	}
	return color.White
}
