package imaging

import (
	"image"
	"image/color"
)

// makePage builds a synthetic page one row per rune:
// 'w' white, 'b' black, 'g' gray content, 'c' colored content,
// 'm' mixed white/black (never blank).
func makePage(width int, rows string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, r := range rows {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch r {
			case 'w':
				c = color.RGBA{255, 255, 255, 255}
			case 'b':
				c = color.RGBA{0, 0, 0, 255}
			case 'g':
				c = color.RGBA{128, 128, 128, 255}
			case 'c':
				c = color.RGBA{200, 40, 40, 255}
			case 'm':
				if x%2 == 0 {
					c = color.RGBA{255, 255, 255, 255}
				} else {
					c = color.RGBA{0, 0, 0, 255}
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// samePixels reports whether two images have identical bounds sizes and
// identical pixel values.
func samePixels(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if ar != br || ag != bg || abl != bbl {
				return false
			}
		}
	}
	return true
}

func testDetector() Detector {
	return Detector{LightThreshold: 240, DarkThreshold: 15, MinRunLength: 3}
}

func testTransformer() Transformer {
	return Transformer{MinPageHeight: 5, MinGap: 5}
}
