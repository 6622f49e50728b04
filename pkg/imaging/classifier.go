package imaging

import "image"

// Classifier decides whether a page's geometry and color statistics look
// like a multi-panel manga page or a single-image webcomic strip.
type Classifier struct {
	// MaxAspect is the upper bound of the manga-typical width/height band.
	MaxAspect float64
	// ColorTolerance is the channel spread beyond which a pixel counts
	// as colored rather than grayscale.
	ColorTolerance uint8
	// MinColorFraction is the colored-pixel fraction above which a page
	// counts as color-rich.
	MinColorFraction float64
}

// Classification is the verdict plus the statistics that produced it.
// The statistics are kept for logging and tests only.
type Classification struct {
	MangaLike     bool
	AspectRatio   float64
	ColorFraction float64
}

// Classify computes the aspect ratio and colored-pixel fraction of a page.
// A page stops being manga-like only when its aspect ratio falls outside
// the manga band AND it is color-rich; either signal alone is not enough.
func (c Classifier) Classify(img image.Image) Classification {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return Classification{MangaLike: true}
	}

	aspect := float64(width) / float64(height)

	colored := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if channelSpread(r, g, b) > uint32(c.ColorTolerance) {
				colored++
			}
		}
	}
	fraction := float64(colored) / float64(width*height)

	return Classification{
		MangaLike:     !(aspect > c.MaxAspect && fraction > c.MinColorFraction),
		AspectRatio:   aspect,
		ColorFraction: fraction,
	}
}

func channelSpread(r, g, b uint32) uint32 {
	lo, hi := r, r
	for _, v := range [2]uint32{g, b} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return (hi - lo) >> 8
}
