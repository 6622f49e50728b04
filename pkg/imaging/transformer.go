package imaging

import (
	"image"
	"image/draw"
)

// Transformer trims blank margin from page edges and splits pages at
// long interior blank gaps.
type Transformer struct {
	// MinPageHeight is the floor below which a crop is skipped rather
	// than producing a degenerate page.
	MinPageHeight int
	// MinGap is the minimum interior blank run length that qualifies as
	// a split point.
	MinGap int
}

// CropBounds computes the surviving row range [top, bottom) after
// trimming the blank runs that touch the top and bottom edges.
func (t Transformer) CropBounds(height int, runs []BlankRun) (top, bottom int) {
	top, bottom = 0, height
	for _, r := range runs {
		if r.Start == 0 {
			top = r.End
		}
		if r.End == height {
			bottom = r.Start
		}
	}
	return top, bottom
}

// Crop re-slices the page to its crop bounds. The original page is
// returned unchanged when no edge-touching run exists or when trimming
// would leave less than MinPageHeight rows. Cropping an already-cropped
// page is a no-op.
func (t Transformer) Crop(img image.Image, runs []BlankRun) image.Image {
	height := img.Bounds().Dy()
	top, bottom := t.CropBounds(height, runs)
	if top == 0 && bottom == height {
		return img
	}
	if bottom <= top || bottom-top < t.MinPageHeight {
		return img
	}
	return cropRows(img, top, bottom)
}

// SplitPoints returns the row offsets at which the page should be cut:
// the midpoint of every strictly interior blank run of at least MinGap
// rows. Offsets are strictly increasing and within (0, height).
func (t Transformer) SplitPoints(height int, runs []BlankRun) []int {
	var points []int
	for _, r := range runs {
		if r.Start == 0 || r.End == height {
			continue
		}
		if r.Len() < t.MinGap {
			continue
		}
		points = append(points, r.Start+r.Len()/2)
	}
	return points
}

// Split partitions the page into len(points)+1 sibling pages in original
// top-to-bottom order, each keeping the full page width. With no
// qualifying interior run the input page is the single output.
func (t Transformer) Split(img image.Image, runs []BlankRun) []image.Image {
	height := img.Bounds().Dy()
	points := t.SplitPoints(height, runs)
	if len(points) == 0 {
		return []image.Image{img}
	}

	parts := make([]image.Image, 0, len(points)+1)
	prev := 0
	for _, p := range append(points, height) {
		parts = append(parts, cropRows(img, prev, p))
		prev = p
	}
	return parts
}

// cropRows copies rows [top, bottom) into a fresh image so the source
// page can be released independently of its slices.
func cropRows(img image.Image, top, bottom int) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), bottom-top))
	draw.Draw(out, out.Bounds(), img, image.Pt(b.Min.X, b.Min.Y+top), draw.Src)
	return out
}
