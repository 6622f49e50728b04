package imaging

import "image"

// BlankRun is a maximal range of blank rows [Start, End) within a page.
type BlankRun struct {
	Start int
	End   int
}

// Len returns the number of rows in the run.
func (r BlankRun) Len() int {
	return r.End - r.Start
}

// Detector scans a page for horizontal blank space. A row is blank when
// every pixel is lighter than LightThreshold (white gutter) or every pixel
// is darker than DarkThreshold (black gutter). Runs shorter than
// MinRunLength are treated as noise and dropped.
type Detector struct {
	LightThreshold uint8
	DarkThreshold  uint8
	MinRunLength   int
}

// DetectRuns scans rows top to bottom once and returns the ordered
// sequence of maximal blank runs. Identical input always yields an
// identical sequence.
func (d Detector) DetectRuns(img image.Image) []BlankRun {
	height := img.Bounds().Dy()

	var runs []BlankRun
	start := -1
	for y := 0; y < height; y++ {
		if d.blankRow(img, y) {
			if start < 0 {
				start = y
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, BlankRun{Start: start, End: y})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, BlankRun{Start: start, End: height})
	}

	filtered := runs[:0]
	for _, r := range runs {
		if r.Len() >= d.MinRunLength {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// blankRow reports whether every pixel in row y is above the light
// threshold or every pixel is below the dark threshold. Mixed rows are
// content.
func (d Detector) blankRow(img image.Image, y int) bool {
	bounds := img.Bounds()
	allLight, allDark := true, true
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r, g, b, _ := img.At(x, bounds.Min.Y+y).RGBA()
		lum := luminance(r, g, b)
		if lum <= d.LightThreshold {
			allLight = false
		}
		if lum >= d.DarkThreshold {
			allDark = false
		}
		if !allLight && !allDark {
			return false
		}
	}
	return allLight || allDark
}
