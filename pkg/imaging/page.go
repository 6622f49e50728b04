// Package imaging implements the page segmentation core: blank-run
// detection, crop and split transforms, the manga/webcomic classifier,
// and screen fitting. Everything here is pure computation over decoded
// raster pages; no I/O.
package imaging

import "image"

// Page is one decoded raster page of a title, tagged with its position in
// the document so concurrent transforms can be reassembled in order.
type Page struct {
	Index int
	Img   image.Image
}

// luminance maps a color to 8-bit perceptual brightness.
func luminance(r, g, b uint32) uint8 {
	return uint8(((299*r + 587*g + 114*b) / 1000) >> 8)
}
