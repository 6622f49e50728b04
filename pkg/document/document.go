// Package document is the container collaborator: it decodes a source
// document into raster pages, re-encodes a processed page sequence, and
// compresses the result. The pipeline only depends on the Container
// interface so tests can script outcomes without real documents.
package document

import (
	"errors"

	"github.com/nvalle/mangapress/pkg/imaging"
)

// Sentinel errors for container operations. Job results classify
// failures by matching these with errors.Is.
var (
	ErrDecode   = errors.New("document decode failed")
	ErrEncode   = errors.New("document encode failed")
	ErrCompress = errors.New("document compress failed")
)

// Container performs the document-format I/O for one title. Decode and
// Encode use workDir for intermediate raster files; the caller owns the
// directory and deletes it after the job reaches a terminal state.
type Container interface {
	Decode(src, workDir string) ([]imaging.Page, error)
	Encode(pages []imaging.Page, workDir, outFile string) error
	Compress(src, dst string) error
}
