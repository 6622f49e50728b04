package batch

import (
	"errors"

	"github.com/nvalle/mangapress/pkg/document"
)

// Sentinel errors for job stages not covered by the document container.
var (
	// ErrTransform marks degenerate page geometry discovered mid-transform.
	ErrTransform = errors.New("page transform failed")
	// ErrIO marks filesystem failures while assembling or cleaning up.
	ErrIO = errors.New("filesystem operation failed")
)

// errorKind maps a job error to the stable kind recorded in results and
// batch history.
func errorKind(err error) string {
	switch {
	case errors.Is(err, document.ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrTransform):
		return "transform_error"
	case errors.Is(err, document.ErrEncode):
		return "encode_error"
	case errors.Is(err, document.ErrCompress):
		return "compress_error"
	case errors.Is(err, ErrIO):
		return "io_error"
	default:
		return "internal_error"
	}
}
