package document

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/nvalle/mangapress/pkg/imaging"

	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

// PDFContainer implements Container on top of pdfcpu: pages are the
// embedded raster images of the source PDF, re-encoded pages become a
// fresh image-per-page PDF, and compression is pdfcpu optimization.
type PDFContainer struct {
	license string
	conf    *model.Configuration
}

// NewPDFContainer builds the pdfcpu-backed container. The license key is
// a required credential; callers treat a missing key as a fatal
// configuration error.
func NewPDFContainer(licenseKey string) (*PDFContainer, error) {
	if strings.TrimSpace(licenseKey) == "" {
		return nil, fmt.Errorf("document container requires a license key")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PDFContainer{
		license: licenseKey,
		conf:    conf,
	}, nil
}

// Decode validates the source document and extracts its raster pages
// into workDir, returning them decoded in original page order.
func (c *PDFContainer) Decode(src, workDir string) ([]imaging.Page, error) {
	if err := api.ValidateFile(src, c.conf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, src, err)
	}

	imgDir := filepath.Join(workDir, "extracted")
	if err := os.MkdirAll(imgDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := api.ExtractImagesFile(src, imgDir, nil, c.conf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, src, err)
	}

	entries, err := os.ReadDir(imgDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// pdfcpu names extracted images by page number, so lexical order is
	// reading order.
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	pages := make([]imaging.Page, 0, len(names))
	for _, name := range names {
		img, err := decodeImageFile(filepath.Join(imgDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
		}
		pages = append(pages, imaging.Page{Index: len(pages), Img: img})
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s: no raster pages found", ErrDecode, src)
	}
	return pages, nil
}

// Encode writes the page sequence as JPEG files under workDir and
// imports them into a new single-image-per-page PDF at outFile.
func (c *PDFContainer) Encode(pages []imaging.Page, workDir, outFile string) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages to encode", ErrEncode)
	}

	pageDir := filepath.Join(workDir, "pages")
	if err := os.MkdirAll(pageDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	files := make([]string, 0, len(pages))
	for i, page := range pages {
		path := filepath.Join(pageDir, fmt.Sprintf("page-%04d.jpg", i))
		if err := writeJPEG(path, page.Img); err != nil {
			return fmt.Errorf("%w: page %d: %v", ErrEncode, i, err)
		}
		files = append(files, path)
	}

	if err := api.ImportImagesFile(files, outFile, nil, c.conf); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// Compress optimizes the assembled document into dst.
func (c *PDFContainer) Compress(src, dst string) error {
	if err := api.OptimizeFile(src, dst, c.conf); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCompress, src, err)
	}
	return nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
