package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nvalle/mangapress/models"
	"github.com/nvalle/mangapress/pkg/document"
	"github.com/nvalle/mangapress/pkg/fsops"
	"github.com/nvalle/mangapress/pkg/imaging"
)

// fakeContainer serves canned page images per source path and writes
// tiny marker files instead of real documents.
type fakeContainer struct {
	pages   map[string][]image.Image
	corrupt map[string]error

	mu      sync.Mutex
	decodes map[string]int
}

func (f *fakeContainer) Decode(src, workDir string) ([]imaging.Page, error) {
	f.mu.Lock()
	if f.decodes == nil {
		f.decodes = make(map[string]int)
	}
	f.decodes[src]++
	f.mu.Unlock()

	if err := f.corrupt[src]; err != nil {
		return nil, err
	}
	imgs := f.pages[src]
	if len(imgs) == 0 {
		return nil, fmt.Errorf("%w: no pages in %s", document.ErrDecode, src)
	}
	pages := make([]imaging.Page, len(imgs))
	for i, img := range imgs {
		pages[i] = imaging.Page{Index: i, Img: img}
	}
	return pages, nil
}

func (f *fakeContainer) Encode(pages []imaging.Page, workDir, outFile string) error {
	return os.WriteFile(outFile, []byte(fmt.Sprintf("pdf:%d", len(pages))), 0644)
}

func (f *fakeContainer) Compress(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("%w: %v", document.ErrCompress, err)
	}
	return os.WriteFile(dst, data, 0644)
}

// rowImage builds a page one row per rune: 'g' gray content, 'w' white.
func rowImage(width int, rows string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, len(rows)))
	for y, r := range rows {
		c := color.RGBA{128, 128, 128, 255}
		if r == 'w' {
			c = color.RGBA{255, 255, 255, 255}
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func contentImage() image.Image {
	return rowImage(10, strings.Repeat("g", 20))
}

func testConfig(t *testing.T) *models.Config {
	t.Helper()
	cfg := models.DefaultConfig()
	cfg.InputFolder = t.TempDir()
	cfg.OutputFolder = filepath.Join(t.TempDir(), "out")
	cfg.QuarantineFolder = filepath.Join(t.TempDir(), "quarantine")
	cfg.WorkerCount = 2
	cfg.MinRunLength = 3
	cfg.MinGap = 5
	cfg.MinPageHeight = 5
	cfg.ScreenWidth = 0
	cfg.ScreenHeight = 0
	cfg.ExplicitKeywords = []string{"adult"}
	cfg.LicenseKey = "test-key"
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTitleJob_Success(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/My Title v02.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {contentImage(), contentImage()},
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeDone {
		t.Fatalf("Outcome = %v, want done (error: %v)", res.Outcome, res.Error)
	}
	if res.Name != "My Title" {
		t.Errorf("Name = %q, want %q", res.Name, "My Title")
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", res.PageCount)
	}
	want := filepath.Join(cfg.OutputFolder, "My_Title.pdf")
	if res.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
	}
	if data, err := os.ReadFile(want); err != nil || string(data) != "pdf:2" {
		t.Errorf("output file = %q, %v; want pdf:2", data, err)
	}
	if j.State() != StateCleaned {
		t.Errorf("terminal state = %v, want cleaned", j.State())
	}
}

func TestTitleJob_SplitPageRaisesCount(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/Long Strip.pdf"
	// One tall page with an interior gap wide enough to split on.
	strip := rowImage(10, strings.Repeat("g", 10)+strings.Repeat("w", 6)+strings.Repeat("g", 10))
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {strip},
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeDone {
		t.Fatalf("Outcome = %v, want done (error: %v)", res.Outcome, res.Error)
	}
	if res.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2 after splitting one source page", res.PageCount)
	}
}

func TestTitleJob_DecodeFailure(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/Broken.pdf"
	container := &fakeContainer{corrupt: map[string]error{
		src: fmt.Errorf("%w: corrupt xref table", document.ErrDecode),
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if res.ErrorKind != "decode_error" {
		t.Errorf("ErrorKind = %q, want decode_error", res.ErrorKind)
	}
	if res.Error == nil || !errors.Is(res.Error, document.ErrDecode) {
		t.Errorf("Error = %v, want wrapped ErrDecode", res.Error)
	}
	if res.OutputPath != "" {
		t.Errorf("OutputPath = %q, want empty for a failed title", res.OutputPath)
	}
}

func TestTitleJob_ExplicitTitleQuarantined(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/Adult_Fun v01.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {contentImage()},
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeQuarantined {
		t.Fatalf("Outcome = %v, want quarantined (error: %v)", res.Outcome, res.Error)
	}
	if !strings.HasPrefix(res.OutputPath, cfg.QuarantineFolder) {
		t.Errorf("OutputPath = %q, want inside quarantine folder %q", res.OutputPath, cfg.QuarantineFolder)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("quarantined file missing: %v", err)
	}
	// Nothing may leak into the normal output folder.
	if entries, _ := os.ReadDir(cfg.OutputFolder); len(entries) != 0 {
		t.Errorf("output folder has %d entries, want 0", len(entries))
	}
}

func TestTitleJob_WorkDirRemoved(t *testing.T) {
	cfg := testConfig(t)
	workRoot := t.TempDir()
	src := "/scans/Some Title.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {contentImage()},
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, workRoot, src)
	res := j.Run(context.Background())

	if res.CleanupWarning != "" {
		t.Errorf("CleanupWarning = %q, want empty", res.CleanupWarning)
	}
	entries, err := os.ReadDir(workRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work root still holds %d entries after cleanup", len(entries))
	}
}

func TestTitleJob_WorkDirRemovedAfterFailure(t *testing.T) {
	cfg := testConfig(t)
	workRoot := t.TempDir()
	src := "/scans/Broken.pdf"
	container := &fakeContainer{corrupt: map[string]error{
		src: fmt.Errorf("%w: truncated", document.ErrDecode),
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, workRoot, src)
	j.Run(context.Background())

	if entries, _ := os.ReadDir(workRoot); len(entries) != 0 {
		t.Errorf("work root still holds %d entries after failed job", len(entries))
	}
}

// failingCleanupFS breaks RemoveAll to exercise the cleanup-warning path.
type failingCleanupFS struct {
	fsops.OS
}

func (failingCleanupFS) RemoveAll(path string) error {
	return errors.New("device busy")
}

func TestTitleJob_CleanupFailureIsWarningOnly(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/Sticky.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {contentImage()},
	}}

	j := NewTitleJob(cfg, testLogger(), container, failingCleanupFS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeDone {
		t.Fatalf("Outcome = %v, want done despite cleanup failure (error: %v)", res.Outcome, res.Error)
	}
	if res.CleanupWarning == "" {
		t.Error("CleanupWarning is empty, want the cleanup error")
	}
}

func TestTitleJob_NameCollisionGetsSuffix(t *testing.T) {
	cfg := testConfig(t)
	first := "/scans/a/My Title.pdf"
	second := "/scans/b/My Title.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		first:  {contentImage()},
		second: {contentImage()},
	}}

	r1 := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), first).Run(context.Background())
	r2 := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), second).Run(context.Background())

	if r1.Outcome != OutcomeDone || r2.Outcome != OutcomeDone {
		t.Fatalf("outcomes = %v/%v, want done/done", r1.Outcome, r2.Outcome)
	}
	if r1.OutputPath == r2.OutputPath {
		t.Fatalf("both titles wrote %q, want distinct paths", r1.OutputPath)
	}
	want := filepath.Join(cfg.OutputFolder, "My_Title-2.pdf")
	if r2.OutputPath != want {
		t.Errorf("second OutputPath = %q, want %q", r2.OutputPath, want)
	}
}

func TestTitleJob_ZeroExtentPageFailsTransform(t *testing.T) {
	cfg := testConfig(t)
	src := "/scans/Empty.pdf"
	container := &fakeContainer{pages: map[string][]image.Image{
		src: {image.NewRGBA(image.Rect(0, 0, 0, 0))},
	}}

	j := NewTitleJob(cfg, testLogger(), container, fsops.OS{}, t.TempDir(), src)
	res := j.Run(context.Background())

	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if res.ErrorKind != "transform_error" {
		t.Errorf("ErrorKind = %q, want transform_error", res.ErrorKind)
	}
}
