package batch

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nvalle/mangapress/models"
	"github.com/nvalle/mangapress/pkg/document"
	"github.com/nvalle/mangapress/pkg/fsops"
	"github.com/nvalle/mangapress/pkg/imaging"
	"github.com/nvalle/mangapress/pkg/naming"
)

// State names the steps of the per-title pipeline.
type State string

const (
	StatePending      State = "pending"
	StateExtracting   State = "extracting"
	StateTransforming State = "transforming"
	StateCompressing  State = "compressing"
	StateAssembling   State = "assembling"
	StateDone         State = "done"
	StateQuarantined  State = "quarantined"
	StateFailed       State = "failed"
	StateCleaned      State = "cleaned"
)

// pageWorkers bounds the page-level fan-out within a single title job so
// one large title cannot starve sibling jobs of CPU.
const pageWorkers = 4

// TitleJob drives one title end to end:
// Pending -> Extracting -> Transforming -> Compressing -> Assembling ->
// {Done|Quarantined} -> Cleaned, with Failed absorbing any mid-flight
// error. Intermediate raster files live in a private working directory
// that exists only while the job runs.
type TitleJob struct {
	id     uuid.UUID
	source string
	name   string
	state  State

	cfg       *models.Config
	logger    *slog.Logger
	container document.Container
	fs        fsops.Filesystem
	workRoot  string

	detector    imaging.Detector
	transformer imaging.Transformer
	classifier  imaging.Classifier
	filter      naming.Filter
}

// NewTitleJob builds a job for one source document, deriving the display
// name and the segmentation parameters from config.
func NewTitleJob(cfg *models.Config, logger *slog.Logger, container document.Container, fs fsops.Filesystem, workRoot, source string) *TitleJob {
	return &TitleJob{
		id:        uuid.New(),
		source:    source,
		name:      naming.ExtractMangaName(source),
		state:     StatePending,
		cfg:       cfg,
		logger:    logger,
		container: container,
		fs:        fs,
		workRoot:  workRoot,
		detector: imaging.Detector{
			LightThreshold: uint8(cfg.LightThreshold),
			DarkThreshold:  uint8(cfg.DarkThreshold),
			MinRunLength:   cfg.MinRunLength,
		},
		transformer: imaging.Transformer{
			MinPageHeight: cfg.MinPageHeight,
			MinGap:        cfg.MinGap,
		},
		classifier: imaging.Classifier{
			MaxAspect:        cfg.MaxAspect,
			ColorTolerance:   uint8(cfg.ColorTolerance),
			MinColorFraction: cfg.MinColorFraction,
		},
		filter: naming.Filter{Keywords: cfg.ExplicitKeywords},
	}
}

// Name returns the derived display name of the title.
func (j *TitleJob) Name() string {
	return j.name
}

// State returns the job's current state.
func (j *TitleJob) State() State {
	return j.state
}

func (j *TitleJob) setState(s State) {
	j.state = s
	j.logger.Debug("state change", "title", j.name, "state", string(s))
}

// Run executes the full state machine and returns the terminal result.
// Cleanup of the working directory always runs, even after a failure;
// its own failure is reported as a warning on the result, never as a
// changed outcome.
func (j *TitleJob) Run(ctx context.Context) (res Result) {
	res = Result{SourcePath: j.source, Name: j.name}
	workDir := filepath.Join(j.workRoot, "mangapress-"+j.id.String())

	defer func() {
		if err := j.fs.RemoveAll(workDir); err != nil {
			res.CleanupWarning = err.Error()
			j.logger.Warn("cleanup failed", "title", j.name, "dir", workDir, "error", err)
		}
		j.setState(StateCleaned)
	}()

	if err := j.fs.MkdirAll(workDir); err != nil {
		j.fail(&res, fmt.Errorf("%w: %v", ErrIO, err))
		return res
	}

	j.setState(StateExtracting)
	pages, err := j.container.Decode(j.source, workDir)
	if err != nil {
		j.fail(&res, err)
		return res
	}

	j.setState(StateTransforming)
	output, err := j.transformPages(ctx, pages)
	if err != nil {
		j.fail(&res, err)
		return res
	}
	res.PageCount = len(output)

	explicit := j.filter.HasExplicitContent(j.name)

	j.setState(StateCompressing)
	assembled := filepath.Join(workDir, "assembled.pdf")
	if err := j.container.Encode(output, workDir, assembled); err != nil {
		j.fail(&res, err)
		return res
	}
	compressed := filepath.Join(workDir, "compressed.pdf")
	if err := j.container.Compress(assembled, compressed); err != nil {
		j.fail(&res, err)
		return res
	}

	j.setState(StateAssembling)
	destDir := j.cfg.OutputFolder
	outcome, terminal := OutcomeDone, StateDone
	if explicit {
		destDir = j.cfg.QuarantineFolder
		outcome, terminal = OutcomeQuarantined, StateQuarantined
	}
	final, err := j.fs.Move(compressed, destDir, naming.SanitizeFilename(j.name)+".pdf")
	if err != nil {
		j.fail(&res, fmt.Errorf("%w: %v", ErrIO, err))
		return res
	}

	j.setState(terminal)
	res.Outcome = outcome
	res.OutputPath = final
	j.logger.Info("title finished",
		"title", j.name,
		"outcome", string(outcome),
		"pages", res.PageCount,
		"output", final,
	)
	return res
}

// transformPages crops and splits every raw page with bounded
// parallelism, then reassembles the output sequence in original page
// order before split siblings are appended.
func (j *TitleJob) transformPages(ctx context.Context, pages []imaging.Page) ([]imaging.Page, error) {
	segments := make([][]image.Image, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			bounds := page.Img.Bounds()
			if bounds.Dx() == 0 || bounds.Dy() == 0 {
				return fmt.Errorf("%w: page %d has zero extent", ErrTransform, page.Index)
			}

			runs := j.detector.DetectRuns(page.Img)
			cropped := j.transformer.Crop(page.Img, runs)

			// Row offsets shift after cropping, so split works on a
			// fresh detection pass.
			runs = j.detector.DetectRuns(cropped)
			parts := j.transformer.Split(cropped, runs)

			// Advisory only: recorded for diagnostics, not routing.
			cls := j.classifier.Classify(cropped)
			j.logger.Debug("page classified",
				"title", j.name,
				"page", page.Index,
				"manga_like", cls.MangaLike,
				"aspect", cls.AspectRatio,
				"color_fraction", cls.ColorFraction,
			)

			if j.cfg.ScreenWidth > 0 && j.cfg.ScreenHeight > 0 {
				for k, part := range parts {
					parts[k] = imaging.FitToScreen(part, j.cfg.ScreenWidth, j.cfg.ScreenHeight)
				}
			}

			segments[i] = parts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// segments is indexed by original page position, so walking it in
	// order restores reading order regardless of completion order.
	var out []imaging.Page
	for _, parts := range segments {
		for _, img := range parts {
			out = append(out, imaging.Page{Index: len(out), Img: img})
		}
	}
	return out, nil
}

func (j *TitleJob) fail(res *Result, err error) {
	j.setState(StateFailed)
	res.Outcome = OutcomeFailed
	res.Error = err
	res.ErrorKind = errorKind(err)
	j.logger.Error("title failed",
		"title", j.name,
		"source", j.source,
		"kind", res.ErrorKind,
		"error", err,
	)
}
