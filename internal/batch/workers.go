package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/nvalle/mangapress/models"
	"github.com/nvalle/mangapress/pkg/caching"
	"github.com/nvalle/mangapress/pkg/document"
	"github.com/nvalle/mangapress/pkg/fsops"
	"github.com/nvalle/mangapress/pkg/naming"
)

// Deps bundles the external collaborators the scheduler hands to each
// title job.
type Deps struct {
	Container document.Container
	FS        fsops.Filesystem
	// WorkRoot is where per-job working directories are created.
	// Defaults to the system temp directory.
	WorkRoot string
	// Cache, when set, lets finished titles be skipped on a rerun.
	Cache *caching.Cache
}

// Run discovers every title document in the input folder and processes
// them with a fixed-size worker pool. Each title's outcome is recorded
// independently; one failed title never aborts the batch. Cancelling ctx
// stops dispatching new titles but lets in-flight jobs finish.
func Run(ctx context.Context, logger *slog.Logger, cfg *models.Config, deps Deps) (*BatchResult, error) {
	if deps.WorkRoot == "" {
		deps.WorkRoot = os.TempDir()
	}

	files, err := deps.FS.ListByExt(cfg.InputFolder, ".pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConfig, err)
	}

	logger.Info("starting batch",
		"title_count", len(files),
		"workers", cfg.WorkerCount,
		"input", cfg.InputFolder,
	)

	var wg sync.WaitGroup
	jobs := make(chan Job, len(files))
	results := make(chan Result, len(files))

	for w := 1; w <= cfg.WorkerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, cfg, deps, &wg, jobs, results)
	}

dispatch:
	for _, f := range files {
		select {
		case <-ctx.Done():
			logger.Warn("shutdown requested, remaining titles not dispatched")
			break dispatch
		case jobs <- Job{SourcePath: f}:
		}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("all workers finished")

	batch := &BatchResult{}
	for result := range results {
		batch.Titles = append(batch.Titles, result)
		switch result.Outcome {
		case OutcomeDone:
			batch.Done++
		case OutcomeQuarantined:
			batch.Quarantined++
		default:
			batch.Failed++
		}
	}

	// Workers finish in arbitrary order; keep the report deterministic.
	sort.Slice(batch.Titles, func(i, k int) bool {
		return batch.Titles[i].SourcePath < batch.Titles[k].SourcePath
	})
	return batch, nil
}

// worker consumes title jobs until the channel closes, sending one
// result per job.
func worker(ctx context.Context, id int, logger *slog.Logger, cfg *models.Config, deps Deps, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		if res, ok := cachedResult(deps.Cache, job.SourcePath); ok {
			logger.Info("title already processed, skipping", "worker_id", id, "source", job.SourcePath, "output", res.OutputPath)
			results <- res
			continue
		}

		logger.Info("worker started title", "worker_id", id, "source", job.SourcePath)
		j := NewTitleJob(cfg, logger, deps.Container, deps.FS, deps.WorkRoot, job.SourcePath)
		res := j.Run(ctx)

		if deps.Cache != nil && res.Outcome == OutcomeDone {
			if err := deps.Cache.Set(job.SourcePath, res.OutputPath); err != nil {
				logger.Warn("failed to record cache entry", "source", job.SourcePath, "error", err)
			}
		}
		results <- res
		logger.Info("worker finished title", "worker_id", id, "source", job.SourcePath)
	}
}

// cachedResult reuses a prior run's output when the cache still points
// at an existing file. Quarantined and failed titles are never cached,
// so they are always retried.
func cachedResult(cache *caching.Cache, source string) (Result, bool) {
	if cache == nil {
		return Result{}, false
	}
	outputPath, ok := cache.Get(source)
	if !ok {
		return Result{}, false
	}
	if _, err := os.Stat(outputPath); err != nil {
		return Result{}, false
	}
	return Result{
		SourcePath: source,
		Name:       naming.ExtractMangaName(source),
		Outcome:    OutcomeDone,
		OutputPath: outputPath,
	}, true
}
