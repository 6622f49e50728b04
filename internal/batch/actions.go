package batch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/nvalle/mangapress/models"
	"github.com/nvalle/mangapress/pkg/caching"
	"github.com/nvalle/mangapress/pkg/db"
	"github.com/nvalle/mangapress/pkg/document"
	"github.com/nvalle/mangapress/pkg/fsops"
	"github.com/nvalle/mangapress/pkg/manifest"
	"github.com/nvalle/mangapress/pkg/storage"
)

// resumeCacheTTL bounds how long a finished title can be skipped on
// rerun before it is reprocessed anyway.
const resumeCacheTTL = 24 * time.Hour

// RunAction is the `run` command: load config, process every title in
// the input folder, record history, and print a summary. The process
// exits 0 after any completed batch regardless of per-title failures;
// only configuration problems are fatal.
func RunAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("configuration error: %v", err), 2)
	}
	applyFlags(c, config)

	if err := config.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	container, err := document.NewPDFContainer(config.LicenseKey)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%v: %v", models.ErrConfig, err), 2)
	}

	// History is supplementary; a missing database never blocks a batch.
	database, err := openHistory(config)
	if err != nil {
		logger.Warn("batch history disabled", "error", err)
		database = nil
	} else {
		defer database.Close()
	}

	var cache *caching.Cache
	if c.Bool("resume") {
		cache, err = caching.NewCache(filepath.Join(os.TempDir(), "mangapress-cache"), resumeCacheTTL)
		if err != nil {
			logger.Warn("resume cache disabled", "error", err)
		}
	}

	result, err := Run(c.Context, logger, config, Deps{
		Container: container,
		FS:        fsops.OS{},
		Cache:     cache,
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	elapsed := time.Since(startTime).Seconds()
	recordBatch(logger, database, config.InputFolder, result, elapsed)
	writeManifest(logger, config, result)

	output := buildOutput(result, elapsed)
	var data []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		data, marshalErr = json.MarshalIndent(output, "", "  ")
	} else {
		data, marshalErr = yaml.Marshal(output)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal summary", "error", marshalErr)
		return nil
	}
	fmt.Println(string(data))

	return nil
}

func openHistory(config *models.Config) (*db.DB, error) {
	if config.HistoryDB != "" {
		return db.OpenAt(config.HistoryDB)
	}
	return db.Open()
}

// loadConfig reads the configured YAML file, falling back to a local
// config.yaml when present, then to pure defaults.
func loadConfig(c *cli.Context) (*models.Config, error) {
	if c.IsSet("config") {
		return models.LoadConfig(c.String("config"))
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return models.LoadConfig("config.yaml")
	}
	return models.DefaultConfig(), nil
}

func applyFlags(c *cli.Context, config *models.Config) {
	if c.IsSet("input") {
		config.InputFolder = c.String("input")
	}
	if c.IsSet("output") {
		config.OutputFolder = c.String("output")
	}
	if c.IsSet("quarantine") {
		config.QuarantineFolder = c.String("quarantine")
	}
	if c.IsSet("workers") {
		config.WorkerCount = c.Int("workers")
	}
	if c.IsSet("license-key") {
		config.LicenseKey = c.String("license-key")
	}
	if c.IsSet("keywords") {
		config.ExplicitKeywords = strings.Split(c.String("keywords"), ",")
	}
}

// recordBatch persists the run into the history database. Failures are
// logged and otherwise ignored.
func recordBatch(logger *slog.Logger, database *db.DB, inputDir string, result *BatchResult, elapsed float64) {
	if database == nil {
		return
	}

	batchID, err := database.InsertBatch(inputDir)
	if err != nil {
		logger.Warn("failed to record batch", "error", err)
		return
	}

	for _, r := range result.Titles {
		row := db.TitleRow{
			SourcePath:     r.SourcePath,
			DisplayName:    r.Name,
			Outcome:        string(r.Outcome),
			ErrorKind:      r.ErrorKind,
			OutputPath:     r.OutputPath,
			PageCount:      r.PageCount,
			CleanupWarning: r.CleanupWarning,
		}
		if r.Error != nil {
			row.ErrorMessage = r.Error.Error()
		}
		if _, err := database.InsertTitle(batchID, row); err != nil {
			logger.Warn("failed to record title result", "source", r.SourcePath, "error", err)
		}
	}

	if err := database.FinalizeBatch(batchID, result.Done, result.Quarantined, result.Failed, elapsed); err != nil {
		logger.Warn("failed to finalize batch record", "error", err)
	}
}

// writeManifest drops a JSON overview of the run next to the output
// files. Like history, it is supplementary and never fails the batch.
func writeManifest(logger *slog.Logger, config *models.Config, result *BatchResult) {
	entries := make([]manifest.TitleResult, 0, len(result.Titles))
	for _, r := range result.Titles {
		entries = append(entries, manifest.TitleResult{
			Source:     r.SourcePath,
			Name:       r.Name,
			Outcome:    string(r.Outcome),
			OutputPath: r.OutputPath,
			Pages:      r.PageCount,
			Error:      r.Error,
			ErrorKind:  r.ErrorKind,
		})
	}

	path, err := manifest.GenerateSummary(config.OutputFolder, config.InputFolder, entries, &storage.Storage{})
	if err != nil {
		logger.Warn("failed to write batch manifest", "error", err)
		return
	}
	logger.Info("batch manifest written", "path", path)
}

func buildOutput(result *BatchResult, elapsed float64) FinalOutput {
	titles := make([]TitleOutput, 0, len(result.Titles))
	for _, r := range result.Titles {
		entry := TitleOutput{
			Source:         r.SourcePath,
			Name:           r.Name,
			Outcome:        string(r.Outcome),
			OutputPath:     r.OutputPath,
			Pages:          r.PageCount,
			ErrorKind:      r.ErrorKind,
			CleanupWarning: r.CleanupWarning,
		}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		titles = append(titles, entry)
	}

	status := "success"
	if result.Failed > 0 {
		status = "partial_failure"
	}

	return FinalOutput{
		Status:  status,
		Results: titles,
		Stats: Stats{
			Titles:           len(result.Titles),
			Done:             result.Done,
			Quarantined:      result.Quarantined,
			Failed:           result.Failed,
			TotalTimeSeconds: elapsed,
		},
	}
}
