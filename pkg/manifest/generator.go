package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nvalle/mangapress/pkg/mapreduce"
	"github.com/nvalle/mangapress/pkg/storage"
)

// TitleResult carries the per-title outcome into the manifest. It is
// defined here rather than in the batch package to avoid a circular
// dependency.
type TitleResult struct {
	Source     string
	Name       string
	Outcome    string
	OutputPath string
	Pages      int
	Error      error
	ErrorKind  string
}

// GenerateSummary writes the batch manifest into dir and returns its
// path. Output file sizes are read through the storage layer; a missing
// output file just leaves the size empty.
func GenerateSummary(dir, inputDir string, results []TitleResult, s *storage.Storage) (string, error) {
	m := BatchManifest{
		GeneratedAt: time.Now().Format(time.RFC3339),
		InputDir:    inputDir,
		TotalTitles: len(results),
	}

	var kindCounts []map[string]int
	for _, result := range results {
		summary := TitleSummary{
			Source:  result.Source,
			Name:    result.Name,
			Outcome: result.Outcome,
		}

		switch result.Outcome {
		case "failed":
			m.Failed++
			summary.ErrorKind = result.ErrorKind
			if result.Error != nil {
				summary.ErrorMessage = result.Error.Error()
			}
			kindCounts = append(kindCounts, map[string]int{result.ErrorKind: 1})
		default:
			if result.Outcome == "quarantined" {
				m.Quarantined++
			} else {
				m.Done++
			}
			summary.OutputPath = result.OutputPath
			summary.Pages = result.Pages

			if result.OutputPath != "" {
				if stats, err := s.GetFileStats(result.OutputPath); err == nil {
					summary.SizeBytes = stats.SizeBytes
				}
			}
		}

		m.Results = append(m.Results, summary)
	}
	m.ErrorKinds = mapreduce.TopCounts(mapreduce.Reduce(kindCounts), 10)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating manifest dir: %w", err)
	}

	manifestPath := filepath.Join(dir, fmt.Sprintf("batch-summary-%s.json", time.Now().Format("2006-01-02")))
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(manifestPath, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return manifestPath, nil
}
