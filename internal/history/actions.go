// Package history implements the `history` command: listing past batch
// runs and their per-title outcomes from the local SQLite database.
package history

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/nvalle/mangapress/pkg/db"
)

// HistoryAction lists recent batches, or the per-title outcomes of one
// batch when --batch is given.
func HistoryAction(c *cli.Context) error {
	var database *db.DB
	var err error
	if c.IsSet("db") {
		database, err = db.OpenAt(c.String("db"))
	} else {
		database, err = db.Open()
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if c.IsSet("batch") {
		return printBatchTitles(database, int64(c.Int("batch")))
	}

	batches, err := database.ListBatches(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list batches: %w", err)
	}

	if len(batches) == 0 {
		fmt.Println("No batches found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-7s %-6s %-12s %-7s %-9s %-30s\n",
		"ID", "Started", "Titles", "Done", "Quarantined", "Failed", "Seconds", "Input Folder")
	fmt.Println(strings.Repeat("-", 110))

	for _, b := range batches {
		fmt.Printf("%-6d %-20s %-7d %-6d %-12d %-7d %-9.1f %-30s\n",
			b.BatchID,
			b.StartedAt.Format("2006-01-02 15:04:05"),
			b.TitleCount,
			b.DoneCount,
			b.QuarantinedCount,
			b.FailedCount,
			b.DurationSeconds,
			b.InputDir,
		)
	}

	fmt.Printf("\nTotal: %d batches\n", len(batches))
	fmt.Printf("\nTip: Use 'mangapress history --batch <id>' to see per-title outcomes\n")

	return nil
}

func printBatchTitles(database *db.DB, batchID int64) error {
	if batchID == 0 {
		latest, err := database.LatestBatchID()
		if err != nil {
			return err
		}
		if latest == 0 {
			fmt.Println("No batches found")
			return nil
		}
		batchID = latest
	}

	titles, err := database.GetBatchTitles(batchID)
	if err != nil {
		return fmt.Errorf("failed to get batch titles: %w", err)
	}

	if len(titles) == 0 {
		fmt.Printf("Batch %d has no recorded titles\n", batchID)
		return nil
	}

	fmt.Printf("%-30s %-12s %-16s %-6s %s\n", "Title", "Outcome", "Error Kind", "Pages", "Output")
	fmt.Println(strings.Repeat("-", 110))

	for _, t := range titles {
		name := t.DisplayName
		if name == "" {
			name = t.SourcePath
		}
		fmt.Printf("%-30s %-12s %-16s %-6d %s\n", name, t.Outcome, t.ErrorKind, t.PageCount, t.OutputPath)
		if t.ErrorMessage != "" {
			fmt.Printf("    error: %s\n", t.ErrorMessage)
		}
		if t.CleanupWarning != "" {
			fmt.Printf("    cleanup warning: %s\n", t.CleanupWarning)
		}
	}

	return nil
}
