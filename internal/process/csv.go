package process

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nitscrape/internal/export"
	"nitscrape/internal/textclean"
)

// ProcessedHeader is the exported column order plus the derived columns.
var ProcessedHeader = append(append([]string{}, export.Header...),
	"text_cleaned",
	"text_length",
	"word_count",
	"urls_count",
	"hashtags_count",
	"mentions_count",
	"media_count",
	"date",
	"hour",
	"day_of_week",
	"total_engagement",
)

// WriteCSV writes processed rows to path, creating parent directories as
// needed.
func WriteCSV(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ProcessedHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		rec := append(export.EncodeRow(r.Post),
			r.Cleaned,
			strconv.Itoa(r.TextLength),
			strconv.Itoa(r.WordCount),
			strconv.Itoa(r.URLCount),
			strconv.Itoa(r.HashtagCount),
			strconv.Itoa(r.MentionCount),
			strconv.Itoa(r.MediaCount),
			r.Date,
			strconv.Itoa(r.Hour),
			r.DayOfWeek,
			strconv.Itoa(r.TotalEngagement),
		)
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// ProcessFile reads an exported CSV, runs the cleaning pipeline and writes
// <name>_processed.csv into outputDir. It returns the processed batch and
// the output path.
func ProcessFile(inputPath, outputDir string, cfg textclean.Config) (Result, string, error) {
	posts, err := export.ReadFile(inputPath)
	if err != nil {
		return Result{}, "", err
	}

	res := Run(posts, cfg)

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(outputDir, base+"_processed.csv")
	if err := WriteCSV(outPath, res.Rows); err != nil {
		return Result{}, "", err
	}
	return res, outPath, nil
}
