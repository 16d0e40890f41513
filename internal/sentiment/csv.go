package sentiment

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"nitscrape/internal/export"
)

// ResultHeader is the export header with the sentiment columns appended.
var ResultHeader = append(append([]string{}, export.Header...),
	"cleaned_text", "neg_score", "neu_score", "pos_score", "compound_score", "sentiment",
)

// WriteCSV writes scored posts with sentiment columns appended to the
// standard layout.
func WriteCSV(path string, scored []Scored) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create results dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(ResultHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range scored {
		row := append(export.EncodeRow(s.Post),
			s.Cleaned,
			formatScore(s.Scores.Negative),
			formatScore(s.Scores.Neutral),
			formatScore(s.Scores.Positive),
			formatScore(s.Scores.Compound),
			s.Label,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", s.Post.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// AnalyzeFile scores every post in a previously exported CSV and writes the
// results alongside the original columns.
func (a *Analyzer) AnalyzeFile(inputPath, outputPath string) ([]Scored, Summary, error) {
	posts, err := export.ReadFile(inputPath)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	scored := a.Analyze(posts)
	if err := WriteCSV(outputPath, scored); err != nil {
		return nil, Summary{}, err
	}
	return scored, Summarize(scored), nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
