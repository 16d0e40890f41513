// Package process enriches exported CSVs with cleaned text and derived
// columns for downstream analysis.
package process

import (
	"strings"
	"unicode/utf8"

	"nitscrape/internal/export"
	"nitscrape/internal/textclean"
	"nitscrape/internal/types"
)

// Row is one post plus its derived columns.
type Row struct {
	Post            types.Post
	Cleaned         string
	TextLength      int
	WordCount       int
	URLCount        int
	HashtagCount    int
	MentionCount    int
	MediaCount      int
	Date            string
	Hour            int
	DayOfWeek       string
	TotalEngagement int
}

// Result is a processed batch plus what was dropped on the way.
type Result struct {
	Rows         []Row
	DroppedEmpty int
	DroppedDupes int
}

// Run cleans every post and derives the analysis columns. Rows that clean
// to nothing are dropped, and of rows sharing a cleaned text only the first
// survives.
func Run(posts []types.Post, cfg textclean.Config) Result {
	var res Result
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		cleaned := textclean.Clean(p.Text, cfg)
		if cleaned == "" {
			res.DroppedEmpty++
			continue
		}
		if seen[cleaned] {
			res.DroppedDupes++
			continue
		}
		seen[cleaned] = true
		res.Rows = append(res.Rows, derive(p, cleaned))
	}
	return res
}

func derive(p types.Post, cleaned string) Row {
	return Row{
		Post:            p,
		Cleaned:         cleaned,
		TextLength:      utf8.RuneCountInString(cleaned),
		WordCount:       len(strings.Fields(cleaned)),
		URLCount:        len(p.URLs),
		HashtagCount:    len(p.Hashtags),
		MentionCount:    len(p.Mentions),
		MediaCount:      len(p.Media),
		Date:            p.CreatedAt.Format("2006-01-02"),
		Hour:            p.CreatedAt.Hour(),
		DayOfWeek:       p.CreatedAt.Weekday().String(),
		TotalEngagement: p.TotalEngagement(),
	}
}

// Summary describes a processed batch.
type Summary struct {
	Total           int
	DateRange       string
	AvgTextLength   float64
	AvgWordCount    float64
	TotalEngagement int
	Languages       map[string]int
	Kinds           map[string]int
}

// Summarize aggregates the derived columns. Kind buckets are exclusive:
// each post counts once under its Kind().
func Summarize(rows []Row) Summary {
	s := Summary{
		Total:     len(rows),
		Languages: make(map[string]int),
		Kinds:     make(map[string]int),
	}
	if len(rows) == 0 {
		return s
	}

	oldest, newest := rows[0].Post.CreatedAt, rows[0].Post.CreatedAt
	for _, r := range rows {
		s.AvgTextLength += float64(r.TextLength)
		s.AvgWordCount += float64(r.WordCount)
		s.TotalEngagement += r.TotalEngagement
		s.Languages[r.Post.Lang]++
		s.Kinds[r.Post.Kind()]++
		if r.Post.CreatedAt.Before(oldest) {
			oldest = r.Post.CreatedAt
		}
		if r.Post.CreatedAt.After(newest) {
			newest = r.Post.CreatedAt
		}
	}
	n := float64(len(rows))
	s.AvgTextLength /= n
	s.AvgWordCount /= n
	s.DateRange = oldest.Format(export.TimeLayout) + " to " + newest.Format(export.TimeLayout)
	return s
}
