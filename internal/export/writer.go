// Package export writes post collections to CSV and reads them back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"nitscrape/internal/types"
)

// Mode selects how an export resolves filename collisions.
type Mode string

// Recognized modes.
const (
	ModeTimestamp Mode = "timestamp"
	ModeIncrement Mode = "increment"
	ModeAsk       Mode = "ask"
	ModeMerge     Mode = "merge"
)

// ParseMode maps a user-supplied name onto a mode. Unknown names report
// false and fall back to ModeTimestamp.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTimestamp, ModeIncrement, ModeAsk, ModeMerge:
		return Mode(s), true
	}
	return ModeTimestamp, false
}

// ErrNothingToExport reports an empty post set.
var ErrNothingToExport = errors.New("no posts to export")

// Header is the canonical CSV column order.
var Header = []string{
	"tweet_id", "text", "created_at", "lang", "user_id_hashed",
	"retweet_count", "like_count", "comment_count",
	"is_reply", "reply_to_id", "is_retweet", "is_quote",
	"urls", "hashtags", "mentions", "media",
}

// TimeLayout is how created_at is rendered in CSV files.
const TimeLayout = "2006-01-02 15:04:05"

const stampLayout = "20060102_150405"

// Writer exports crawled posts for one account.
type Writer struct {
	// Dir is the export directory. Empty means the working directory.
	Dir string
	// Overwrite is consulted in ask mode when the target exists. Returning
	// false (or leaving it nil) falls back to a timestamped filename.
	Overwrite func(path string) bool
	// Now stamps filenames; tests pin it.
	Now func() time.Time
}

// Write exports posts for handle under the given mode and returns the path
// written.
func (w *Writer) Write(posts []types.Post, handle string, mode Mode) (string, error) {
	if len(posts) == 0 {
		return "", ErrNothingToExport
	}
	if w.Dir != "" {
		if err := os.MkdirAll(w.Dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create export dir: %w", err)
		}
	}

	base := handle + "_tweets"
	rows := posts
	var path string

	switch mode {
	case ModeIncrement:
		path = w.resolve(base + ".csv")
		for counter := 1; fileExists(path); counter++ {
			path = w.resolve(fmt.Sprintf("%s_%d.csv", base, counter))
		}
	case ModeAsk:
		path = w.resolve(base + ".csv")
		if fileExists(path) && !w.confirm(path) {
			path = w.resolve(fmt.Sprintf("%s_%s.csv", base, w.now().Format(stampLayout)))
			log.Printf("[export] keeping existing file, saving as %s", filepath.Base(path))
		}
	case ModeMerge:
		path = w.resolve(base + ".csv")
		rows = w.merge(path, posts)
	default:
		path = w.resolve(fmt.Sprintf("%s_%s.csv", base, w.now().Format(stampLayout)))
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// merge folds fresh posts into whatever the existing file holds, newest
// first. An unreadable existing file degrades to exporting just the fresh
// posts.
func (w *Writer) merge(path string, fresh []types.Post) []types.Post {
	existing, err := ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[export] could not load existing file %s: %v", path, err)
	}

	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.ID] = true
	}

	merged := existing
	added := 0
	for _, p := range fresh {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		merged = append(merged, p)
		added++
	}
	log.Printf("[export] merging %d new posts into %d existing", added, len(existing))

	types.SortNewestFirst(merged)
	return merged
}

func (w *Writer) resolve(name string) string {
	if w.Dir == "" {
		return name
	}
	return filepath.Join(w.Dir, name)
}

func (w *Writer) confirm(path string) bool {
	if w.Overwrite == nil {
		return false
	}
	return w.Overwrite(path)
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeCSV(path string, posts []types.Post) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range posts {
		if err := cw.Write(EncodeRow(p)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// EncodeRow flattens one post into Header order. List fields are embedded
// as JSON text so the CSV stays one row per post.
func EncodeRow(p types.Post) []string {
	return []string{
		p.ID,
		p.Text,
		p.CreatedAt.Format(TimeLayout),
		p.Lang,
		p.AuthorToken,
		strconv.Itoa(p.RetweetCount),
		strconv.Itoa(p.LikeCount),
		strconv.Itoa(p.CommentCount),
		strconv.FormatBool(p.IsReply),
		p.ReplyToID,
		strconv.FormatBool(p.IsRetweet),
		strconv.FormatBool(p.IsQuote),
		jsonCell(p.URLs),
		jsonCell(p.Hashtags),
		jsonCell(p.Mentions),
		jsonMediaCell(p.Media),
	}
}

func jsonCell(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func jsonMediaCell(media []types.MediaItem) string {
	if media == nil {
		media = []types.MediaItem{}
	}
	data, err := json.Marshal(media)
	if err != nil {
		return "[]"
	}
	return string(data)
}
