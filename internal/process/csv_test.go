package process

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nitscrape/internal/export"
	"nitscrape/internal/textclean"
	"nitscrape/internal/types"
)

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	posts := []types.Post{
		{ID: "1", Text: "Interesting thoughts on #golang", CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC), LikeCount: 3},
		{ID: "2", Text: "https://example.com", CreatedAt: time.Date(2026, 2, 1, 13, 0, 0, 0, time.UTC)},
	}
	w := &export.Writer{Dir: dir}
	inputPath, err := w.Write(posts, "somebody", export.ModeMerge)
	require.NoError(t, err)

	res, outPath, err := ProcessFile(inputPath, dir, textclean.Standard())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "somebody_tweets_processed.csv"), outPath)
	require.Len(t, res.Rows, 1)
	require.Equal(t, 1, res.DroppedEmpty)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, ProcessedHeader, records[0])

	// derived cells sit after the exported columns
	base := len(export.Header)
	require.Equal(t, "interesting thoughts on golang", records[1][base])
	require.Equal(t, "2026-02-01", records[1][base+7])
	require.Equal(t, "12", records[1][base+8])
	require.Equal(t, "Sunday", records[1][base+9])
	require.Equal(t, "3", records[1][base+10])
}
