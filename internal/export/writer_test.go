package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nitscrape/internal/types"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
}

func samplePosts() []types.Post {
	return []types.Post{
		{
			ID:           "200",
			Text:         "newer post with a link",
			CreatedAt:    time.Date(2026, 2, 13, 18, 0, 0, 0, time.UTC),
			Lang:         "en",
			AuthorToken:  "abcdef0123456789",
			RetweetCount: 2,
			LikeCount:    15,
			CommentCount: 1,
			URLs:         []string{"https://example.com/x"},
			Hashtags:     []string{"#go"},
			Mentions:     []string{},
			Media:        []types.MediaItem{{Kind: types.MediaImage, URL: "/pic/1.jpg", Alt: "a chart"}},
		},
		{
			ID:          "100",
			Text:        "older post",
			CreatedAt:   time.Date(2026, 2, 12, 8, 0, 0, 0, time.UTC),
			Lang:        "en",
			AuthorToken: "abcdef0123456789",
			IsReply:     true,
			ReplyToID:   "99",
			URLs:        []string{},
			Hashtags:    []string{},
			Mentions:    []string{"@someone"},
			Media:       []types.MediaItem{},
		},
	}
}

func TestWriteRejectsEmpty(t *testing.T) {
	w := &Writer{Dir: t.TempDir()}
	_, err := w.Write(nil, "naval", ModeTimestamp)
	require.ErrorIs(t, err, ErrNothingToExport)
}

func TestWriteTimestampMode(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Now: fixedNow}

	path, err := w.Write(samplePosts(), "naval", ModeTimestamp)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets_20260214_093000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, strings.Join(Header, ","), lines[0])
}

func TestWriteIncrementMode(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Now: fixedNow}
	posts := samplePosts()

	first, err := w.Write(posts, "naval", ModeIncrement)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets.csv"), first)

	second, err := w.Write(posts, "naval", ModeIncrement)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets_1.csv"), second)

	third, err := w.Write(posts, "naval", ModeIncrement)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets_2.csv"), third)
}

func TestWriteAskMode(t *testing.T) {
	dir := t.TempDir()
	posts := samplePosts()

	// no existing file: no question asked
	w := &Writer{Dir: dir, Now: fixedNow, Overwrite: func(string) bool {
		t.Fatal("should not be consulted when the target does not exist")
		return false
	}}
	path, err := w.Write(posts, "naval", ModeAsk)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets.csv"), path)

	// accepted overwrite keeps the canonical name
	asked := ""
	w = &Writer{Dir: dir, Now: fixedNow, Overwrite: func(p string) bool {
		asked = p
		return true
	}}
	path, err = w.Write(posts[:1], "naval", ModeAsk)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets.csv"), path)
	require.Equal(t, filepath.Join(dir, "naval_tweets.csv"), asked)

	// declined (nil prompt) falls back to a timestamped name
	w = &Writer{Dir: dir, Now: fixedNow}
	path, err = w.Write(posts, "naval", ModeAsk)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets_20260214_093000.csv"), path)
}

func TestWriteMergeMode(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Now: fixedNow}
	existing := samplePosts()

	path, err := w.Write(existing, "naval", ModeMerge)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "naval_tweets.csv"), path)

	fresh := []types.Post{
		existing[0], // duplicate id must not double up
		{
			ID:        "300",
			Text:      "newest",
			CreatedAt: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC),
			URLs:      []string{},
			Hashtags:  []string{},
			Mentions:  []string{},
			Media:     []types.MediaItem{},
		},
	}
	path, err = w.Write(fresh, "naval", ModeMerge)
	require.NoError(t, err)

	merged, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, merged, 3)
	require.Equal(t, "300", merged[0].ID)
	require.Equal(t, "200", merged[1].ID)
	require.Equal(t, "100", merged[2].ID)
}

func TestEncodeRow(t *testing.T) {
	p := samplePosts()[0]
	row := EncodeRow(p)
	require.Len(t, row, len(Header))

	require.Equal(t, "200", row[0])
	require.Equal(t, "newer post with a link", row[1])
	require.Equal(t, "2026-02-13 18:00:00", row[2])
	require.Equal(t, "en", row[3])
	require.Equal(t, "abcdef0123456789", row[4])
	require.Equal(t, "2", row[5])
	require.Equal(t, "15", row[6])
	require.Equal(t, "1", row[7])
	require.Equal(t, "false", row[8])
	require.Equal(t, "", row[9])
	require.Equal(t, "false", row[10])
	require.Equal(t, "false", row[11])
	require.JSONEq(t, `["https://example.com/x"]`, row[12])
	require.JSONEq(t, `["#go"]`, row[13])
	require.JSONEq(t, `[]`, row[14])
	require.JSONEq(t, `[{"type":"image","url":"/pic/1.jpg","alt":"a chart"}]`, row[15])
}

func TestEncodeRowNilListsStayEmpty(t *testing.T) {
	row := EncodeRow(types.Post{ID: "1"})
	require.Equal(t, "[]", row[12])
	require.Equal(t, "[]", row[13])
	require.Equal(t, "[]", row[14])
	require.Equal(t, "[]", row[15])
}
