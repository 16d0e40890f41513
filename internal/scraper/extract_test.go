package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nitscrape/internal/types"
)

func TestResolveID(t *testing.T) {
	ex := NewExtractor()

	for _, tc := range []struct {
		permalink string
		id        string
		ok        bool
	}{
		{"/naval/status/1234567890#m", "1234567890", true},
		{"/i/status/42", "42", true},
		{"", "", false},
		{"/naval/with_replies", "", false},
		{"/search?q=golang", "", false},
	} {
		id, ok := ex.ResolveID(tc.permalink)
		require.Equal(t, tc.ok, ok, "permalink %q", tc.permalink)
		require.Equal(t, tc.id, id, "permalink %q", tc.permalink)
	}

	// second resolution comes from the cache and must agree
	id, ok := ex.ResolveID("/naval/status/1234567890#m")
	require.True(t, ok)
	require.Equal(t, "1234567890", id)
}

func TestHashHandle(t *testing.T) {
	ex := NewExtractor()

	tok := ex.HashHandle("naval")
	require.Equal(t, "a839ee0a1d14bee0", tok)
	require.Equal(t, tok, ex.HashHandle("naval"))
	require.NotEqual(t, tok, ex.HashHandle("somebody"))
}

func TestDetectLang(t *testing.T) {
	ex := NewExtractor()

	require.Equal(t, "en", ex.DetectLang(""))
	require.Equal(t, "en", ex.DetectLang("   \n "))
	require.Equal(t, "ja", ex.DetectLang("今日はとても良い天気ですね。明日も晴れるといいですね。"))
	require.Equal(t, "en", ex.DetectLang("The quick brown fox jumps over the lazy dog every single morning."))
}

func TestParseCount(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int
	}{
		{"", 0},
		{"42", 42},
		{"1,234", 1234},
		{" 89 ", 89},
		{"1.2K", 1200},
		{"1.2 k", 1200},
		{"3M", 3_000_000},
		{"2.5m", 2_500_000},
		{"abc", 0},
		{"K", 0},
	} {
		require.Equal(t, tc.want, parseCount(tc.in), "input %q", tc.in)
	}
}

func TestParseCreatedAt(t *testing.T) {
	capturedAt := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	got := parseCreatedAt("Jan 2, 2026 · 1:45 PM UTC", capturedAt)
	require.Equal(t, time.Date(2026, 1, 2, 13, 45, 0, 0, time.UTC), got)

	got = parseCreatedAt("Sep 14, 2025 · 10:03 AM UTC", capturedAt)
	require.Equal(t, time.Date(2025, 9, 14, 10, 3, 0, 0, time.UTC), got)

	// anything unparseable falls back to capture time
	require.Equal(t, capturedAt, parseCreatedAt("", capturedAt))
	require.Equal(t, capturedAt, parseCreatedAt("yesterday", capturedAt))
	require.Equal(t, capturedAt, parseCreatedAt("Jan 2, 2026", capturedAt))
}

func TestExtract(t *testing.T) {
	ex := NewExtractor()
	capturedAt := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	raw := RawItem{
		Permalink:   "/naval/status/555#m",
		DateTitle:   "Jan 2, 2026 · 1:45 PM UTC",
		HasBody:     true,
		Body:        `  Building "great" things with #Go and #OpenSource  `,
		IsReply:     true,
		ReplyToHref: "/somebody/status/444#m",
		URLs:        []string{"https://example.com/post"},
		Mentions:    []string{"@somebody"},
		Images:      []RawImage{{Src: "/pic/a.jpg", Alt: "a chart"}},
		VideoCount:  1,
		Comments:    "3",
		Retweets:    "89",
		Likes:       "1.2K",
	}

	post, err := ex.Extract(raw, "naval", capturedAt)
	require.NoError(t, err)

	require.Equal(t, "555", post.ID)
	require.Equal(t, "Building 'great' things with #Go and #OpenSource", post.Text)
	require.Equal(t, time.Date(2026, 1, 2, 13, 45, 0, 0, time.UTC), post.CreatedAt)
	require.Equal(t, ex.DetectLang(post.Text), post.Lang)
	require.Equal(t, "a839ee0a1d14bee0", post.AuthorToken)
	require.Equal(t, 89, post.RetweetCount)
	require.Equal(t, 1200, post.LikeCount)
	require.Equal(t, 3, post.CommentCount)
	require.True(t, post.IsReply)
	require.Equal(t, "444", post.ReplyToID)
	require.Equal(t, []string{"https://example.com/post"}, post.URLs)
	require.Equal(t, []string{"#Go", "#OpenSource"}, post.Hashtags)
	require.Equal(t, []string{"@somebody"}, post.Mentions)
	require.Equal(t, []types.MediaItem{
		{Kind: types.MediaImage, URL: "/pic/a.jpg", Alt: "a chart"},
		{Kind: types.MediaVideo},
	}, post.Media)
}

func TestExtractNormalizesNilLists(t *testing.T) {
	ex := NewExtractor()

	post, err := ex.Extract(RawItem{
		Permalink: "/naval/status/1#m",
		HasBody:   true,
		Body:      "plain text",
	}, "naval", time.Now())
	require.NoError(t, err)

	require.Equal(t, []string{}, post.URLs)
	require.Equal(t, []string{}, post.Hashtags)
	require.Equal(t, []string{}, post.Mentions)
	require.Equal(t, []types.MediaItem{}, post.Media)
}

func TestExtractFallsBackToCaptureTime(t *testing.T) {
	ex := NewExtractor()
	capturedAt := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	post, err := ex.Extract(RawItem{
		Permalink: "/naval/status/2#m",
		HasBody:   true,
		Body:      "undated",
	}, "naval", capturedAt)
	require.NoError(t, err)
	require.True(t, post.CreatedAt.Equal(capturedAt))
}

func TestExtractErrors(t *testing.T) {
	ex := NewExtractor()

	_, err := ex.Extract(RawItem{Permalink: "/naval/with_replies", HasBody: true, Body: "x"}, "naval", time.Now())
	require.ErrorIs(t, err, ErrNoPermalink)

	_, err = ex.Extract(RawItem{Permalink: "/naval/status/3#m", HasBody: false}, "naval", time.Now())
	require.ErrorIs(t, err, ErrNoBody)
}
