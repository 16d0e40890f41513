package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	lru "github.com/hashicorp/golang-lru/v2"

	"nitscrape/internal/types"
)

// Items that cannot yield a record are skipped with one of these.
var (
	ErrNoPermalink = errors.New("no resolvable permalink")
	ErrNoBody      = errors.New("no body element")
)

var (
	statusIDPattern = regexp.MustCompile(`/status/(\d+)`)
	hashtagPattern  = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
)

// Cache bounds. Permalinks and language guesses churn with every page,
// handle hashes repeat constantly.
const (
	idCacheSize   = 10000
	langCacheSize = 10000
	hashCacheSize = 1000
)

// feedTimeLayout matches date titles like "Jan 2, 2026 · 1:45 PM UTC" once
// the separator and zone suffix are stripped.
const feedTimeLayout = "Jan 2, 2006 3:04 PM"

// Extractor turns raw timeline items into Post records. Each instance owns
// its caches, so concurrent crawls never share state.
type Extractor struct {
	ids    *lru.Cache[string, string]
	langs  *lru.Cache[string, string]
	hashes *lru.Cache[string, string]
}

// NewExtractor returns an extractor with empty caches.
func NewExtractor() *Extractor {
	ids, _ := lru.New[string, string](idCacheSize)
	langs, _ := lru.New[string, string](langCacheSize)
	hashes, _ := lru.New[string, string](hashCacheSize)
	return &Extractor{ids: ids, langs: langs, hashes: hashes}
}

// ResolveID extracts the numeric status ID from a permalink such as
// "/someuser/status/1234567890#m".
func (e *Extractor) ResolveID(permalink string) (string, bool) {
	if permalink == "" {
		return "", false
	}
	if id, ok := e.ids.Get(permalink); ok {
		return id, true
	}
	m := statusIDPattern.FindStringSubmatch(permalink)
	if m == nil {
		return "", false
	}
	e.ids.Add(permalink, m[1])
	return m[1], true
}

// HashHandle returns the stable pseudonymous token recorded in place of the
// account handle.
func (e *Extractor) HashHandle(handle string) string {
	if tok, ok := e.hashes.Get(handle); ok {
		return tok
	}
	sum := sha256.Sum256([]byte(handle))
	tok := hex.EncodeToString(sum[:])[:16]
	e.hashes.Add(handle, tok)
	return tok
}

// DetectLang guesses the post language, defaulting to English whenever the
// detector is unsure.
func (e *Extractor) DetectLang(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}
	if lang, ok := e.langs.Get(text); ok {
		return lang
	}
	info := whatlanggo.Detect(text)
	lang := info.Lang.Iso6391()
	if lang == "" || !info.IsReliable() {
		lang = "en"
	}
	e.langs.Add(text, lang)
	return lang
}

// Extract builds a full Post from a raw item. capturedAt anchors the
// timestamp fallback for items whose date attribute cannot be parsed.
func (e *Extractor) Extract(raw RawItem, handle string, capturedAt time.Time) (types.Post, error) {
	id, ok := e.ResolveID(raw.Permalink)
	if !ok {
		return types.Post{}, ErrNoPermalink
	}
	if !raw.HasBody {
		return types.Post{}, ErrNoBody
	}

	text := strings.ReplaceAll(strings.TrimSpace(raw.Body), `"`, "'")

	post := types.Post{
		ID:           id,
		Text:         text,
		CreatedAt:    parseCreatedAt(raw.DateTitle, capturedAt),
		Lang:         e.DetectLang(text),
		AuthorToken:  e.HashHandle(handle),
		RetweetCount: parseCount(raw.Retweets),
		LikeCount:    parseCount(raw.Likes),
		CommentCount: parseCount(raw.Comments),
		IsReply:      raw.IsReply,
		IsRetweet:    raw.IsRetweet,
		IsQuote:      raw.IsQuote,
		URLs:         raw.URLs,
		Hashtags:     hashtagPattern.FindAllString(text, -1),
		Mentions:     raw.Mentions,
	}

	if raw.IsReply {
		if replyID, ok := e.ResolveID(raw.ReplyToHref); ok {
			post.ReplyToID = replyID
		}
	}

	for _, img := range raw.Images {
		post.Media = append(post.Media, types.MediaItem{Kind: types.MediaImage, URL: img.Src, Alt: img.Alt})
	}
	for i := 0; i < raw.VideoCount; i++ {
		post.Media = append(post.Media, types.MediaItem{Kind: types.MediaVideo})
	}

	// Lists must marshal as [] rather than null downstream.
	if post.URLs == nil {
		post.URLs = []string{}
	}
	if post.Hashtags == nil {
		post.Hashtags = []string{}
	}
	if post.Mentions == nil {
		post.Mentions = []string{}
	}
	if post.Media == nil {
		post.Media = []types.MediaItem{}
	}

	return post, nil
}

// parseCreatedAt parses a permalink title attribute. Unparseable values fall
// back to capture time, which loses the real posting time but keeps the
// record.
func parseCreatedAt(title string, capturedAt time.Time) time.Time {
	if title == "" {
		return capturedAt
	}
	if datePart, timePart, found := strings.Cut(title, "·"); found {
		combined := strings.TrimSpace(datePart) + " " + strings.TrimSpace(strings.ReplaceAll(timePart, " UTC", ""))
		if ts, err := time.Parse(feedTimeLayout, combined); err == nil {
			return ts
		}
	}
	return capturedAt
}

// parseCount converts compact counters like "1,234", "1.2K" or "3M" to
// integers. Anything unparseable counts as zero.
func parseCount(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	if strings.Contains(s, "k") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "k", "")), 64)
		if err != nil {
			return 0
		}
		return int(v * 1000)
	}
	if strings.Contains(s, "m") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "m", "")), 64)
		if err != nil {
			return 0
		}
		return int(v * 1_000_000)
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
