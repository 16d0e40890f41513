package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"nitscrape/internal/types"
)

// ReadFile loads a previously exported CSV back into memory. Columns are
// matched by header name, so column order does not matter. Structural
// problems (missing id, unparseable timestamp) fail the read; damaged
// counter or list cells degrade to zero values instead.
func ReadFile(path string) ([]types.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["tweet_id"]; !ok {
		return nil, fmt.Errorf("%s: missing tweet_id column", path)
	}

	var posts []types.Post
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		p, err := decodeRow(col, rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func decodeRow(col map[string]int, rec []string) (types.Post, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var p types.Post
	p.ID = get("tweet_id")
	if p.ID == "" {
		return p, errors.New("empty tweet_id")
	}

	created, err := time.Parse(TimeLayout, get("created_at"))
	if err != nil {
		return p, fmt.Errorf("bad created_at: %w", err)
	}
	p.CreatedAt = created

	p.Text = get("text")
	p.Lang = get("lang")
	p.AuthorToken = get("user_id_hashed")
	p.ReplyToID = get("reply_to_id")
	p.RetweetCount = atoiOrZero(get("retweet_count"))
	p.LikeCount = atoiOrZero(get("like_count"))
	p.CommentCount = atoiOrZero(get("comment_count"))
	p.IsReply = boolOrFalse(get("is_reply"))
	p.IsRetweet = boolOrFalse(get("is_retweet"))
	p.IsQuote = boolOrFalse(get("is_quote"))
	p.URLs = stringList(get("urls"))
	p.Hashtags = stringList(get("hashtags"))
	p.Mentions = stringList(get("mentions"))
	p.Media = mediaList(get("media"))
	return p, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func boolOrFalse(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func stringList(cell string) []string {
	var list []string
	if err := json.Unmarshal([]byte(cell), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func mediaList(cell string) []types.MediaItem {
	var list []types.MediaItem
	if err := json.Unmarshal([]byte(cell), &list); err != nil || list == nil {
		return []types.MediaItem{}
	}
	return list
}
