package types

import (
	"sort"
	"time"
)

// Media kinds recognized by the extractor.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Post represents a single extracted feed item.
type Post struct {
	ID           string      `json:"tweet_id"`
	Text         string      `json:"text"`
	CreatedAt    time.Time   `json:"created_at"`
	Lang         string      `json:"lang"`
	AuthorToken  string      `json:"user_id_hashed"`
	RetweetCount int         `json:"retweet_count"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	IsReply      bool        `json:"is_reply"`
	ReplyToID    string      `json:"reply_to_id"`
	IsRetweet    bool        `json:"is_retweet"`
	IsQuote      bool        `json:"is_quote"`
	URLs         []string    `json:"urls"`
	Hashtags     []string    `json:"hashtags"`
	Mentions     []string    `json:"mentions"`
	Media        []MediaItem `json:"media"`
}

// MediaItem is one attachment on a post. Video attachments are recorded
// by presence only, so URL may be empty.
type MediaItem struct {
	Kind string `json:"type"`
	URL  string `json:"url"`
	Alt  string `json:"alt"`
}

// Kind returns the post's classification. Retweet wins over quote,
// quote over reply, matching the order the markers are checked.
func (p Post) Kind() string {
	switch {
	case p.IsRetweet:
		return "retweet"
	case p.IsQuote:
		return "quote"
	case p.IsReply:
		return "reply"
	default:
		return "original"
	}
}

// TotalEngagement sums the three public counters.
func (p Post) TotalEngagement() int {
	return p.RetweetCount + p.LikeCount + p.CommentCount
}

// SortNewestFirst orders posts by creation time, newest first. The sort is
// stable so posts sharing a timestamp keep their relative order.
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
