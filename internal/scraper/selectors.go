package scraper

// Nitter DOM selectors
// These are isolated here because mirror instances drift between Nitter
// versions. Update these when scraping breaks.

const (
	// Feed selectors
	TimelineItem = `.timeline-item`
	ShowMoreLink = `.show-more a`

	// Item content selectors
	ItemDate    = `.tweet-date a`
	ItemBody    = `.tweet-content`
	ItemLinks   = `.tweet-content a`
	ReplyHeader = `.replying-to`

	// Engagement selectors
	CommentIcon = `.icon-comment`
	RetweetIcon = `.icon-retweet`
	LikeIcon    = `.icon-heart`

	// Item type indicators
	RetweetIndicator = `.retweet-header`
	QuoteIndicator   = `.quote`

	// Attachment selectors
	ImageAttachment = `.attachment.image img`
	VideoAttachment = `.attachment.video`
)

// Common wait conditions
const (
	WaitForItems = TimelineItem
)
