package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"nitscrape/internal/browser"
)

// ErrFeedTimeout reports that no timeline items appeared within the bounded
// wait. The crawl treats it as a failure and preserves the checkpoint.
var ErrFeedTimeout = errors.New("timed out waiting for timeline items")

// Feed is the paging surface the crawl loop drives. The production
// implementation talks to a browser tab; tests substitute fakes.
type Feed interface {
	// Open navigates to an account's timeline and lets it settle.
	Open(ctx context.Context, handle string) error
	// Items captures every currently rendered timeline item in DOM order,
	// waiting a bounded time for the first one to appear.
	Items(ctx context.Context) ([]RawItem, error)
	// Advance requests the next page, clicking the load-more control when
	// present and falling back to scrolling. It reports false when the page
	// height did not change, which suggests the feed is exhausted.
	Advance(ctx context.Context) (bool, error)
}

// FeedTimings groups the pacing knobs for a mirror.
type FeedTimings struct {
	PageLoad      time.Duration // budget for the initial navigation
	InitialSettle time.Duration // pause after the first navigation
	Settle        time.Duration // pause after each pagination
	Items         time.Duration // bounded wait for timeline items
}

// DefaultFeedTimings returns pacing that public mirrors tolerate.
func DefaultFeedTimings() FeedTimings {
	return FeedTimings{
		PageLoad:      30 * time.Second,
		InitialSettle: 3 * time.Second,
		Settle:        1500 * time.Millisecond,
		Items:         10 * time.Second,
	}
}

// NitterFeed drives an account timeline on a Nitter mirror through a
// browser session.
type NitterFeed struct {
	sess    *browser.Session
	baseURL string
	t       FeedTimings

	lastHeight float64
}

// NewNitterFeed wires a feed to an already-acquired session. The session
// should descend from the same context the crawl runs on so cancellation
// reaches the tab.
func NewNitterFeed(sess *browser.Session, baseURL string, t FeedTimings) *NitterFeed {
	return &NitterFeed{sess: sess, baseURL: strings.TrimRight(baseURL, "/"), t: t}
}

// Open navigates to the account's timeline and records the initial page
// height for exhaustion tracking.
func (f *NitterFeed) Open(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := f.baseURL + "/" + handle
	if err := f.sess.RunFor(f.t.PageLoad, chromedp.Navigate(u)); err != nil {
		return fmt.Errorf("failed to open %s: %w", u, err)
	}
	if err := f.sess.Run(
		chromedp.Sleep(f.t.InitialSettle),
		chromedp.Evaluate(`document.body.scrollHeight`, &f.lastHeight),
	); err != nil {
		return fmt.Errorf("failed to settle %s: %w", u, err)
	}
	return nil
}

// Items waits for timeline items and snapshots them in one Evaluate round
// trip.
func (f *NitterFeed) Items(ctx context.Context) ([]RawItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.sess.RunFor(f.t.Items, chromedp.WaitReady(WaitForItems, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrFeedTimeout, f.t.Items)
		}
		return nil, err
	}
	var items []RawItem
	if err := f.sess.Run(chromedp.Evaluate(captureItemsJS, &items)); err != nil {
		return nil, fmt.Errorf("failed to capture timeline items: %w", err)
	}
	return items, nil
}

// Advance clicks the load-more control when one is rendered, otherwise
// scrolls to the bottom. The height comparison only applies on the scroll
// path; a clicked control always counts as movement.
func (f *NitterFeed) Advance(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var clicked bool
	if err := f.sess.Run(chromedp.Evaluate(clickShowMoreJS, &clicked)); err != nil {
		return false, fmt.Errorf("failed to paginate: %w", err)
	}
	if clicked {
		if err := f.sess.Run(chromedp.Sleep(f.t.Settle)); err != nil {
			return false, err
		}
		return true, nil
	}

	var height float64
	if err := f.sess.Run(chromedp.Evaluate(`document.body.scrollHeight`, &height)); err != nil {
		return false, fmt.Errorf("failed to read scroll height: %w", err)
	}
	grew := height != f.lastHeight
	if grew {
		f.lastHeight = height
	}
	if err := f.sess.Run(
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(f.t.Settle),
	); err != nil {
		return false, fmt.Errorf("failed to scroll: %w", err)
	}
	return grew, nil
}
