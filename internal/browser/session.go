package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Session owns one browser tab for the lifetime of a crawl. Acquire it when
// the crawl starts, thread it through the feed, and Close it on every exit
// path.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession launches the browser and prepares a tab. The session inherits
// cancellation from parent, so interrupting the caller tears the tab down
// mid-action. Requests pin Accept-Language to English because date
// extraction depends on English month names.
func NewSession(parent context.Context, headless bool) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, Options(headless)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		tabCancel()
		allocCancel()
	}

	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Session{ctx: tabCtx, cancel: cancel}, nil
}

// Run executes actions against the session's tab.
func (s *Session) Run(actions ...chromedp.Action) error {
	return chromedp.Run(s.ctx, actions...)
}

// RunFor executes actions under a deadline. The returned error wraps
// context.DeadlineExceeded when the deadline fired first.
func (s *Session) RunFor(d time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, d)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// Close releases the tab and the browser process.
func (s *Session) Close() {
	s.cancel()
}
