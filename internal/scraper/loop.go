package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"nitscrape/internal/types"
)

// Checkpoint cadence and stall tolerance.
const (
	checkpointEvery = 5
	maxStalls       = 3
)

// Outcome classifies how a crawl ended.
type Outcome int

const (
	Done Outcome = iota
	Interrupted
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Interrupted:
		return "interrupted"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ProgressStore persists crawl progress between runs. Load reports a missing
// checkpoint with os.ErrNotExist.
type ProgressStore interface {
	Save(posts []types.Post, seenIDs []string, step int) error
	Load() ([]types.Post, []string, int, error)
	Clear() error
}

// Result carries everything a finished crawl hands back. Posts are sorted
// newest first only when the crawl ran to completion.
type Result struct {
	Posts   []types.Post
	Outcome Outcome
	Steps   int
}

// Config sets the bounds of one crawl.
type Config struct {
	Handle string
	Steps  int
	Filter TypeFilter
}

// Crawler runs the incremental crawl state machine over a feed.
type Crawler struct {
	feed  Feed
	store ProgressStore
	ex    *Extractor
	cfg   Config
}

// NewCrawler assembles a crawler with a fresh extractor.
func NewCrawler(feed Feed, store ProgressStore, cfg Config) *Crawler {
	return &Crawler{feed: feed, store: store, ex: NewExtractor(), cfg: cfg}
}

// Run drives the crawl to one of its terminal states. Interruption through
// ctx is not an error: progress is saved and the partial result returned.
// Failures also save progress before surfacing the cause.
func (c *Crawler) Run(ctx context.Context) (Result, error) {
	st := c.resume()
	pol := NewPolicy(c.cfg.Filter, st.SeenIDs, c.ex)

	if err := c.feed.Open(ctx, c.cfg.Handle); err != nil {
		return c.bail(ctx, st, err, "failed to open timeline")
	}

	for st.Cursor < c.cfg.Steps {
		if ctx.Err() != nil {
			return c.interrupt(st)
		}

		items, err := c.feed.Items(ctx)
		if err != nil {
			return c.bail(ctx, st, err, "failed waiting for timeline items")
		}

		capturedAt := time.Now()
		newThisStep := 0
		for _, raw := range items {
			id, verdict := pol.Admit(raw)
			if verdict != Accept {
				continue
			}
			post, err := c.ex.Extract(raw, c.cfg.Handle, capturedAt)
			if err != nil {
				log.Printf("[crawl] skipping item %s: %v", id, err)
				continue
			}
			st.Posts = append(st.Posts, post)
			newThisStep++
		}

		st.Cursor++

		if st.Cursor%checkpointEvery == 0 || st.Cursor == c.cfg.Steps {
			c.save(st)
			log.Printf("[crawl] checkpoint saved: %d posts, step %d/%d", len(st.Posts), st.Cursor, c.cfg.Steps)
		}

		if newThisStep == 0 {
			st.Stalls++
			if st.Stalls >= maxStalls {
				log.Printf("[crawl] no new posts for %d consecutive steps, stopping early", maxStalls)
				break
			}
		} else {
			st.Stalls = 0
		}

		moved, err := c.feed.Advance(ctx)
		if err != nil {
			return c.bail(ctx, st, err, "failed to advance timeline")
		}
		if !moved {
			st.Stalls++
		}
	}

	c.save(st)
	types.SortNewestFirst(st.Posts)
	if err := c.store.Clear(); err != nil {
		log.Printf("[crawl] could not remove checkpoint: %v", err)
	}
	log.Printf("[crawl] finished with %d posts after %d steps", len(st.Posts), st.Cursor)
	return Result{Posts: st.Posts, Outcome: Done, Steps: st.Cursor}, nil
}

// resume restarts from the checkpoint when one is present. An unreadable
// checkpoint logs and falls through to a fresh start rather than aborting.
func (c *Crawler) resume() *CrawlState {
	st := NewCrawlState()
	posts, seen, step, err := c.store.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[crawl] could not load checkpoint: %v, starting fresh", err)
		}
		return st
	}
	st.Posts = posts
	for _, id := range seen {
		st.SeenIDs[id] = true
	}
	st.Cursor = step
	log.Printf("[crawl] resuming from step %d with %d posts already collected", step, len(posts))
	return st
}

// save persists progress. Failures are logged, not fatal.
func (c *Crawler) save(st *CrawlState) {
	if err := c.store.Save(st.Posts, st.SeenList(), st.Cursor); err != nil {
		log.Printf("[crawl] checkpoint save failed: %v", err)
	}
}

func (c *Crawler) interrupt(st *CrawlState) (Result, error) {
	c.save(st)
	log.Printf("[crawl] interrupted at step %d with %d posts, progress saved", st.Cursor, len(st.Posts))
	return Result{Posts: st.Posts, Outcome: Interrupted, Steps: st.Cursor}, nil
}

// bail saves progress and classifies the terminal state: context
// cancellation means interrupted, anything else is a failure.
func (c *Crawler) bail(ctx context.Context, st *CrawlState, cause error, msg string) (Result, error) {
	if errors.Is(cause, context.Canceled) || ctx.Err() != nil {
		return c.interrupt(st)
	}
	c.save(st)
	log.Printf("[crawl] %s at step %d, %d posts saved: %v", msg, st.Cursor, len(st.Posts), cause)
	return Result{Posts: st.Posts, Outcome: Failed, Steps: st.Cursor}, fmt.Errorf("%s: %w", msg, cause)
}
