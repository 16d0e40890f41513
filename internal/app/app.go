// Package app wires configuration to the crawl, processing and reporting
// flows the commands expose.
package app

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"nitscrape/internal/archive"
	"nitscrape/internal/browser"
	"nitscrape/internal/charts"
	"nitscrape/internal/checkpoint"
	"nitscrape/internal/config"
	"nitscrape/internal/export"
	"nitscrape/internal/process"
	"nitscrape/internal/scraper"
	"nitscrape/internal/sentiment"
	"nitscrape/internal/types"
)

// App holds the application state.
type App struct {
	cfg *config.Config
}

// New creates a new App instance.
func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// CrawlRequest names one account crawl.
type CrawlRequest struct {
	Handle   string
	Steps    int
	Filter   scraper.TypeFilter
	SaveMode export.Mode
	// Confirm decides whether an existing export may be overwritten in
	// ask mode. nil declines.
	Confirm func(path string) bool
}

// CrawlOutcome reports what a crawl produced.
type CrawlOutcome struct {
	Result  scraper.Result
	CSVPath string
}

// Crawl performs the full crawl -> export -> archive flow for one account.
// Partial results reach the CSV even when the crawl ends early.
func (a *App) Crawl(ctx context.Context, req CrawlRequest) (CrawlOutcome, error) {
	log.Printf("Crawling @%s (%d steps, %s filter)...", req.Handle, req.Steps, req.Filter)

	sess, err := browser.NewSession(ctx, a.cfg.Scraping.Headless)
	if err != nil {
		return CrawlOutcome{}, err
	}
	defer sess.Close()

	feed := scraper.NewNitterFeed(sess, a.cfg.Scraping.BaseURL, a.feedTimings())
	store := checkpoint.NewStore(a.cfg.Scraping.CheckpointDir, req.Handle)
	crawler := scraper.NewCrawler(feed, store, scraper.Config{
		Handle: req.Handle,
		Steps:  req.Steps,
		Filter: req.Filter,
	})

	res, runErr := crawler.Run(ctx)
	out := CrawlOutcome{Result: res}
	log.Printf("Crawl finished: %s with %d posts", res.Outcome, len(res.Posts))

	if len(res.Posts) == 0 {
		return out, runErr
	}

	w := &export.Writer{Dir: a.cfg.Export.Dir, Overwrite: req.Confirm}
	path, err := w.Write(res.Posts, req.Handle, req.SaveMode)
	if err != nil {
		log.Printf("Export failed: %v", err)
		if runErr == nil {
			runErr = err
		}
	} else {
		out.CSVPath = path
		log.Printf("Exported %d posts to %s", len(res.Posts), path)
	}

	if a.cfg.Archive.Enabled {
		if err := a.archivePosts(req.Handle, res.Posts); err != nil {
			log.Printf("Failed to archive posts: %v", err)
		}
	}

	return out, runErr
}

// CrawlAll runs the watch-mode flow over every account, merging each crawl
// into its existing export.
func (a *App) CrawlAll(ctx context.Context, accounts []string) error {
	filter, _ := scraper.ParseTypeFilter(a.cfg.Scraping.Filter)
	for _, handle := range accounts {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := a.Crawl(ctx, CrawlRequest{
			Handle:   handle,
			Steps:    a.cfg.Scraping.Scrolls,
			Filter:   filter,
			SaveMode: export.ModeMerge,
		})
		if err != nil {
			log.Printf("Crawl of @%s failed: %v", handle, err)
		}
	}
	return nil
}

// Process runs the cleaning pipeline over an exported CSV, writing the
// processed file next to it.
func (a *App) Process(inputPath string) (process.Result, string, error) {
	res, outPath, err := process.ProcessFile(inputPath, filepath.Dir(inputPath), a.cfg.Cleaning.Resolve())
	if err != nil {
		return process.Result{}, "", err
	}
	log.Printf("Processed %d rows (%d empty, %d duplicates dropped) into %s",
		len(res.Rows), res.DroppedEmpty, res.DroppedDupes, outPath)
	return res, outPath, nil
}

// Analyze scores an exported CSV with VADER and writes the sentiment file
// next to it.
func (a *App) Analyze(inputPath string) ([]sentiment.Scored, sentiment.Summary, string, error) {
	outPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "_sentiment.csv"

	scored, sum, err := sentiment.New().AnalyzeFile(inputPath, outPath)
	if err != nil {
		return nil, sentiment.Summary{}, "", err
	}
	log.Printf("Scored %d posts into %s", len(scored), outPath)
	return scored, sum, outPath, nil
}

// Charts builds the HTML chart set from an exported CSV and returns the
// report path.
func (a *App) Charts(inputPath string, withSentiment bool) (string, error) {
	posts, err := export.ReadFile(inputPath)
	if err != nil {
		return "", err
	}

	in := charts.Input{Handle: handleFromPath(inputPath), Posts: posts}
	if withSentiment {
		sum := sentiment.Summarize(sentiment.New().Analyze(posts))
		in.Sentiment = &sum
	}

	b, err := charts.New(5)
	if err != nil {
		return "", err
	}
	path, err := b.Build(filepath.Dir(inputPath), in)
	if err != nil {
		return "", err
	}
	log.Printf("Report written to %s", path)
	return path, nil
}

// Stats returns archive statistics for the named accounts, or for every
// archived account when none are given.
func (a *App) Stats(accounts []string) ([]archive.Stats, error) {
	path, err := a.cfg.ArchivePath()
	if err != nil {
		return nil, err
	}
	arc, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	if len(accounts) == 0 {
		accounts, err = arc.Accounts()
		if err != nil {
			return nil, err
		}
	}

	out := make([]archive.Stats, 0, len(accounts))
	for _, acct := range accounts {
		st, err := arc.Stats(acct)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (a *App) feedTimings() scraper.FeedTimings {
	t := scraper.DefaultFeedTimings()
	if ms := a.cfg.Scraping.SettleMS; ms > 0 {
		t.Settle = time.Duration(ms) * time.Millisecond
	}
	if secs := a.cfg.Scraping.FeedWaitSecs; secs > 0 {
		t.Items = time.Duration(secs) * time.Second
	}
	return t
}

func (a *App) archivePosts(handle string, posts []types.Post) error {
	path, err := a.cfg.ArchivePath()
	if err != nil {
		return err
	}
	arc, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer arc.Close()

	if err := arc.SavePosts(handle, posts); err != nil {
		return err
	}
	log.Printf("Archived %d posts to %s", len(posts), path)
	return nil
}

// handleFromPath recovers the account name from an export file name like
// naval_tweets_20250101_120000.csv.
func handleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name, _, ok := strings.Cut(base, "_tweets"); ok && name != "" {
		return name
	}
	return base
}
