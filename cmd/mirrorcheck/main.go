// Command mirrorcheck probes each configured Nitter mirror with the same
// browser stack as the crawler and reports which ones serve a timeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"nitscrape/internal/browser"
	"nitscrape/internal/config"
	"nitscrape/internal/scraper"
)

func main() {
	handle := flag.String("handle", "jack", "account used for the probe")
	timeout := flag.Duration("timeout", 20*time.Second, "per-mirror budget")
	headless := flag.Bool("headless", true, "run the browser headless")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	mirrors := cfg.Scraping.Mirrors
	if flag.NArg() > 0 {
		mirrors = flag.Args()
	}
	if len(mirrors) == 0 {
		log.Fatal("no mirrors to probe")
	}

	ctx := context.Background()
	sess, err := browser.NewSession(ctx, *headless)
	if err != nil {
		log.Fatalf("failed to launch browser: %v", err)
	}
	defer sess.Close()

	timings := scraper.FeedTimings{
		PageLoad:      *timeout,
		InitialSettle: 500 * time.Millisecond,
		Items:         *timeout,
	}

	healthy := 0
	for _, mirror := range mirrors {
		start := time.Now()
		feed := scraper.NewNitterFeed(sess, mirror, timings)

		items, err := probe(ctx, feed, *handle)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			fmt.Printf("FAIL %-40s %8s  %v\n", mirror, elapsed, err)
			continue
		}
		healthy++
		fmt.Printf("OK   %-40s %8s  %d timeline items\n", mirror, elapsed, items)
	}

	fmt.Printf("\n%d/%d mirrors healthy\n", healthy, len(mirrors))
	if healthy == 0 {
		os.Exit(1)
	}
}

func probe(ctx context.Context, feed *scraper.NitterFeed, handle string) (int, error) {
	if err := feed.Open(ctx, handle); err != nil {
		return 0, err
	}
	items, err := feed.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
