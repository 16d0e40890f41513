// Package charts renders crawl results as standalone HTML charts plus an
// index report page.
package charts

import (
	"fmt"
	"io"
	"os"
	"sort"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"nitscrape/internal/sentiment"
	"nitscrape/internal/types"
)

// engagementBuckets label the shared histogram axis.
var engagementBuckets = []string{"0", "1-9", "10-99", "100-999", "1k-10k", "10k+"}

func bucketIndex(n int) int {
	switch {
	case n <= 0:
		return 0
	case n < 10:
		return 1
	case n < 100:
		return 2
	case n < 1000:
		return 3
	case n < 10000:
		return 4
	default:
		return 5
	}
}

// Timeline builds a posts-per-day bar chart.
func Timeline(handle string, posts []types.Post) *echarts.Bar {
	perDay := make(map[string]int)
	for _, p := range posts {
		perDay[p.CreatedAt.Format("2006-01-02")]++
	}
	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	items := make([]opts.BarData, len(days))
	for i, d := range days {
		items[i] = opts.BarData{Value: perDay[d]}
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("@%s posts per day", handle),
			Subtitle: fmt.Sprintf("%d posts total", len(posts)),
		}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(days).AddSeries("posts", items)
	return bar
}

// Engagement builds likes and retweets histograms over shared magnitude
// buckets.
func Engagement(handle string, posts []types.Post) *echarts.Bar {
	likes := make([]int, len(engagementBuckets))
	retweets := make([]int, len(engagementBuckets))
	for _, p := range posts {
		likes[bucketIndex(p.LikeCount)]++
		retweets[bucketIndex(p.RetweetCount)]++
	}

	likeItems := make([]opts.BarData, len(engagementBuckets))
	retweetItems := make([]opts.BarData, len(engagementBuckets))
	for i := range engagementBuckets {
		likeItems[i] = opts.BarData{Value: likes[i]}
		retweetItems[i] = opts.BarData{Value: retweets[i]}
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("@%s engagement distribution", handle)}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(engagementBuckets).
		AddSeries("likes", likeItems).
		AddSeries("retweets", retweetItems)
	return bar
}

// SentimentBreakdown builds a pie over the three sentiment labels.
func SentimentBreakdown(handle string, sum sentiment.Summary) *echarts.Pie {
	items := []opts.PieData{
		{Name: sentiment.Positive, Value: sum.Counts[sentiment.Positive]},
		{Name: sentiment.Neutral, Value: sum.Counts[sentiment.Neutral]},
		{Name: sentiment.Negative, Value: sum.Counts[sentiment.Negative]},
	}

	pie := echarts.NewPie()
	pie.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("@%s sentiment", handle),
			Subtitle: fmt.Sprintf("%d posts scored", sum.Total),
		}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("sentiment", items)
	pie.SetSeriesOptions(echarts.WithLabelOpts(opts.Label{
		Show:      opts.Bool(true),
		Formatter: "{b}: {c}",
	}))
	return pie
}

type renderer interface {
	Render(w io.Writer) error
}

func renderChart(path string, r renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Render(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
