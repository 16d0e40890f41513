package charts

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nitscrape/internal/sentiment"
	"nitscrape/internal/types"
)

// Input bundles everything a report is built from. Sentiment is optional;
// when nil the sentiment chart is skipped.
type Input struct {
	Handle    string
	Posts     []types.Post
	Sentiment *sentiment.Summary
}

// Builder renders the chart set and an index page tying it together.
type Builder struct {
	topPosts int
	template *template.Template
}

// New creates a report builder that lists the topPosts most engaged posts.
func New(topPosts int) (*Builder, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Builder{
		topPosts: topPosts,
		template: tmpl,
	}, nil
}

// reportData is the template data structure
type reportData struct {
	Title  string
	Date   string
	Charts []chartLink
	Posts  []postData
	Stats  statsData
}

type chartLink struct {
	Name string
	File string
}

// postData represents a post in the report template
type postData struct {
	Kind       string
	Text       string
	Likes      int
	Retweets   int
	Comments   int
	Engagement int
}

type statsData struct {
	TotalPosts      int
	DateRange       string
	TotalEngagement int
}

// Build renders the charts into dir and writes <handle>_report.html linking
// them. It returns the report path.
func (b *Builder) Build(dir string, in Input) (string, error) {
	if len(in.Posts) == 0 {
		return "", fmt.Errorf("no posts to report on")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	links := []chartLink{
		{Name: "Posts per day", File: in.Handle + "_timeline.html"},
		{Name: "Engagement distribution", File: in.Handle + "_engagement.html"},
	}
	if err := renderChart(filepath.Join(dir, links[0].File), Timeline(in.Handle, in.Posts)); err != nil {
		return "", err
	}
	if err := renderChart(filepath.Join(dir, links[1].File), Engagement(in.Handle, in.Posts)); err != nil {
		return "", err
	}
	if in.Sentiment != nil && in.Sentiment.Total > 0 {
		link := chartLink{Name: "Sentiment", File: in.Handle + "_sentiment.html"}
		if err := renderChart(filepath.Join(dir, link.File), SentimentBreakdown(in.Handle, *in.Sentiment)); err != nil {
			return "", err
		}
		links = append(links, link)
	}

	// Most engaged posts first
	top := make([]types.Post, len(in.Posts))
	copy(top, in.Posts)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalEngagement() > top[j].TotalEngagement()
	})
	if len(top) > b.topPosts {
		top = top[:b.topPosts]
	}

	data := reportData{
		Title:  fmt.Sprintf("@%s crawl report", in.Handle),
		Date:   time.Now().Format("Monday, January 2"),
		Charts: links,
		Posts:  make([]postData, len(top)),
		Stats:  buildStats(in.Posts),
	}
	for i, p := range top {
		data.Posts[i] = postData{
			Kind:       strings.ToUpper(p.Kind()),
			Text:       truncate(p.Text, 280),
			Likes:      p.LikeCount,
			Retweets:   p.RetweetCount,
			Comments:   p.CommentCount,
			Engagement: p.TotalEngagement(),
		}
	}

	path := filepath.Join(dir, in.Handle+"_report.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := b.template.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return path, nil
}

func buildStats(posts []types.Post) statsData {
	s := statsData{TotalPosts: len(posts)}
	oldest, newest := posts[0].CreatedAt, posts[0].CreatedAt
	for _, p := range posts {
		s.TotalEngagement += p.TotalEngagement()
		if p.CreatedAt.Before(oldest) {
			oldest = p.CreatedAt
		}
		if p.CreatedAt.After(newest) {
			newest = p.CreatedAt
		}
	}
	s.DateRange = oldest.Format("Jan 2, 2006") + " - " + newest.Format("Jan 2, 2006")
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 20px; }
        h1 { color: #1da1f2; margin-bottom: 5px; }
        .date { color: #666; margin-bottom: 20px; }
        .stats { color: #333; margin-bottom: 20px; }
        .charts a { display: block; color: #1da1f2; text-decoration: none; margin: 5px 0; }
        h2 { color: #333; font-size: 16px; margin-top: 25px; }
        .post { border-bottom: 1px solid #eee; padding: 15px 0; }
        .post:last-child { border-bottom: none; }
        .kind { background: #e8f5fd; color: #1da1f2; padding: 2px 8px; border-radius: 12px; font-size: 12px; }
        .content { margin: 10px 0; line-height: 1.4; }
        .metrics { color: #666; font-size: 13px; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="date">{{.Date}}</div>

        <div class="stats">{{.Stats.TotalPosts}} posts from {{.Stats.DateRange}} with {{.Stats.TotalEngagement}} total engagement</div>

        <div class="charts">
            {{range .Charts}}<a href="{{.File}}">{{.Name}}</a>{{end}}
        </div>

        <h2>Most engaged posts</h2>
        {{range .Posts}}
        <div class="post">
            <span class="kind">{{.Kind}}</span>
            <div class="content">{{.Text}}</div>
            <div class="metrics">{{.Likes}} likes · {{.Retweets}} retweets · {{.Comments}} comments · {{.Engagement}} total</div>
        </div>
        {{end}}

        <div class="footer">
            Generated by nitscrape
        </div>
    </div>
</body>
</html>`
