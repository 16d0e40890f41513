// Package sentiment scores post text with VADER and buckets it into
// positive, neutral and negative.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"

	"nitscrape/internal/types"
)

// Labels assigned by Classify.
const (
	Positive = "positive"
	Neutral  = "neutral"
	Negative = "negative"
)

// Compound score thresholds for classification.
const (
	positiveFloor = 0.05
	negativeCeil  = -0.05
)

// Scores holds the four VADER polarity components.
type Scores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// ScoreFunc produces polarity scores for cleaned text. The default is
// VADER; embedding hosts can swap in their own.
type ScoreFunc func(text string) Scores

// Scored pairs a post with its sentiment verdict.
type Scored struct {
	Post    types.Post
	Cleaned string
	Scores  Scores
	Label   string
}

// Analyzer applies a scoring function over posts.
type Analyzer struct {
	score ScoreFunc
}

// New returns an analyzer backed by VADER.
func New() *Analyzer {
	sia := govader.NewSentimentIntensityAnalyzer()
	return NewWithScorer(func(text string) Scores {
		s := sia.PolarityScores(text)
		return Scores{
			Negative: s.Negative,
			Neutral:  s.Neutral,
			Positive: s.Positive,
			Compound: s.Compound,
		}
	})
}

// NewWithScorer returns an analyzer using a custom scoring function.
func NewWithScorer(score ScoreFunc) *Analyzer {
	return &Analyzer{score: score}
}

var (
	urlPattern     = regexp.MustCompile(`http\S+|www\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	lettersPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// CleanText reduces a post to lowercase letters and spaces before scoring.
// Hashtag words survive with the # stripped.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "#", "")
	text = lettersPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Classify buckets a compound score.
func Classify(compound float64) string {
	switch {
	case compound >= positiveFloor:
		return Positive
	case compound <= negativeCeil:
		return Negative
	default:
		return Neutral
	}
}

// Analyze scores every post, in order.
func (a *Analyzer) Analyze(posts []types.Post) []Scored {
	out := make([]Scored, 0, len(posts))
	for _, p := range posts {
		cleaned := CleanText(p.Text)
		sc := a.score(cleaned)
		out = append(out, Scored{
			Post:    p,
			Cleaned: cleaned,
			Scores:  sc,
			Label:   Classify(sc.Compound),
		})
	}
	return out
}

// Summary aggregates a scored batch.
type Summary struct {
	Total       int
	Counts      map[string]int
	AvgNegative float64
	AvgNeutral  float64
	AvgPositive float64
	AvgCompound float64
}

// Summarize computes the distribution and average scores.
func Summarize(scored []Scored) Summary {
	s := Summary{Total: len(scored), Counts: make(map[string]int)}
	if len(scored) == 0 {
		return s
	}
	for _, sc := range scored {
		s.Counts[sc.Label]++
		s.AvgNegative += sc.Scores.Negative
		s.AvgNeutral += sc.Scores.Neutral
		s.AvgPositive += sc.Scores.Positive
		s.AvgCompound += sc.Scores.Compound
	}
	n := float64(len(scored))
	s.AvgNegative /= n
	s.AvgNeutral /= n
	s.AvgPositive /= n
	s.AvgCompound /= n
	return s
}
