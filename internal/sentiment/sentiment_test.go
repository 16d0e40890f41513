package sentiment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nitscrape/internal/types"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"Great day! https://example.com @friend #Winning", "great day winning"},
		{"Numbers 123 and symbols $% vanish", "numbers and symbols vanish"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.want, CleanText(test.in), test.in)
	}
}

func TestClassifyThresholds(t *testing.T) {
	testCases := []struct {
		compound float64
		want     string
	}{
		{0.5, Positive},
		{0.05, Positive}, // boundary is inclusive
		{0.0499, Neutral},
		{0, Neutral},
		{-0.0499, Neutral},
		{-0.05, Negative}, // boundary is inclusive
		{-0.8, Negative},
	}

	for _, test := range testCases {
		require.Equal(t, test.want, Classify(test.compound), "compound=%v", test.compound)
	}
}

func TestAnalyzeWithCustomScorer(t *testing.T) {
	// verdicts depend only on the compound each text gets
	byText := map[string]float64{
		"loved it":  0.9,
		"hated it":  -0.9,
		"it exists": 0,
	}
	an := NewWithScorer(func(text string) Scores {
		return Scores{Compound: byText[text]}
	})

	posts := []types.Post{
		{ID: "1", Text: "Loved it!"},
		{ID: "2", Text: "Hated it!"},
		{ID: "3", Text: "It exists."},
	}
	scored := an.Analyze(posts)
	require.Len(t, scored, 3)

	require.Equal(t, "loved it", scored[0].Cleaned)
	require.Equal(t, Positive, scored[0].Label)
	require.Equal(t, Negative, scored[1].Label)
	require.Equal(t, Neutral, scored[2].Label)

	sum := Summarize(scored)
	require.Equal(t, 3, sum.Total)
	require.Equal(t, map[string]int{Positive: 1, Negative: 1, Neutral: 1}, sum.Counts)
	require.InDelta(t, 0, sum.AvgCompound, 1e-9)
}

func TestVaderScoring(t *testing.T) {
	an := New()

	scored := an.Analyze([]types.Post{
		{ID: "1", Text: "I love this, absolutely wonderful and great!"},
		{ID: "2", Text: "This is horrible, I hate everything about it."},
	})

	require.Equal(t, Positive, scored[0].Label)
	require.Greater(t, scored[0].Scores.Compound, 0.05)
	require.Equal(t, Negative, scored[1].Label)
	require.Less(t, scored[1].Scores.Compound, -0.05)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	require.Equal(t, 0, sum.Total)
	require.Empty(t, sum.Counts)
	require.Equal(t, 0.0, sum.AvgCompound)
}
