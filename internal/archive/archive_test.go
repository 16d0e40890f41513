package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"nitscrape/internal/types"
)

func openTestArchive(t *testing.T) *Archive {
	t.Helper()
	arc, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { arc.Close() })
	return arc
}

func TestSaveAndListPosts(t *testing.T) {
	arc := openTestArchive(t)

	posts := []types.Post{
		{
			ID:           "100",
			Text:         "older",
			CreatedAt:    time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Lang:         "en",
			AuthorToken:  "tok",
			RetweetCount: 1,
			LikeCount:    2,
			CommentCount: 3,
			URLs:         []string{"https://example.com"},
			Hashtags:     []string{"#one"},
			Mentions:     []string{},
			Media:        []types.MediaItem{{Kind: types.MediaImage, URL: "/p.jpg"}},
		},
		{ID: "200", Text: "newer", CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, arc.SavePosts("alice", posts))

	got, err := arc.Posts("alice", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "200", got[0].ID)
	require.Equal(t, "100", got[1].ID)

	first := got[1]
	require.Equal(t, "older", first.Text)
	require.True(t, first.CreatedAt.Equal(posts[0].CreatedAt))
	require.Equal(t, "en", first.Lang)
	require.Equal(t, "tok", first.AuthorToken)
	require.Equal(t, 2, first.LikeCount)
	require.Equal(t, []string{"https://example.com"}, first.URLs)
	require.Equal(t, []string{"#one"}, first.Hashtags)
	require.Equal(t, []types.MediaItem{{Kind: types.MediaImage, URL: "/p.jpg"}}, first.Media)

	limited, err := arc.Posts("alice", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, "200", limited[0].ID)
}

func TestSaveRefreshesCountsWithoutGrowing(t *testing.T) {
	arc := openTestArchive(t)
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, arc.SavePosts("alice", []types.Post{
		{ID: "100", Text: "first capture", CreatedAt: created, LikeCount: 5},
	}))
	require.NoError(t, arc.SavePosts("alice", []types.Post{
		{ID: "100", Text: "second capture", CreatedAt: created, LikeCount: 9, RetweetCount: 4},
	}))

	got, err := arc.Posts("alice", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	// counts refresh, the original row otherwise stays
	require.Equal(t, 9, got[0].LikeCount)
	require.Equal(t, 4, got[0].RetweetCount)
	require.Equal(t, "first capture", got[0].Text)
}

func TestStats(t *testing.T) {
	arc := openTestArchive(t)

	require.NoError(t, arc.SavePosts("alice", []types.Post{
		{ID: "1", Text: "a", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), LikeCount: 2},
		{ID: "2", Text: "b", CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), IsRetweet: true, LikeCount: 3},
		{ID: "3", Text: "c", CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), IsReply: true},
	}))

	st, err := arc.Stats("alice")
	require.NoError(t, err)
	require.Equal(t, "alice", st.Account)
	require.Equal(t, 3, st.Total)
	require.True(t, st.Oldest.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, st.Newest.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, map[string]int{"original": 1, "retweet": 1, "reply": 1}, st.Kinds)
	require.Equal(t, 5, st.TotalEngagement)
}

func TestStatsEmptyAccount(t *testing.T) {
	arc := openTestArchive(t)

	st, err := arc.Stats("ghost")
	require.NoError(t, err)
	require.Equal(t, 0, st.Total)
	require.Empty(t, st.Kinds)
}

func TestAccounts(t *testing.T) {
	arc := openTestArchive(t)

	require.NoError(t, arc.SavePosts("bob", []types.Post{{ID: "1", Text: "x", CreatedAt: time.Now()}}))
	require.NoError(t, arc.SavePosts("alice", []types.Post{{ID: "2", Text: "y", CreatedAt: time.Now()}}))

	accounts, err := arc.Accounts()
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, accounts)
}
