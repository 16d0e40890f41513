package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRaw(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestReadFileInvertsWrite(t *testing.T) {
	w := &Writer{Dir: t.TempDir(), Now: fixedNow}
	posts := samplePosts()

	path, err := w.Write(posts, "naval", ModeTimestamp)
	require.NoError(t, err)

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, posts, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileLegacyBoolTokens(t *testing.T) {
	path := writeRaw(t,
		strings.Join(Header, ","),
		`123,hello,2025-06-01 10:00:00,en,tok,1,2,3,True,99,False,True,[],[],[],[]`,
	)

	posts, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.True(t, posts[0].IsReply)
	require.False(t, posts[0].IsRetweet)
	require.True(t, posts[0].IsQuote)
	require.Equal(t, "99", posts[0].ReplyToID)
}

func TestReadFileIgnoresExtraColumns(t *testing.T) {
	path := writeRaw(t,
		strings.Join(Header, ",")+",sentiment",
		`123,hello,2025-06-01 10:00:00,en,tok,1,2,3,false,,false,false,[],[],[],[],positive`,
	)

	posts, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "123", posts[0].ID)
}

func TestReadFileRequiresIDColumn(t *testing.T) {
	path := writeRaw(t, "foo,bar", "1,2")

	_, err := ReadFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "tweet_id")
}

func TestReadFileRejectsEmptyID(t *testing.T) {
	path := writeRaw(t,
		strings.Join(Header, ","),
		`,hello,2025-06-01 10:00:00,en,tok,1,2,3,false,,false,false,[],[],[],[]`,
	)

	_, err := ReadFile(path)
	require.Error(t, err)
}

func TestReadFileRejectsBadTimestamp(t *testing.T) {
	path := writeRaw(t,
		strings.Join(Header, ","),
		`123,hello,not-a-date,en,tok,1,2,3,false,,false,false,[],[],[],[]`,
	)

	_, err := ReadFile(path)
	require.Error(t, err)
}
