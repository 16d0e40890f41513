// Package archive persists accepted posts in SQLite so collected history
// survives across runs independently of CSV exports.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nitscrape/internal/types"
)

// Archive handles all database operations
type Archive struct {
	db *sql.DB
}

// Open creates or opens the archive database at dbPath.
func Open(dbPath string) (*Archive, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return a, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	return a.db.Close()
}

// migrate creates the database schema
func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME,
		lang TEXT,
		author_token TEXT,
		retweet_count INTEGER,
		like_count INTEGER,
		comment_count INTEGER,
		is_reply BOOLEAN,
		reply_to_id TEXT,
		is_retweet BOOLEAN,
		is_quote BOOLEAN,
		urls TEXT,
		hashtags TEXT,
		mentions TEXT,
		media TEXT,
		archived_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_posts_account ON posts(account);
	CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
	`

	_, err := a.db.Exec(schema)
	return err
}

// SavePosts upserts a batch under one account. A post seen before keeps its
// original row but picks up the fresh engagement counts.
func (a *Archive) SavePosts(account string, posts []types.Post) error {
	now := time.Now()
	for _, p := range posts {
		urlsJSON, _ := json.Marshal(p.URLs)
		hashtagsJSON, _ := json.Marshal(p.Hashtags)
		mentionsJSON, _ := json.Marshal(p.Mentions)
		mediaJSON, _ := json.Marshal(p.Media)

		_, err := a.db.Exec(`
			INSERT INTO posts (id, account, text, created_at, lang, author_token,
				retweet_count, like_count, comment_count,
				is_reply, reply_to_id, is_retweet, is_quote,
				urls, hashtags, mentions, media, archived_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				retweet_count = excluded.retweet_count,
				like_count = excluded.like_count,
				comment_count = excluded.comment_count,
				archived_at = excluded.archived_at
		`, p.ID, account, p.Text, p.CreatedAt, p.Lang, p.AuthorToken,
			p.RetweetCount, p.LikeCount, p.CommentCount,
			p.IsReply, p.ReplyToID, p.IsRetweet, p.IsQuote,
			string(urlsJSON), string(hashtagsJSON), string(mentionsJSON), string(mediaJSON), now)
		if err != nil {
			return fmt.Errorf("failed to save post %s: %w", p.ID, err)
		}
	}
	return nil
}

// Posts returns an account's posts, newest first. limit <= 0 means all.
func (a *Archive) Posts(account string, limit int) ([]types.Post, error) {
	query := `
		SELECT id, text, created_at, lang, author_token,
			retweet_count, like_count, comment_count,
			is_reply, reply_to_id, is_retweet, is_quote,
			urls, hashtags, mentions, media
		FROM posts
		WHERE account = ?
		ORDER BY created_at DESC`
	args := []any{account}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// Accounts returns every account with archived posts.
func (a *Archive) Accounts() ([]string, error) {
	rows, err := a.db.Query(`SELECT DISTINCT account FROM posts ORDER BY account`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var acct string
		if err := rows.Scan(&acct); err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// Stats describes one account's archived history.
type Stats struct {
	Account         string
	Total           int
	Oldest          time.Time
	Newest          time.Time
	Kinds           map[string]int
	TotalEngagement int
}

// Stats aggregates an account's archived posts.
func (a *Archive) Stats(account string) (Stats, error) {
	posts, err := a.Posts(account, 0)
	if err != nil {
		return Stats{}, err
	}

	s := Stats{Account: account, Total: len(posts), Kinds: make(map[string]int)}
	for i, p := range posts {
		if i == 0 {
			s.Oldest, s.Newest = p.CreatedAt, p.CreatedAt
		}
		if p.CreatedAt.Before(s.Oldest) {
			s.Oldest = p.CreatedAt
		}
		if p.CreatedAt.After(s.Newest) {
			s.Newest = p.CreatedAt
		}
		s.Kinds[p.Kind()]++
		s.TotalEngagement += p.TotalEngagement()
	}
	return s, nil
}

func scanPosts(rows *sql.Rows) ([]types.Post, error) {
	var posts []types.Post
	for rows.Next() {
		var p types.Post
		var urlsJSON, hashtagsJSON, mentionsJSON, mediaJSON string

		err := rows.Scan(
			&p.ID, &p.Text, &p.CreatedAt, &p.Lang, &p.AuthorToken,
			&p.RetweetCount, &p.LikeCount, &p.CommentCount,
			&p.IsReply, &p.ReplyToID, &p.IsRetweet, &p.IsQuote,
			&urlsJSON, &hashtagsJSON, &mentionsJSON, &mediaJSON,
		)
		if err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(urlsJSON), &p.URLs)
		json.Unmarshal([]byte(hashtagsJSON), &p.Hashtags)
		json.Unmarshal([]byte(mentionsJSON), &p.Mentions)
		json.Unmarshal([]byte(mediaJSON), &p.Media)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
