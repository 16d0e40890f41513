package scraper

import (
	"sort"

	"nitscrape/internal/types"
)

// CrawlState is the loop's working set: everything needed to resume an
// interrupted crawl, plus the stall counter that detects feed exhaustion.
type CrawlState struct {
	Posts   []types.Post
	SeenIDs map[string]bool
	Cursor  int // completed pagination steps
	Stalls  int // consecutive steps that yielded nothing new
}

// NewCrawlState returns an empty state for a fresh crawl.
func NewCrawlState() *CrawlState {
	return &CrawlState{SeenIDs: make(map[string]bool)}
}

// SeenList returns the seen set as a sorted slice for checkpointing.
func (s *CrawlState) SeenList() []string {
	ids := make([]string, 0, len(s.SeenIDs))
	for id := range s.SeenIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
