package scraper

// TypeFilter selects which item kinds a crawl keeps.
type TypeFilter string

// Recognized filters.
const (
	FilterOriginal          TypeFilter = "original"
	FilterOriginalAndQuotes TypeFilter = "original_and_quotes"
	FilterAll               TypeFilter = "all"
)

// ParseTypeFilter maps a user-supplied name onto a filter. Unknown names
// report false and fall back to FilterOriginal.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	switch TypeFilter(s) {
	case FilterOriginal, FilterOriginalAndQuotes, FilterAll:
		return TypeFilter(s), true
	}
	return FilterOriginal, false
}

func (f TypeFilter) keepRetweets() bool { return f == FilterAll }

func (f TypeFilter) keepQuotes() bool { return f == FilterAll || f == FilterOriginalAndQuotes }

// Verdict is the policy's decision for one raw item.
type Verdict int

const (
	Accept Verdict = iota
	RejectNoID
	RejectSeen
	RejectKind
)

// Policy gates which raw items reach full extraction: the id must resolve,
// must not have been seen before, and the item's kind must pass the filter.
// Accepted ids are recorded as seen immediately, so reprocessing the same
// containers after a pagination step is idempotent.
type Policy struct {
	Filter TypeFilter
	Seen   map[string]bool

	ex *Extractor
}

// NewPolicy wires a policy over a shared seen set. The extractor is shared
// so permalink resolution is cached once per crawl.
func NewPolicy(filter TypeFilter, seen map[string]bool, ex *Extractor) *Policy {
	return &Policy{Filter: filter, Seen: seen, ex: ex}
}

// Admit returns the resolved id and the verdict for one raw item.
func (p *Policy) Admit(raw RawItem) (string, Verdict) {
	id, ok := p.ex.ResolveID(raw.Permalink)
	if !ok {
		return "", RejectNoID
	}
	if p.Seen[id] {
		return id, RejectSeen
	}
	if raw.IsRetweet && !p.Filter.keepRetweets() {
		return id, RejectKind
	}
	if raw.IsQuote && !p.Filter.keepQuotes() {
		return id, RejectKind
	}
	p.Seen[id] = true
	return id, Accept
}
