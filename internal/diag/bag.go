package diag

import (
	"cmp"
	"slices"
	"strings"

	"hostbridge/internal/source"
)

// Bag accumulates diagnostics for one stage, up to an optional limit.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag creates a bag holding at most limit diagnostics; limit <= 0 means unlimited.
func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 8), 64)), limit: limit}
}

func (b *Bag) full() bool {
	return b.limit > 0 && len(b.items) >= b.limit
}

// Add добавляет диагностику; false, если лимит исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if b.full() {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll adds diagnostics in order until the limit is reached.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		if !b.Add(d) {
			return
		}
	}
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the backing slice. Callers that keep it must clone it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends everything other holds, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if n := len(b.items) + len(other.items); b.limit > 0 && n > b.limit {
		b.limit = n
	}
	b.items = append(b.items, other.items...)
}

func (b *Bag) Sort()  { SortDiagnostics(b.items) }
func (b *Bag) Dedup() { b.items = DedupDiagnostics(b.items) }

// SortDiagnostics orders ds by file path, span, severity (most severe
// first), code and message. File-less diagnostics sort first. The sort is
// stable.
func SortDiagnostics(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.FilePath(), b.FilePath()),
			cmp.Compare(a.Primary.Start, b.Primary.Start),
			cmp.Compare(a.Primary.End, b.Primary.End),
			cmp.Compare(b.Severity, a.Severity),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})
}

type dedupKey struct {
	code  Code
	file  string
	span  source.Span
	chain string
}

// DedupDiagnostics drops diagnostics that repeat code, file, primary span
// and the whole message chain, keeping first occurrences.
func DedupDiagnostics(ds []Diagnostic) []Diagnostic {
	seen := make(map[dedupKey]struct{}, len(ds))
	out := make([]Diagnostic, 0, len(ds))
	for _, d := range ds {
		k := identity(d)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}

// identity is what two diagnostics must share to count as one.
func identity(d Diagnostic) dedupKey {
	return dedupKey{d.Code, d.FilePath(), d.Primary, chainText(d)}
}

// chainText joins the head message and every chained message depth-first.
func chainText(d Diagnostic) string {
	parts := []string{d.Message}
	var walk func([]MessageChain)
	walk = func(cs []MessageChain) {
		for _, c := range cs {
			parts = append(parts, c.Message)
			walk(c.Next)
		}
	}
	walk(d.Chain)
	return strings.Join(parts, "\x00")
}
