package syntax

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Span is one classified byte range: [Start, End). Within one query
// result spans are ordered by Start and non-overlapping.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Highlight classifies the part of the tree intersecting [start, end) and
// returns ordered, non-overlapping spans clipped to that range. Overlaps
// resolve deterministically: explicit rule priority first, then the
// deeper (more specific) node, then the later-declared rule. Spans that
// resolve to CategoryText are omitted; error and missing nodes classify
// as CategoryText, so a degraded tree still answers. The result is a
// pure function of (tree, range, rule table).
func Highlight(root *sitter.Node, start, end int, lang *Language) []Span {
	if root == nil || lang == nil || start >= end {
		return nil
	}
	if start < 0 {
		start = 0
	}

	var cands []candidate
	collectCandidates(root, "", 0, start, end, lang, &cands)
	return flattenCandidates(cands)
}

type candidate struct {
	start, end int
	cat        Category
	priority   int
	depth      int
	rule       int // declaration index in the language table; -1 for generic
	ord        int
}

func collectCandidates(n *sitter.Node, parentKind string, depth, start, end int, lang *Language, out *[]candidate) {
	ns, ne := int(n.StartByte()), int(n.EndByte())
	if ne <= start || ns >= end {
		return
	}

	kind := n.Type()
	if !n.IsError() && !n.IsMissing() {
		cat, priority, rule := classifyNode(lang, kind, parentKind, n.IsNamed())
		if cat != CategoryText {
			c := candidate{
				start:    maxInt(ns, start),
				end:      minInt(ne, end),
				cat:      cat,
				priority: priority,
				depth:    depth,
				rule:     rule,
				ord:      len(*out),
			}
			if c.start < c.end {
				*out = append(*out, c)
			}
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		collectCandidates(n.Child(i), kind, depth+1, start, end, lang, out)
	}
}

// classifyNode consults the language rule table first; a table match wins
// even when it maps to CategoryText (suppressing the generic fallback).
func classifyNode(lang *Language, kind, parentKind string, named bool) (Category, int, int) {
	if lang.rules != nil {
		if r, idx, ok := lang.rules.match(kind, parentKind); ok {
			return r.Category, r.Priority, idx
		}
	}
	cat, ok := genericCategory(kind, named)
	if !ok {
		return CategoryText, 0, -1
	}
	return cat, 0, -1
}

// flattenCandidates resolves overlapping candidates into ordered,
// non-overlapping spans with a boundary sweep: each segment between two
// adjacent boundaries takes the best covering candidate.
func flattenCandidates(cands []candidate) []Span {
	if len(cands) == 0 {
		return nil
	}

	bounds := make([]int, 0, len(cands)*2)
	for _, c := range cands {
		bounds = append(bounds, c.start, c.end)
	}
	sort.Ints(bounds)
	bounds = dedupeInts(bounds)

	out := make([]Span, 0, len(cands))
	for i := 0; i+1 < len(bounds); i++ {
		segStart, segEnd := bounds[i], bounds[i+1]
		best := -1
		for j := range cands {
			if cands[j].start <= segStart && segEnd <= cands[j].end {
				if best < 0 || betterCandidate(cands[j], cands[best]) {
					best = j
				}
			}
		}
		if best < 0 {
			continue
		}
		cat := cands[best].cat
		if len(out) > 0 && out[len(out)-1].End == segStart && out[len(out)-1].Category == cat {
			out[len(out)-1].End = segEnd
			continue
		}
		out = append(out, Span{Start: segStart, End: segEnd, Category: cat})
	}
	return out
}

func betterCandidate(a, b candidate) bool {
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	if a.rule != b.rule {
		return a.rule > b.rule
	}
	return a.ord > b.ord
}

func dedupeInts(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
