// Package marker locates matched bracket pairs in raw text, honoring
// backslash escapes and nesting. It underlies both the top-level "${...}"
// scan and the "(...)" argument-list scan used by internal/tmplast.
package marker

import (
	"sort"
	"strings"

	"github.com/nkazin/preconfig/internal/tmplerr"
)

// Marker is a matched bracket pair: Open points at the start of the
// opening delimiter (after any escaping backslashes), Close at the start
// of the closing delimiter.
type Marker struct {
	Open  int
	Close int
}

// defaultOpening and defaultClosing are the control-expression delimiters.
const (
	defaultOpening = "${"
	defaultClosing = "}"
)

// Locate finds every real (non-escaped) matched pair of opening/closing in
// content, sorted by opening offset. opening and closing default to "${"
// and "}" when empty, which also serves the argument-list scan with "("
// and ")".
//
// Escape rule: a delimiter preceded by an even number of backslashes
// (including zero) is real; an odd number means it is escaped and is
// ignored entirely — it contributes neither an opening nor closing
// candidate.
//
// Pairing: openings are matched right-to-left against the smallest
// remaining closing offset greater than the opening. An opening with no
// available closing is a SyntaxError. Unmatched closings are ignored.
func Locate(content string, opening, closing string) ([]Marker, error) {
	if opening == "" {
		opening = defaultOpening
	}
	if closing == "" {
		closing = defaultClosing
	}

	opens := realOffsets(content, opening)
	closes := realOffsets(content, closing)

	// closing == opening substring overlap is not a supported configuration
	// (callers always use distinct delimiter pairs), so no special-casing
	// for self-overlap is needed here.

	pool := append([]int(nil), closes...)
	pairs := make([]Marker, 0, len(opens))

	for i := len(opens) - 1; i >= 0; i-- {
		o := opens[i]
		best := -1
		bestIdx := -1
		for j, c := range pool {
			if c > o && (best == -1 || c < best) {
				best = c
				bestIdx = j
			}
		}
		if bestIdx == -1 {
			return nil, tmplerr.NewSyntaxError(o, "missing closing for the opening")
		}
		pairs = append(pairs, Marker{Open: o, Close: best})
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Open < pairs[j].Open })
	return pairs, nil
}

// realOffsets returns the offsets of every occurrence of delim in content
// whose preceding backslash run has even length, i.e. every real
// (non-escaped) occurrence. The returned offset points at delim's own
// first byte, after the escape run.
func realOffsets(content, delim string) []int {
	var offsets []int
	start := 0
	for {
		idx := strings.Index(content[start:], delim)
		if idx == -1 {
			break
		}
		pos := start + idx
		backslashes := 0
		for k := pos - 1; k >= 0 && content[k] == '\\'; k-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			offsets = append(offsets, pos)
		}
		start = pos + len(delim)
	}
	return offsets
}
