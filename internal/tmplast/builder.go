package tmplast

import (
	"regexp"
	"strings"

	"github.com/nkazin/preconfig/internal/marker"
)

// identRE recognizes the source name at the head of a control header;
// the rest of the header (the optional "(...)" and ":path") is
// hand-parsed.
var identRE = regexp.MustCompile(`^\w+`)

const (
	openDelim  = "${"
	closeDelim = "}"
)

// Build parses text into an AST. It only fails through the marker
// locator — a malformed control header degrades to a literal node rather
// than raising.
func Build(text string) (AST, error) {
	nodes, err := build(text)
	if err != nil {
		return AST{}, err
	}
	return AST{Content: text, Nodes: nodes}, nil
}

func build(text string) (Seq, error) {
	markers, err := marker.Locate(text, openDelim, closeDelim)
	if err != nil {
		return nil, err
	}

	firstDegree := filterFirstDegree(markers)

	var nodes Seq
	prevEnd := 0
	for _, m := range firstDegree {
		if m.Open > prevEnd {
			nodes = append(nodes, Node{Type: Literal, Segment: text[prevEnd:m.Open]})
		}
		segment := text[m.Open : m.Close+len(closeDelim)]
		node := parseHeader(segment)
		nodes = append(nodes, node)
		prevEnd = m.Close + len(closeDelim)
	}
	if prevEnd < len(text) {
		nodes = append(nodes, Node{Type: Literal, Segment: text[prevEnd:]})
	}
	return nodes, nil
}

// filterFirstDegree keeps only the outermost marker of each nesting group:
// a marker whose closing offset exceeds every previously-kept marker's
// closing offset. Markers arrive sorted by opening offset.
func filterFirstDegree(markers []marker.Marker) []marker.Marker {
	var kept []marker.Marker
	maxClose := -1
	for _, m := range markers {
		if m.Close > maxClose {
			kept = append(kept, m)
			maxClose = m.Close
		}
	}
	return kept
}

// parseHeader parses one first-degree control expression's segment
// (including its outer "${" and "}") into a Node. Any deviation from the
// expected grammar falls back to a literal node covering the whole
// segment, since the outer bracket pairing was already validated by the
// locator.
func parseHeader(segment string) Node {
	body := segment[len(openDelim) : len(segment)-len(closeDelim)]

	i := skipSpace(body, 0)
	loc := identRE.FindStringIndex(body[i:])
	if loc == nil {
		return Node{Type: Literal, Segment: segment}
	}
	ident := body[i : i+loc[1]]
	i += loc[1]
	i = skipSpace(body, i)

	node := Node{Type: ident, Segment: segment}

	if i < len(body) && body[i] == '(' {
		args, next, ok := parseArgs(body, i)
		if !ok {
			return Node{Type: Literal, Segment: segment}
		}
		node.HasArgs = true
		node.Arguments = args
		i = next
		i = skipSpace(body, i)
	}

	if i < len(body) && body[i] == ':' {
		pathText := strings.TrimSpace(body[i+1:])
		pathAST, err := build(pathText)
		if err != nil {
			return Node{Type: Literal, Segment: segment}
		}
		node.HasPath = true
		node.Path = pathAST
		i = len(body)
	}

	i = skipSpace(body, i)
	if i != len(body) {
		// Trailing garbage before the closing brace: not a valid header.
		return Node{Type: Literal, Segment: segment}
	}

	return node
}

// parseArgs parses a "(...)" argument list starting at body[open] == '('.
// It returns the argument node-sequences, the index just past the
// matching ')', and whether parsing succeeded.
func parseArgs(body string, open int) ([]Seq, int, bool) {
	sub := body[open:]
	pairs, err := marker.Locate(sub, "(", ")")
	if err != nil {
		return nil, 0, false
	}
	var outer *marker.Marker
	for i := range pairs {
		if pairs[i].Open == 0 {
			outer = &pairs[i]
			break
		}
	}
	if outer == nil {
		return nil, 0, false
	}

	inner := sub[1:outer.Close]
	next := open + outer.Close + 1

	if strings.TrimSpace(inner) == "" {
		return []Seq{}, next, true
	}

	parts := strings.Split(inner, ",")
	args := make([]Seq, 0, len(parts))
	for _, part := range parts {
		argSeq, err := build(strings.TrimSpace(part))
		if err != nil {
			return nil, 0, false
		}
		args = append(args, argSeq)
	}
	return args, next, true
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
