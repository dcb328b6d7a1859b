// Package tmplast builds the control-expression abstract syntax tree that
// the fixpoint reducer (internal/resolve) walks. A Node is either a
// literal span of the original text or a control expression naming a
// resolver source, with an optional argument list and an optional dotted
// path — each of those is itself a Node sequence, since arguments and
// paths may nest further control expressions.
package tmplast

// Literal is the Node.Type value for plain text spans.
const Literal = "literal"

// Node is one element of an AST sequence. Segment always equals the exact
// substring of the original text this node covers, used verbatim for
// unresolved output and diagnostics.
//
// Arguments and Path distinguish "absent" from "present but empty":
// ${fn} has both absent; ${fn()} has an empty-but-present Arguments;
// ${fn:} has an empty-but-present Path; ${fn():} has both.
type Node struct {
	Type    string
	Segment string

	// Arguments holds one Seq per parsed argument; HasArgs distinguishes
	// "no parens at all" from "present but empty" ("${fn}" vs "${fn()}"),
	// since both leave Arguments with zero length.
	Arguments []Seq
	HasArgs   bool

	// Path holds the parsed ":path" segment; HasPath distinguishes
	// "no colon at all" from "present but empty" ("${fn}" vs "${fn:}"),
	// since both leave Path with zero length.
	Path    Seq
	HasPath bool
}

// Seq is a node-sequence: literal text interleaved with controls, the
// shape used for top-level AST content, each argument, and the path.
type Seq []Node

// AST is the result of parsing a template: the original text plus its
// top-level node sequence.
type AST struct {
	Content string
	Nodes   Seq
}

// IsLiteral reports whether n is a literal node.
func (n Node) IsLiteral() bool {
	return n.Type == Literal
}
