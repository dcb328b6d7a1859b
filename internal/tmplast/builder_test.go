package tmplast_test

import (
	"testing"

	"github.com/nkazin/preconfig/internal/tmplast"
)

func TestBuild_PlainText_SingleLiteral(t *testing.T) {
	ast, err := tmplast.Build("abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ast.Nodes) != 1 || !ast.Nodes[0].IsLiteral() || ast.Nodes[0].Segment != "abc" {
		t.Fatalf("Nodes = %+v, want single literal %q", ast.Nodes, "abc")
	}
}

func TestBuild_SegmentCoverage(t *testing.T) {
	texts := []string{
		"abc",
		"${para:foo}",
		"pre${para:foo}post",
		"${fn(a,b):x.y}",
		"${fn():}",
		"${fn:}",
		`${fn:a\${var:b\}c}`,
	}
	for _, text := range texts {
		ast, err := tmplast.Build(text)
		if err != nil {
			t.Fatalf("Build(%q): unexpected error: %v", text, err)
		}
		var joined string
		for _, n := range ast.Nodes {
			joined += n.Segment
		}
		if joined != text {
			t.Errorf("Build(%q): segments joined = %q, want %q", text, joined, text)
		}
	}
}

func TestBuild_AbsentVsEmptyArguments(t *testing.T) {
	cases := []struct {
		text        string
		wantHasArgs bool
		wantNumArgs int
	}{
		{"${fn}", false, 0},
		{"${fn()}", true, 0},
		{"${fn(a)}", true, 1},
		{"${fn(a,b)}", true, 2},
	}
	for _, c := range cases {
		ast, err := tmplast.Build(c.text)
		if err != nil {
			t.Fatalf("Build(%q): unexpected error: %v", c.text, err)
		}
		if len(ast.Nodes) != 1 {
			t.Fatalf("Build(%q): got %d top-level nodes, want 1", c.text, len(ast.Nodes))
		}
		n := ast.Nodes[0]
		if n.HasArgs != c.wantHasArgs {
			t.Errorf("Build(%q): HasArgs = %v, want %v", c.text, n.HasArgs, c.wantHasArgs)
		}
		if n.HasArgs && len(n.Arguments) != c.wantNumArgs {
			t.Errorf("Build(%q): len(Arguments) = %d, want %d", c.text, len(n.Arguments), c.wantNumArgs)
		}
	}
}

func TestBuild_AbsentVsEmptyPath(t *testing.T) {
	cases := []struct {
		text        string
		wantHasPath bool
	}{
		{"${fn}", false},
		{"${fn:}", true},
		{"${fn():}", true},
		{"${fn:x}", true},
	}
	for _, c := range cases {
		ast, err := tmplast.Build(c.text)
		if err != nil {
			t.Fatalf("Build(%q): unexpected error: %v", c.text, err)
		}
		n := ast.Nodes[0]
		if n.HasPath != c.wantHasPath {
			t.Errorf("Build(%q): HasPath = %v, want %v", c.text, n.HasPath, c.wantHasPath)
		}
	}
}

func TestBuild_EscapedInnerIsLiteralInPath(t *testing.T) {
	ast, err := tmplast.Build(`${fn:a\${var:b\}c}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ast.Nodes) != 1 {
		t.Fatalf("got %d top-level nodes, want 1", len(ast.Nodes))
	}
	n := ast.Nodes[0]
	if !n.HasPath || len(n.Path) != 1 || !n.Path[0].IsLiteral() {
		t.Fatalf("Path = %+v, want a single literal node", n.Path)
	}
}

func TestBuild_NestedControlInPath(t *testing.T) {
	ast, err := tmplast.Build("${para:${para:ref}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := ast.Nodes[0]
	if n.Type != "para" || !n.HasPath {
		t.Fatalf("top node = %+v, want type para with a path", n)
	}
	if len(n.Path) != 1 || n.Path[0].Type != "para" {
		t.Fatalf("Path = %+v, want a single nested para control", n.Path)
	}
}

func TestBuild_MissingClosing_Errors(t *testing.T) {
	_, err := tmplast.Build("a${b")
	if err == nil {
		t.Fatal("expected an error for an unmatched opening")
	}
}

func TestBuild_RoundTrip_NoControls(t *testing.T) {
	text := "just plain text, no markers here."
	ast, err := tmplast.Build(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var joined string
	for _, n := range ast.Nodes {
		joined += n.Segment
	}
	if joined != text {
		t.Errorf("joined = %q, want %q", joined, text)
	}
}
