package resolve

import (
	"context"
	"encoding/base64"
	"path/filepath"

	"github.com/nkazin/preconfig/internal/docview"
	"github.com/nkazin/preconfig/internal/tmplast"
	"github.com/nkazin/preconfig/internal/tmplerr"
)

// ResolvedNode is a node whose Arguments and Path have already been reduced
// to plain strings — the shape every Resolver consumes.
type ResolvedNode struct {
	Type    string
	Segment string
	Args    []string // nil when the header had no "(...)"
	HasArgs bool
	Path    string
	HasPath bool
}

// Outcome is a Resolver's non-error result: either a resolved string Value
// or "try again later" (Pending). Hard failures are returned as the
// Resolver's error instead.
type Outcome struct {
	Value   string
	Pending bool
}

// Resolver consumes a fully-resolved node and the Context and returns the
// resolved string, or Pending when it cannot yet be determined (the
// reducer will retry on a later pass), or an error for failures that can
// never be satisfied by further resolution (a missing file, a malformed
// template reference to a non-structured document).
type Resolver func(ctx context.Context, node ResolvedNode, rc Context) (Outcome, error)

// Registry is the fixed mapping from control-source name to Resolver.
var Registry = map[string]Resolver{
	"para":         resolvePara,
	"env":          resolveEnv,
	"file":         resolveFile,
	"self":         resolveSelf,
	"base64encode": resolveBase64Encode,
	"base64decode": resolveBase64Decode,
}

type pathMode int

const (
	pathForbidden pathMode = iota
	pathOptional
	pathRequired
)

// validateInput enforces the resolver's fixed argument count and path
// requirement, raising a SyntaxError on mismatch. argCount == 0 means the
// header must carry no "(...)" at all — even an explicit "()" is invalid
// for a zero-argument source.
func validateInput(node ResolvedNode, argCount int, mode pathMode) error {
	if argCount == 0 {
		if node.HasArgs {
			return tmplerr.NewSyntaxError(-1, "%q takes no arguments", node.Type)
		}
	} else if !node.HasArgs || len(node.Args) != argCount {
		return tmplerr.NewSyntaxError(-1, "%q requires exactly %d argument(s)", node.Type, argCount)
	}

	switch mode {
	case pathRequired:
		if !node.HasPath {
			return tmplerr.NewSyntaxError(-1, "%q requires a path", node.Type)
		}
	case pathForbidden:
		if node.HasPath {
			return tmplerr.NewSyntaxError(-1, "%q does not accept a path", node.Type)
		}
	}
	return nil
}

func resolvePara(_ context.Context, node ResolvedNode, rc Context) (Outcome, error) {
	if err := validateInput(node, 0, pathRequired); err != nil {
		return Outcome{}, err
	}
	v, ok := lookupDotted(rc.Parameter, node.Path)
	if !ok {
		return Outcome{Pending: true}, nil
	}
	return Outcome{Value: v}, nil
}

func resolveEnv(_ context.Context, node ResolvedNode, rc Context) (Outcome, error) {
	if err := validateInput(node, 0, pathRequired); err != nil {
		return Outcome{}, err
	}
	v, ok := rc.Env.Lookup(node.Path)
	if !ok {
		return Outcome{Pending: true}, nil
	}
	return Outcome{Value: v}, nil
}

func resolveFile(ctx context.Context, node ResolvedNode, rc Context) (Outcome, error) {
	if err := validateInput(node, 1, pathOptional); err != nil {
		return Outcome{}, err
	}
	target := node.Args[0]
	if target == "" {
		return Outcome{}, tmplerr.NewReferenceError([]string{node.Segment})
	}
	absPath := target
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(rc.CWD, absPath)
	}

	resolvedText, err := rc.ResolveRef(ctx, absPath, rc.Parameter)
	if err != nil {
		return Outcome{}, tmplerr.NewReferenceError([]string{node.Segment})
	}

	value, ok, err := docview.ExtractFromRaw(resolvedText, node.Path)
	if err != nil {
		return Outcome{}, tmplerr.NewImplementationError("%v", err)
	}
	if !ok {
		return Outcome{Pending: true}, nil
	}
	return Outcome{Value: value}, nil
}

func resolveSelf(_ context.Context, node ResolvedNode, rc Context) (Outcome, error) {
	if err := validateInput(node, 0, pathRequired); err != nil {
		return Outcome{}, err
	}
	if rc.Self.IsText() {
		return Outcome{}, tmplerr.NewReferenceError([]string{node.Segment})
	}
	value, ok, err := rc.Self.Lookup(node.Path)
	if err != nil {
		return Outcome{}, tmplerr.NewImplementationError("%v", err)
	}
	if !ok {
		return Outcome{Pending: true}, nil
	}

	// If the extracted value still contains unresolved control
	// expressions, wait for a later pass to finish resolving it.
	ast, buildErr := tmplast.Build(value)
	if buildErr == nil {
		for _, n := range ast.Nodes {
			if !n.IsLiteral() {
				return Outcome{Pending: true}, nil
			}
		}
	}
	return Outcome{Value: value}, nil
}

func resolveBase64Encode(_ context.Context, node ResolvedNode, _ Context) (Outcome, error) {
	if err := validateInput(node, 1, pathForbidden); err != nil {
		return Outcome{}, err
	}
	return Outcome{Value: base64.StdEncoding.EncodeToString([]byte(node.Args[0]))}, nil
}

func resolveBase64Decode(_ context.Context, node ResolvedNode, _ Context) (Outcome, error) {
	if err := validateInput(node, 1, pathOptional); err != nil {
		return Outcome{}, err
	}
	decoded, err := base64.StdEncoding.DecodeString(node.Args[0])
	if err != nil {
		return Outcome{}, tmplerr.NewReferenceError([]string{node.Segment})
	}
	value, ok, err := docview.ExtractFromRaw(string(decoded), node.Path)
	if err != nil {
		return Outcome{}, tmplerr.NewImplementationError("%v", err)
	}
	if !ok {
		return Outcome{Pending: true}, nil
	}
	return Outcome{Value: value}, nil
}

// lookupDotted looks up path in the flat parameter map. Parameters are
// map[string]string, not structured data, so unlike self/file/base64decode
// paths there is no nested traversal: "a.b" is one literal key.
func lookupDotted(m map[string]string, path string) (string, bool) {
	v, ok := m[path]
	return v, ok
}
