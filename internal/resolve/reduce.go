package resolve

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nkazin/preconfig/internal/docview"
	"github.com/nkazin/preconfig/internal/tmplast"
	"github.com/nkazin/preconfig/internal/tmplerr"
)

// Resolve runs the fixpoint reducer to completion: it repeatedly reduces
// ast.Nodes, rebuilding the Document View from whatever has resolved so
// far between passes, until either only one top-level node (literal or
// not) remains or a full pass makes no progress. rc.Self is used as the initial Document
// View for pass one.
func Resolve(ctx context.Context, ast tmplast.AST, rc Context) (string, error) {
	nodes := ast.Nodes
	leafCount := countSeq(nodes)

	reduced, err := reduceSeq(ctx, nodes, rc)
	if err != nil {
		return "", err
	}
	nodes = reduced

	for len(nodes) > 1 && countSeq(nodes) != leafCount {
		snapshot, _ := stringifySeq(nodes, true)
		rc.Self = docview.Of(snapshot)
		leafCount = countSeq(nodes)

		reduced, err = reduceSeq(ctx, nodes, rc)
		if err != nil {
			return "", err
		}
		nodes = reduced
	}

	if out, ok := stringifySeq(nodes, false); ok {
		return out, nil
	}

	var segments []string
	for _, n := range nodes {
		if !n.IsLiteral() {
			segments = append(segments, n.Segment)
		}
	}
	return "", tmplerr.NewReferenceError(segments)
}

// countSeq counts every Node reachable through seq, recursing into each
// node's Arguments and Path. This is the monotone progress measure the
// fixpoint loop watches: a pass that resolves nothing anywhere in the
// tree leaves the count unchanged.
func countSeq(seq tmplast.Seq) int {
	n := len(seq)
	for _, node := range seq {
		for _, arg := range node.Arguments {
			n += countSeq(arg)
		}
		if node.HasPath {
			n += countSeq(node.Path)
		}
	}
	return n
}

// stringifySeq concatenates every node's Segment. With force==false it
// only succeeds when every node in seq is a literal; with force==true it
// always succeeds, using whatever segment (resolved or not) each node
// currently carries.
func stringifySeq(seq tmplast.Seq, force bool) (string, bool) {
	if !force {
		for _, n := range seq {
			if !n.IsLiteral() {
				return "", false
			}
		}
	}
	out := ""
	for _, n := range seq {
		out += n.Segment
	}
	return out, true
}

// reduceSeq performs one reduction pass over seq: every node is reduced
// (concurrently — nodes within a pass share no mutable state), and
// adjacent literal results are then coalesced into single nodes so the
// next pass's leaf count reflects structural, not lexical, progress.
func reduceSeq(ctx context.Context, seq tmplast.Seq, rc Context) (tmplast.Seq, error) {
	out := make(tmplast.Seq, len(seq))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.GOMAXPROCS(0)))
	for i, node := range seq {
		i, node := i, node
		g.Go(func() error {
			reduced, err := reduceNode(gctx, node, rc)
			if err != nil {
				return err
			}
			out[i] = reduced
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return coalesce(out), nil
}

// reduceNode reduces a single node: its Arguments and Path sequences are
// reduced recursively first; only once every argument and the path (if
// any) have reduced to plain literal text is the node's resolver
// dispatched. A resolver returning Pending, or any argument/path not yet
// fully literal, leaves the node in place (with its partially-reduced
// Arguments/Path) for the next pass.
func reduceNode(ctx context.Context, node tmplast.Node, rc Context) (tmplast.Node, error) {
	if node.IsLiteral() {
		return node, nil
	}

	var args []string
	allArgsLiteral := true
	var newArgs []tmplast.Seq
	if node.HasArgs {
		newArgs = make([]tmplast.Seq, len(node.Arguments))
		args = make([]string, len(node.Arguments))
		for i, argSeq := range node.Arguments {
			reducedArg, err := reduceSeq(ctx, argSeq, rc)
			if err != nil {
				return node, err
			}
			newArgs[i] = reducedArg
			s, ok := stringifySeq(reducedArg, false)
			if !ok {
				allArgsLiteral = false
				continue
			}
			args[i] = s
		}
	}

	var path string
	pathLiteral := true
	var newPath tmplast.Seq
	if node.HasPath {
		reducedPath, err := reduceSeq(ctx, node.Path, rc)
		if err != nil {
			return node, err
		}
		newPath = reducedPath
		s, ok := stringifySeq(reducedPath, false)
		if !ok {
			pathLiteral = false
		} else {
			path = s
		}
	}

	next := node
	next.Arguments = newArgs
	next.Path = newPath

	if !allArgsLiteral || !pathLiteral {
		return next, nil
	}

	resolver, known := Registry[node.Type]
	if !known {
		return next, nil
	}

	rn := ResolvedNode{
		Type:    node.Type,
		Segment: node.Segment,
		Args:    args,
		HasArgs: node.HasArgs,
		Path:    path,
		HasPath: node.HasPath,
	}
	out, err := resolver(ctx, rn, rc)
	if err != nil {
		return next, err
	}
	if out.Pending {
		return next, nil
	}
	return tmplast.Node{Type: tmplast.Literal, Segment: out.Value}, nil
}

// coalesce merges every run of adjacent literal nodes into one, so that
// two literal neighbors are never left adjacent in a reduced sequence.
func coalesce(seq tmplast.Seq) tmplast.Seq {
	out := make(tmplast.Seq, 0, len(seq))
	for _, n := range seq {
		if n.IsLiteral() && len(out) > 0 && out[len(out)-1].IsLiteral() {
			out[len(out)-1].Segment += n.Segment
			continue
		}
		out = append(out, n)
	}
	return out
}
