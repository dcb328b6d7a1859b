// Package resolve implements the Resolver Registry and Fixpoint Reducer:
// the components that turn a tmplast.AST into a fully resolved string (or
// fail with a tmplerr.ReferenceError naming every control expression that
// never resolved).
package resolve

import (
	"context"

	"github.com/nkazin/preconfig/internal/docview"
)

// EnvLookup abstracts process-environment reads so tests can substitute
// a fake map.
type EnvLookup interface {
	Lookup(key string) (string, bool)
}

// FileResolver reads and fully resolves the template rooted at absPath
// with the given parameters, returning its resolved text. The resolve
// package only knows this as a function value — the cycle with the
// template package that implements recursive resolution is broken here.
type FileResolver func(ctx context.Context, absPath string, parameters map[string]string) (string, error)

// Context is the immutable, per-resolve-call environment every resolver
// sees. It never changes mid-pass; the Document View is swapped out only
// between passes by the reducer.
type Context struct {
	CWD        string
	Parameter  map[string]string
	Self       docview.View
	Env        EnvLookup
	ResolveRef FileResolver
}
