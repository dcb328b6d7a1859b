// Package template is the engine's library surface: construct a
// Template from text, then resolve it against a parameter map. It wires
// the AST builder, the Document View, and the fixpoint reducer together,
// and supplies the "file" resolver's recursive Template construction.
package template

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nkazin/preconfig/internal/cliio"
	"github.com/nkazin/preconfig/internal/docview"
	"github.com/nkazin/preconfig/internal/resolve"
	"github.com/nkazin/preconfig/internal/tmplast"
)

// Options configures a Template at construction time.
type Options struct {
	// CWD is the directory relative file references resolve against.
	// Defaults to the process working directory when empty.
	CWD string
}

// Template is a parsed, reusable template: the AST is built once at
// construction time, and Resolve may be called any number of times
// against different parameter maps.
type Template struct {
	ast tmplast.AST
	cwd string
}

// New parses text into a Template, failing with a *tmplerr.SyntaxError
// only through an unmatched "${".
func New(text string, opts Options) (*Template, error) {
	ast, err := tmplast.Build(text)
	if err != nil {
		return nil, err
	}
	cwd := opts.CWD
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	}
	return &Template{ast: ast, cwd: cwd}, nil
}

// Resolve runs the fixpoint reducer against parameters, the process
// environment, and this template's own content (for "self:" references),
// returning the fully resolved string or a *tmplerr.ReferenceError.
func (t *Template) Resolve(ctx context.Context, parameters map[string]string) (string, error) {
	rc := resolve.Context{
		CWD:        t.cwd,
		Parameter:  parameters,
		Self:       docview.Of(t.ast.Content),
		Env:        osEnv{},
		ResolveRef: t.resolveFileRef,
	}
	return resolve.Resolve(ctx, t.ast, rc)
}

// resolveFileRef implements resolve.FileResolver: it reads the referenced
// file, builds a new Template rooted at that file's own directory (so
// relative "file:" references inside it resolve correctly), and resolves
// it with the same parameter map.
func (t *Template) resolveFileRef(ctx context.Context, absPath string, parameters map[string]string) (string, error) {
	text, err := cliio.ReadTextFile(absPath)
	if err != nil {
		return "", err
	}
	sub, err := New(text, Options{CWD: filepath.Dir(absPath)})
	if err != nil {
		return "", err
	}
	return sub.Resolve(ctx, parameters)
}

// osEnv implements resolve.EnvLookup against the real process
// environment.
type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
