// Package docview implements the Document View — the structured
// interpretation of the template-so-far used to answer "self:" lookups —
// and the dotted-path extraction helpers shared by the self/file/base64decode
// resolvers.
package docview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nkazin/preconfig/internal/docparse"
	"github.com/nkazin/preconfig/internal/tmplerr"
)

// View is a tagged value: text, a single JSON/YAML document, or a
// multi-document YAML stream. For KindMulti, dotted paths are prefixed
// with the zero-based document index ("self:0.name", "self:1.name", ...).
type View struct {
	Kind docparse.Kind
	Data any
}

// Of builds a View from text by delegating to the structured parser.
func Of(text string) View {
	r := docparse.Parse(text)
	return View{Kind: r.Kind, Data: r.Data}
}

// Lookup resolves a dotted path against v. For KindText it always fails —
// callers (the self resolver) must check IsText first and raise their own
// ReferenceError with source-specific wording. For KindMulti, path must
// begin with the zero-based document index ("0.name"); a bad or missing
// index resolves to not-found rather than an error, since a template
// that hasn't finished resolving may still produce a path like that.
func (v View) Lookup(path string) (string, bool, error) {
	switch v.Kind {
	case docparse.KindText:
		return "", false, nil
	case docparse.KindMulti:
		docs, _ := v.Data.([]any)
		idx, rest, ok := MultiPrefix(path)
		if !ok || idx < 0 || idx >= len(docs) {
			return "", false, nil
		}
		return ExtractFromJSON(docs[idx], rest)
	default:
		return ExtractFromJSON(v.Data, path)
	}
}

// IsText reports whether v holds plain, unstructured text.
func (v View) IsText() bool {
	return v.Kind == docparse.KindText
}

// ExtractFromJSON performs a dotted-path lookup into a parsed JSON/YAML
// value: "a.b.2" indexes key "a", then key "b", then array element 2.
// Keys containing a literal "." are ambiguous with path-segment
// boundaries; this ambiguity is inherited, not resolved.
//
// Returns the string form of booleans/numbers, the string itself for
// strings, a JSON-serialized form for objects/arrays, and ok=false when
// the path resolves to nothing.
func ExtractFromJSON(data any, path string) (string, bool, error) {
	cur := data
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			next, ok, err := index(cur, seg)
			if err != nil {
				return "", false, err
			}
			if !ok {
				return "", false, nil
			}
			cur = next
		}
	}
	s, err := stringify(cur)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func index(cur any, seg string) (any, bool, error) {
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[seg]
		return v, ok, nil
	case []any:
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 || n >= len(c) {
			return nil, false, nil
		}
		return c[n], true, nil
	default:
		return nil, false, nil
	}
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", tmplerr.NewImplementationError("serializing extracted value: %v", err)
		}
		return string(b), nil
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", tmplerr.NewImplementationError("serializing extracted value: %v", err)
		}
		return string(b), nil
	}
}

// ExtractFromRaw implements the "file"/"base64decode" path-extraction
// contract: an empty path returns content verbatim; a non-empty path asks
// the structured parser to interpret content and, if it parsed as
// anything but plain text, applies ExtractFromJSON; plain text with a
// non-empty path is an ImplementationError-adjacent user error — the
// content simply isn't structured enough to index.
func ExtractFromRaw(content, path string) (string, bool, error) {
	if path == "" {
		return content, true, nil
	}
	v := Of(content)
	if v.IsText() {
		return "", false, fmt.Errorf("cannot resolve a path for a non-json/yaml content")
	}
	return ExtractFromJSON(v.Data, path)
}

// MultiPrefix splits a "self:" path for a multi-document view into its
// leading document index and the remaining dotted path, e.g.
// "0.name" -> (0, "name").
func MultiPrefix(path string) (int, string, bool) {
	idx := strings.IndexByte(path, '.')
	head := path
	rest := ""
	if idx >= 0 {
		head = path[:idx]
		rest = path[idx+1:]
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", false
	}
	return n, rest, true
}
