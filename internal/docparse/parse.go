// Package docparse interprets arbitrary text as structured data: try
// JSON first, then one or more "---"-separated YAML documents, and fall
// back to plain text. It never fails — every input resolves to some
// Kind.
package docparse

import (
	"bytes"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Kind discriminates how a piece of text was interpreted.
type Kind int

const (
	KindText Kind = iota
	KindJSON
	KindYAML
	KindMulti
)

// Result is the parsed interpretation of a text. Data holds a
// map[string]any/[]any for KindJSON/KindYAML, []any (one element per
// document) for KindMulti, and the original string for KindText.
type Result struct {
	Kind Kind
	Data any
}

// Parse tries JSON, then YAML, and takes the first that succeeds; only
// objects/arrays are accepted for JSON and YAML — a bare primitive at the
// root falls through to the next parser, ultimately to plain text. A YAML
// stream of exactly one "---"-separated document is KindYAML; two or more
// is KindMulti, since yaml.Unmarshal itself would silently decode only the
// first document of a multi-document stream and never notice the rest.
func Parse(text string) Result {
	if data, ok := parseJSON(text); ok {
		return Result{Kind: KindJSON, Data: data}
	}
	if docs, ok := parseYAMLDocs(text); ok {
		if len(docs) == 1 {
			return Result{Kind: KindYAML, Data: docs[0]}
		}
		return Result{Kind: KindMulti, Data: docs}
	}
	return Result{Kind: KindText, Data: text}
}

func parseJSON(text string) (any, bool) {
	var v any
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	// Reject trailing content so a "---"-separated stream of JSON-looking
	// documents falls through to the YAML parsers instead of silently
	// decoding only its first document.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, false
	}
	if !isContainer(v) {
		return nil, false
	}
	return v, true
}

// parseYAMLDocs decodes every "---"-separated document in text, requiring
// at least one document and every document to decode as a container.
func parseYAMLDocs(text string) ([]any, bool) {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(text)))
	var docs []any
	for {
		var v any
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false
		}
		if !isContainer(v) {
			return nil, false
		}
		docs = append(docs, v)
	}
	if len(docs) == 0 {
		return nil, false
	}
	return docs, true
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
