// Package format pretty-prints a resolved string as text, JSON, or
// YAML. It is invoked only by the CLI, never by the engine.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// To names the output format the CLI's -f/--format flag selects.
type To string

const (
	Text To = "text"
	JSON To = "json"
	YAML To = "yaml"
)

// Format pretty-prints resolved text as the requested output format.
// "text" is the identity function; "json" re-indents the resolved JSON;
// "yaml" re-decodes and re-encodes through yaml.v3 so map keys and
// indentation come out canonical regardless of how the source was
// written.
func Format(resolved string, to To) (string, error) {
	switch to {
	case "", Text:
		return resolved, nil
	case JSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(resolved), "", "  "); err != nil {
			return "", fmt.Errorf("formatting as json: %w", err)
		}
		return buf.String(), nil
	case YAML:
		var v any
		if err := yaml.Unmarshal([]byte(resolved), &v); err != nil {
			return "", fmt.Errorf("formatting as yaml: %w", err)
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("formatting as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("formatting as yaml: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", to)
	}
}
