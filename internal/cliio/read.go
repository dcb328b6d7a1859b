// Package cliio implements the "text reader" and "-p key=value" parsing
// collaborators consumed by the CLI and, for file references, by the
// template engine itself.
package cliio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nkazin/preconfig/internal/tmplerr"
)

// ReadTextFile reads the file at absPath as text, failing with
// "file not found: <path>" when it doesn't exist.
func ReadTextFile(absPath string) (string, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		return "", err
	}
	return string(data), nil
}

// ReadStdin reads all of stdin as text.
func ReadStdin(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// ParseParams turns a list of "key=value" strings (the repeated -p flag)
// into a parameter map, raising a ValidationError for any entry missing
// the "=" separator. This validation belongs to the CLI, never the
// engine.
func ParseParams(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, tmplerr.NewValidationError("invalid -p value %q: expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}
