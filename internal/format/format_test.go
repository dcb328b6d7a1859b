package format_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nkazin/preconfig/internal/format"
)

func TestFormat_Text_Identity(t *testing.T) {
	got, err := format.Format("hello, world", format.Text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello, world" {
		t.Errorf("got %q, want %q", got, "hello, world")
	}
}

func TestFormat_JSON_Indents(t *testing.T) {
	got, err := format.Format(`{"a":1,"b":2}`, format.JSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormat_JSON_InvalidInput(t *testing.T) {
	_, err := format.Format("not json", format.JSON)
	if err == nil {
		t.Fatal("expected an error for invalid json")
	}
}

func TestFormat_YAML_RoundTripsData(t *testing.T) {
	got, err := format.Format("b: 2\na: 1\n", format.YAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]int
	if err := yaml.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("re-decoding formatted yaml: %v", err)
	}
	want := map[string]int{"a": 1, "b": 2}
	if decoded["a"] != want["a"] || decoded["b"] != want["b"] || len(decoded) != len(want) {
		t.Errorf("decoded = %v, want %v", decoded, want)
	}
}

func TestFormat_UnknownFormat(t *testing.T) {
	_, err := format.Format("x", format.To("xml"))
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
