package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkazin/preconfig/internal/tmplerr"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	c := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)
	c.SetIn(strings.NewReader(stdin))
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_ResolvesFileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.txt")
	if err := os.WriteFile(path, []byte("hello, ${para:name}!"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	out, _, err := runRoot(t, "", path, "-p", "name=world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello, world!\n" {
		t.Errorf("stdout = %q, want %q", out, "hello, world!\n")
	}
}

func TestRootCmd_ReadsFromStdinWhenNoFileGiven(t *testing.T) {
	out, _, err := runRoot(t, "hello, ${para:name}!", "-p", "name=world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello, world!\n" {
		t.Errorf("stdout = %q, want %q", out, "hello, world!\n")
	}
}

func TestRootCmd_FormatFlagSelectsJSON(t *testing.T) {
	out, _, err := runRoot(t, `{"a":1,"b":2}`, "-f", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestRootCmd_InvalidParamFlag_ValidationError(t *testing.T) {
	_, _, err := runRoot(t, "abc", "-p", "not-a-pair")
	if err == nil {
		t.Fatal("expected an error for a malformed -p flag")
	}
	var val *tmplerr.ValidationError
	if !errors.As(err, &val) {
		t.Fatalf("err = %v, want *tmplerr.ValidationError", err)
	}
}

func TestRootCmd_MissingFile_Errors(t *testing.T) {
	_, _, err := runRoot(t, "", filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing template file")
	}
}

func TestRootCmd_UnresolvableReference_Errors(t *testing.T) {
	_, _, err := runRoot(t, "${para:missing}")
	if err == nil {
		t.Fatal("expected an error for an unresolvable reference")
	}
}

func TestPrintError_PlainError(t *testing.T) {
	r, w, _ := os.Pipe()
	code := PrintError(w, errFixture("boom"))
	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "error: boom") {
		t.Errorf("stderr = %q, want it to contain %q", buf.String(), "error: boom")
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
