package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMainVersion(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"pagekit", "version"}
	defer func() { os.Args = oldArgs }()
	oldExit := osExit
	osExit = func(code int) {
		if code != 0 {
			t.Fatalf("unexpected exit code: %d", code)
		}
	}
	defer func() { osExit = oldExit }()
	main()
}

func TestRunMainError(t *testing.T) {
	code := runMain([]string{"pagekit"}, func([]string) error {
		return errors.New("boom")
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunMainSuccess(t *testing.T) {
	code := runMain([]string{"pagekit"}, func([]string) error { return nil })
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRunMainMountMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.html")
	code := runMain([]string{"pagekit", "mount", "--context", "render", missing}, execute)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunMainMountFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	out := filepath.Join(dir, "out.html")
	src := `<nav data-mount="navbar"><a href="/">Home</a></nav>`
	if err := os.WriteFile(page, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code := runMain([]string{"pagekit", "mount", "--context", "render", "--url", "http://localhost", "-o", out, page}, execute)
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), `<a href="/" style="pointer-events: none; cursor: not-allowed;" class="text-slate-600">`) {
		t.Fatalf("unexpected output: %s", b)
	}
}
