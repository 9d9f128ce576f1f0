package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/warpdl/pagekit/cmd/common"
)

const testPage = `<!DOCTYPE html>
<html><body>
<nav data-mount="navbar">
<a href="/" class="px-2 hover:bg-blue-200 hover:text-blue-700 active:bg-blue-300">Home</a>
<a href="/about" class="px-2 hover:bg-blue-200 hover:text-blue-700 active:bg-blue-300">About</a>
</nav>
<p id="timestamp" data-mount="timestamp">Rendered <span class="text-green-600">12:00</span></p>
</body></html>`

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	app := newApp(BuildArgs{Version: "test", BuildType: "dev"})
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"pagekit"}, args...))
	return out.String(), errOut.String(), err
}

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	old := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = old })
	return appFs
}

func writePage(t *testing.T, fsys afero.Fs, name string) {
	t.Helper()
	if err := afero.WriteFile(fsys, name, []byte(testPage), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	if err := Execute([]string{"pagekit", "version"}, BuildArgs{Version: "1.2.3", BuildType: "release"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(common.VersionCmdStr, "pagekit 1.2.3-release") {
		t.Fatalf("unexpected version string: %q", common.VersionCmdStr)
	}
}

func TestMountContexts(t *testing.T) {
	for _, c := range []string{"render", "client", "both"} {
		t.Run(c, func(t *testing.T) {
			fsys := useMemFs(t)
			writePage(t, fsys, "/index.html")
			out, _, err := runApp(t, "mount", "--url", "http://localhost/about", "--context", c, "/index.html")
			if err != nil {
				t.Fatalf("mount: %v", err)
			}
			if !strings.Contains(out, `<a href="/about" class="px-2 text-slate-600" style="pointer-events: none; cursor: not-allowed;">`) {
				t.Fatalf("current link not disabled:\n%s", out)
			}
			if !strings.Contains(out, `<a href="/" class="px-2 hover:bg-blue-200 hover:text-blue-700 active:bg-blue-300">`) {
				t.Fatalf("other link changed:\n%s", out)
			}
			if !strings.Contains(out, `<span class="text-slate-600">12:00</span>`) {
				t.Fatalf("timestamp not faded:\n%s", out)
			}
		})
	}
}

func TestMountBareHostURL(t *testing.T) {
	for _, c := range []string{"render", "client"} {
		t.Run(c, func(t *testing.T) {
			fsys := useMemFs(t)
			writePage(t, fsys, "/index.html")
			out, _, err := runApp(t, "mount", "--url", "http://localhost", "--context", c, "/index.html")
			if err != nil {
				t.Fatalf("mount: %v", err)
			}
			if !strings.Contains(out, `<a href="/" class="px-2 text-slate-600" style="pointer-events: none; cursor: not-allowed;">`) {
				t.Fatalf("home link not disabled:\n%s", out)
			}
		})
	}
}

func TestMountTimeoutStopsBothContexts(t *testing.T) {
	fsys := useMemFs(t)
	writePage(t, fsys, "/index.html")
	out, errOut, err := runApp(t, "mount", "--context", "both", "--timeout", "1ms", "/index.html")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !strings.Contains(out, `<span class="text-green-600">12:00</span>`) {
		t.Fatalf("fade ran after the deadline:\n%s", out)
	}
	if !strings.Contains(out, `<a href="/" class="px-2 text-slate-600"`) {
		t.Fatalf("client mount skipped after render timeout:\n%s", out)
	}
	for _, c := range []string{"render: timers still pending", "client: timers still pending"} {
		if !strings.Contains(errOut, c) {
			t.Fatalf("missing %q in %q", c, errOut)
		}
	}
}

func TestMountFromStdin(t *testing.T) {
	old := stdin
	stdin = strings.NewReader(testPage)
	defer func() { stdin = old }()
	out, _, err := runApp(t, "mount", "--context", "render", "-")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !strings.Contains(out, `<a href="/" class="px-2 text-slate-600"`) {
		t.Fatalf("home link not disabled:\n%s", out)
	}
}

func TestMountOutputFile(t *testing.T) {
	fsys := useMemFs(t)
	writePage(t, fsys, "/index.html")
	out, _, err := runApp(t, "mount", "--context", "render", "-o", "/out.html", "/index.html")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if out != "" {
		t.Fatalf("unexpected stdout: %q", out)
	}
	b, err := afero.ReadFile(fsys, "/out.html")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(b), "text-slate-600") {
		t.Fatalf("unexpected output file:\n%s", b)
	}
}

func TestMountTimeoutWritesPartialDocument(t *testing.T) {
	fsys := useMemFs(t)
	writePage(t, fsys, "/index.html")
	out, errOut, err := runApp(t, "mount", "--context", "render", "--timeout", "20ms", "/index.html")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !strings.Contains(out, `<span class="text-green-600">12:00</span>`) {
		t.Fatalf("timestamp faded before the deadline:\n%s", out)
	}
	if !strings.Contains(errOut, "timers still pending") {
		t.Fatalf("missing warning: %q", errOut)
	}
}

func TestMountMissingFile(t *testing.T) {
	useMemFs(t)
	if _, _, err := runApp(t, "mount", "/missing.html"); err == nil {
		t.Fatal("expected error")
	}
}

func TestMountBadContext(t *testing.T) {
	fsys := useMemFs(t)
	writePage(t, fsys, "/index.html")
	out, errOut, err := runApp(t, "mount", "--context", "server", "/index.html")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !strings.Contains(errOut, "unknown timer context") {
		t.Fatalf("missing usage error: %q", errOut)
	}
	if strings.Contains(out, "<html>") {
		t.Fatal("document written despite usage error")
	}
}

func TestMountCustomComponents(t *testing.T) {
	fsys := useMemFs(t)
	writePage(t, fsys, "/index.html")
	files := map[string]string{
		"/components/badge/manifest.json": `{"name":"badge","version":"0.1","matches":["nav"]}`,
		"/components/badge/main.js":       `exports.onMount = function (el) { el.setAttribute("data-badge", "on"); };`,
	}
	for name, body := range files {
		if err := afero.WriteFile(fsys, name, []byte(body), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	out, _, err := runApp(t, "mount", "--context", "client", "--components", "/components", "/index.html")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	if !strings.Contains(out, `data-badge="on"`) {
		t.Fatalf("custom component not mounted:\n%s", out)
	}
}

func TestComponentsBuiltin(t *testing.T) {
	out, _, err := runApp(t, "components")
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	for _, want := range []string{"NAME", "navbar", "timestamp"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestComponentsEmptyDir(t *testing.T) {
	fsys := useMemFs(t)
	if err := fsys.MkdirAll("/empty", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	out, _, err := runApp(t, "ls", "-c", "/empty")
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	if !strings.Contains(out, "no components found") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestComponentsMissingDir(t *testing.T) {
	useMemFs(t)
	_, errOut, err := runApp(t, "components", "-c", "/nope")
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	if !strings.Contains(errOut, "components[load]") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestParseContextSelection(t *testing.T) {
	tests := []struct {
		in     string
		render bool
		client bool
		err    bool
	}{
		{"both", true, true, false},
		{"render", true, false, false},
		{" Client ", false, true, false},
		{"server", false, false, true},
	}
	for _, tt := range tests {
		got, err := parseContextSelection(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("%q: err = %v", tt.in, err)
		}
		if got.render != tt.render || got.client != tt.client {
			t.Fatalf("%q: got %+v", tt.in, got)
		}
	}
}
