package dom

import (
	"strings"
	"testing"
)

func TestReplaceClass(t *testing.T) {
	tests := []struct {
		name    string
		class   string
		old     string
		repl    string
		want    string
		changed bool
	}{
		{"keeps position", "font-mono text-green-600 text-sm", "text-green-600", "text-slate-600", "font-mono text-slate-600 text-sm", true},
		{"absent is noop", "font-mono", "text-green-600", "text-slate-600", "font-mono", false},
		{"dedups replacement", "text-green-600 text-slate-600", "text-green-600", "text-slate-600", "text-slate-600", true},
		{"same token", "a b", "a", "a", "a b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, `<span id="s" class="`+tt.class+`">x</span>`, "http://localhost/")
			sel := d.Root().Find("#s")
			if got := ReplaceClass(sel, tt.old, tt.repl); got != tt.changed {
				t.Fatalf("ReplaceClass returned %v, want %v", got, tt.changed)
			}
			if got := strings.Join(Classes(sel), " "); got != tt.want {
				t.Errorf("class = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceClassEmptySelection(t *testing.T) {
	d := mustParse(t, `<p>x</p>`, "http://localhost/")
	if ReplaceClass(d.Root().Find("#missing"), "a", "b") {
		t.Fatal("expected no change on empty selection")
	}
}

func TestRemoveAndAddClassSingleSpaced(t *testing.T) {
	d := mustParse(t, `<a id="a" class="px-2 hover:bg-blue-200 hover:text-blue-700 active:bg-blue-300">A</a>`, "http://localhost/")
	a := d.Root().Find("#a")
	RemoveClass(a, "hover:bg-blue-200", "hover:text-blue-700", "active:bg-blue-300")
	if got := a.AttrOr("class", ""); got != "px-2" {
		t.Fatalf("after remove class = %q", got)
	}
	AddClass(a, "text-slate-600", "px-2")
	if got := a.AttrOr("class", ""); got != "px-2 text-slate-600" {
		t.Fatalf("after add class = %q", got)
	}
	if !strings.Contains(d.String(), `class="px-2 text-slate-600"`) {
		t.Fatalf("rendered: %s", d.String())
	}
}

func TestRemoveClassWithoutAttribute(t *testing.T) {
	d := mustParse(t, `<p id="p">x</p>`, "http://localhost/")
	p := d.Root().Find("#p")
	RemoveClass(p, "a")
	if _, ok := p.Attr("class"); ok {
		t.Fatal("class attribute created by remove")
	}
	AddClass(p, "a")
	RemoveClass(p, "a")
	if got, ok := p.Attr("class"); !ok || got != "" {
		t.Fatalf("class = %q, %v; want empty attribute", got, ok)
	}
}
