package extl

import (
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

// binder exposes a document to scripts through a small subset of the
// browser DOM API.
type binder struct {
	vm  *goja.Runtime
	doc *dom.Document
	l   logger.Logger
}

// install sets the document, location and setTimeout$ globals. reg must be
// hosted by the runtime owning vm: its callbacks call into the VM.
func (b *binder) install(reg *timers.Registry) error {
	document := b.vm.NewObject()
	if err := document.Set("querySelector", b.querySelector(b.doc.Root())); err != nil {
		return err
	}
	if err := document.Set("querySelectorAll", b.querySelectorAll(b.doc.Root())); err != nil {
		return err
	}
	if err := document.Set("documentElement", b.element(b.doc.Root().Children().First())); err != nil {
		return err
	}
	location := b.vm.NewObject()
	if loc := b.doc.Location(); loc != nil {
		_ = location.Set("href", loc.String())
		_ = location.Set("pathname", loc.Path)
		_ = location.Set("host", loc.Host)
	}
	if err := document.Set("location", location); err != nil {
		return err
	}
	if err := b.vm.Set("document", document); err != nil {
		return err
	}
	if err := b.vm.Set("location", location); err != nil {
		return err
	}
	return b.vm.Set(SET_TIMEOUT_KEYED, b.setTimeoutKeyed(reg))
}

func (b *binder) setTimeoutKeyed(reg *timers.Registry) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		key := call.Argument(0).String()
		cb, ok := goja.AssertFunction(call.Argument(1))
		if !ok {
			panic(b.vm.NewTypeError("%s: callback is not a function", SET_TIMEOUT_KEYED))
		}
		ms := call.Argument(2).ToFloat()
		if math.IsNaN(ms) || ms < 0 {
			ms = 0
		}
		reg.SetTimeout(key, func() {
			if _, err := cb(goja.Undefined()); err != nil {
				b.l.Error("client: timer %q: %v", key, err)
			}
		}, time.Duration(ms*float64(time.Millisecond)))
		return goja.Undefined()
	}
}

func (b *binder) querySelector(root *goquery.Selection) func(string) goja.Value {
	return func(css string) goja.Value {
		return b.element(root.Find(css))
	}
}

func (b *binder) querySelectorAll(root *goquery.Selection) func(string) goja.Value {
	return func(css string) goja.Value {
		var nodes []interface{}
		root.Find(css).Each(func(_ int, s *goquery.Selection) {
			nodes = append(nodes, b.element(s))
		})
		return b.vm.NewArray(nodes...)
	}
}

// element wraps the first node of sel, or returns null when sel is empty.
func (b *binder) element(sel *goquery.Selection) goja.Value {
	if sel.Length() == 0 {
		return goja.Null()
	}
	sel = sel.First()
	o := b.vm.NewObject()
	_ = o.Set("tagName", strings.ToUpper(goquery.NodeName(sel)))
	_ = o.Set("querySelector", b.querySelector(sel))
	_ = o.Set("querySelectorAll", b.querySelectorAll(sel))
	_ = o.Set("getAttribute", func(name string) goja.Value {
		v, ok := sel.Attr(name)
		if !ok {
			return goja.Null()
		}
		return b.vm.ToValue(v)
	})
	_ = o.Set("setAttribute", func(name, value string) {
		sel.SetAttr(name, value)
	})
	_ = o.Set("removeAttribute", func(name string) {
		sel.RemoveAttr(name)
	})
	_ = o.Set("hasAttribute", func(name string) bool {
		_, ok := sel.Attr(name)
		return ok
	})
	b.accessor(o, "href", func() goja.Value {
		return b.vm.ToValue(dom.Href(sel, b.doc.Location()))
	}, func(v goja.Value) {
		sel.SetAttr("href", v.String())
	})
	b.accessor(o, "textContent", func() goja.Value {
		return b.vm.ToValue(sel.Text())
	}, func(v goja.Value) {
		sel.SetText(v.String())
	})
	b.accessor(o, "className", func() goja.Value {
		return b.vm.ToValue(sel.AttrOr("class", ""))
	}, func(v goja.Value) {
		sel.SetAttr("class", v.String())
	})
	_ = o.Set("classList", b.classList(sel))
	_ = o.Set("style", b.vm.NewDynamicObject(&styleDecl{vm: b.vm, sel: sel}))
	return o
}

func (b *binder) accessor(o *goja.Object, name string, get func() goja.Value, set func(goja.Value)) {
	getter := b.vm.ToValue(func(goja.FunctionCall) goja.Value { return get() })
	setter := b.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		set(call.Argument(0))
		return goja.Undefined()
	})
	_ = o.DefineAccessorProperty(name, getter, setter, goja.FLAG_FALSE, goja.FLAG_TRUE)
}

func (b *binder) classList(sel *goquery.Selection) *goja.Object {
	list := b.vm.NewObject()
	_ = list.Set("add", func(call goja.FunctionCall) goja.Value {
		dom.AddClass(sel, tokens(call)...)
		return goja.Undefined()
	})
	_ = list.Set("remove", func(call goja.FunctionCall) goja.Value {
		dom.RemoveClass(sel, tokens(call)...)
		return goja.Undefined()
	})
	_ = list.Set("replace", func(old, repl string) bool {
		return dom.ReplaceClass(sel, old, repl)
	})
	_ = list.Set("contains", func(token string) bool {
		return sel.HasClass(token)
	})
	_ = list.Set("toggle", func(token string) bool {
		if sel.HasClass(token) {
			dom.RemoveClass(sel, token)
			return false
		}
		dom.AddClass(sel, token)
		return true
	})
	b.accessor(list, "length", func() goja.Value {
		return b.vm.ToValue(len(dom.Classes(sel)))
	}, func(goja.Value) {})
	return list
}

func tokens(call goja.FunctionCall) []string {
	out := make([]string, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		out = append(out, arg.String())
	}
	return out
}

// styleDecl backs element.style: camelCase properties map onto the
// declarations of the style attribute.
type styleDecl struct {
	vm  *goja.Runtime
	sel *goquery.Selection
}

func (s *styleDecl) Get(key string) goja.Value {
	if key == "cssText" {
		return s.vm.ToValue(s.sel.AttrOr("style", ""))
	}
	return s.vm.ToValue(dom.Style(s.sel, dom.CSSProperty(key)))
}

func (s *styleDecl) Set(key string, val goja.Value) bool {
	if key == "cssText" {
		s.sel.SetAttr("style", val.String())
		return true
	}
	v := ""
	if !goja.IsNull(val) && !goja.IsUndefined(val) {
		v = val.String()
	}
	dom.SetStyle(s.sel, dom.CSSProperty(key), v)
	return true
}

func (s *styleDecl) Has(key string) bool {
	return key == "cssText" || dom.Style(s.sel, dom.CSSProperty(key)) != ""
}

func (s *styleDecl) Delete(key string) bool {
	dom.SetStyle(s.sel, dom.CSSProperty(key), "")
	return true
}

func (s *styleDecl) Keys() []string {
	return nil
}
