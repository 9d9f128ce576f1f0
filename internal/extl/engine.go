package extl

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/PuerkitoBio/goquery"
	"github.com/dop251/goja"
	"github.com/spf13/afero"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

// Engine holds the components found under a root directory and mounts them
// onto documents in the client context.
type Engine struct {
	l          logger.Logger
	fsys       afero.Fs
	root       string
	components []*Component
	byName     map[string]*Component
}

// NewEngine loads every component directory directly under root. Directories
// without a manifest are skipped with a warning.
func NewEngine(l logger.Logger, fsys afero.Fs, root string) (*Engine, error) {
	if l == nil {
		l = logger.NewNopLogger()
	}
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read components: %w", err)
	}
	e := &Engine{
		l:      l,
		fsys:   fsys,
		root:   root,
		byName: make(map[string]*Component),
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := path.Join(root, entry.Name())
		c, err := OpenComponent(fsys, dir)
		// bare ErrInvalidComponent: no manifest at all
		if err == ErrInvalidComponent {
			l.Warning("extl: skipping %s: no %s", dir, MANIFEST_FILE)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		if _, ok := e.byName[c.Name]; ok {
			return nil, fmt.Errorf("%s: %w: %s", dir, ErrDuplicateName, c.Name)
		}
		e.byName[c.Name] = c
		e.components = append(e.components, c)
		l.Debug("extl: loaded component %s@%s", c.Name, c.Version)
	}
	return e, nil
}

// Components returns the loaded components, ordered by directory name.
func (e *Engine) Components() []*Component {
	return e.components
}

// Component returns the component called name, or nil.
func (e *Engine) Component(name string) *Component {
	return e.byName[name]
}

// NewRuntime returns a client context able to require the engine's
// components.
func (e *Engine) NewRuntime() *Runtime {
	return NewRuntime(e.l, e.fsys, e.root)
}

// Mount installs the DOM globals of doc into rt, with setTimeout$ bound to
// reg, then calls onMount of every component once per element matching its
// selectors. It returns the number of onMount calls made. Timers scheduled
// by the scripts keep running after Mount returns; see Runtime.Drain.
func (e *Engine) Mount(rt *Runtime, reg *timers.Registry, doc *dom.Document) (int, error) {
	mounted := 0
	err := rt.Do(func(vm *goja.Runtime) error {
		b := &binder{vm: vm, doc: doc, l: e.l}
		if err := b.install(reg); err != nil {
			return err
		}
		for _, c := range e.components {
			n, err := e.mountComponent(vm, b, c)
			mounted += n
			if err != nil {
				return fmt.Errorf("%s: %w", c.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return mounted, err
	}
	e.l.Info("mounted %d component(s) in the client context", mounted)
	return mounted, nil
}

func (e *Engine) mountComponent(vm *goja.Runtime, b *binder, c *Component) (int, error) {
	var targets []*goquery.Selection
	for _, sel := range c.Matches {
		b.doc.Root().Find(sel).Each(func(_ int, s *goquery.Selection) {
			targets = append(targets, s)
		})
	}
	if len(targets) == 0 {
		return 0, nil
	}
	req, ok := goja.AssertFunction(vm.Get("require"))
	if !ok {
		return 0, errors.New("require is not available")
	}
	exports, err := req(goja.Undefined(), vm.ToValue(c.modulePath()))
	if err != nil {
		return 0, err
	}
	if goja.IsUndefined(exports) || goja.IsNull(exports) {
		return 0, ErrMountNotDefined
	}
	obj := exports.ToObject(vm)
	onMount, ok := goja.AssertFunction(obj.Get(MOUNT_CALLBACK))
	if !ok {
		return 0, ErrMountNotDefined
	}
	n := 0
	for _, s := range targets {
		if _, err := onMount(obj, b.element(s)); err != nil {
			return n, err
		}
		n++
	}
	e.l.Debug("extl: %s mounted on %d element(s)", c.Name, n)
	return n, nil
}

// Run mounts the components onto doc in a fresh client context and waits
// for the timers the scripts scheduled, or for ctx to be done.
func (e *Engine) Run(ctx context.Context, doc *dom.Document) (int, error) {
	rt := e.NewRuntime()
	defer rt.Close()
	n, err := e.Mount(rt, timers.New(rt), doc)
	if err != nil {
		return n, err
	}
	return n, rt.Drain(ctx)
}
