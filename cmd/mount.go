package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/warpdl/pagekit/cmd/common"
	"github.com/warpdl/pagekit/internal/components"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/internal/extl"
	"github.com/warpdl/pagekit/internal/loop"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

var (
	appFs afero.Fs  = afero.NewOsFs()
	stdin io.Reader = os.Stdin
)

type contextSelection struct {
	render bool
	client bool
}

func parseContextSelection(s string) (contextSelection, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return contextSelection{render: true, client: true}, nil
	}
	c, err := timers.ParseContext(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return contextSelection{}, err
	}
	return contextSelection{
		render: c == timers.ContextRender,
		client: c == timers.ContextClient,
	}, nil
}

func mount(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	src := ctx.Args().First()
	if src == "" {
		return common.PrintErrWithCmdHelp(
			ctx,
			errors.New("no input file provided"),
		)
	}
	sel, err := parseContextSelection(mountContext)
	if err != nil {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	l, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	doc, err := readDocument(src, mountLocation)
	if err != nil {
		return err
	}

	var eng *extl.Engine
	if sel.client {
		eng, err = loadEngine(l)
		if err != nil {
			return err
		}
	}

	c, cancel := context.WithTimeout(context.Background(), mountTimeout)
	defer cancel()
	p := newProgress(ctx)

	renderLoop := loop.New(context.Background(), loop.WithLogger(l))
	defer renderLoop.Close()
	var clientHost timers.Host
	var rt *extl.Runtime
	if sel.client {
		rt = eng.NewRuntime()
		defer rt.Close()
		clientHost = rt
	}
	set := timers.NewSet(clientHost, renderLoop)

	if sel.render {
		mounted := make(chan struct{})
		if !renderLoop.RunOnLoop(func() {
			components.Mount(doc, set.For(timers.ContextRender), l)
			close(mounted)
		}) {
			return loop.ErrClosed
		}
		<-mounted
		err = drain(c, p, timers.ContextRender, renderLoop, func() int {
			return int(renderLoop.Stats().Pending())
		})
		if err = settle(l, timers.ContextRender, err, renderLoop.Close); err != nil {
			return err
		}
	}
	if sel.client {
		if _, err = eng.Mount(rt, set.For(timers.ContextClient), doc); err != nil {
			return fmt.Errorf("mount: %w", err)
		}
		err = drain(c, p, timers.ContextClient, rt, rt.Pending)
		if err = settle(l, timers.ContextClient, err, rt.Close); err != nil {
			return err
		}
	}
	if p != nil {
		p.Wait()
	}
	return writeDocument(ctx, doc)
}

// settle stops the host of context c so that none of its timers can touch
// the document any more, and turns an expired wait into a warning: the
// document is written with whatever the fired timers changed.
func settle(l logger.Logger, c timers.Context, err error, stop func()) error {
	stop()
	if errors.Is(err, context.DeadlineExceeded) {
		l.Warning("%s: timers still pending after %v", c, mountTimeout)
		return nil
	}
	return err
}

func loadEngine(l logger.Logger) (*extl.Engine, error) {
	if componentsDir == "" {
		return extl.NewEngine(l, extl.Builtin(), extl.BuiltinRoot)
	}
	return extl.NewEngine(l, appFs, componentsDir)
}

func readDocument(src, location string) (*dom.Document, error) {
	if src == "-" {
		return dom.Parse(stdin, location)
	}
	f, err := appFs.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dom.Parse(f, location)
}

func writeDocument(ctx *cli.Context, doc *dom.Document) error {
	if outputPath == "" {
		if err := doc.Render(ctx.App.Writer); err != nil {
			return err
		}
		_, err := fmt.Fprintln(ctx.App.Writer)
		return err
	}
	f, err := appFs.Create(outputPath)
	if err != nil {
		return err
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
