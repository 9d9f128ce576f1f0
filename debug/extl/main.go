// debug/extl is a cli tool to debug the client components of pagekit.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/warpdl/pagekit/internal/dom"
	"github.com/warpdl/pagekit/internal/extl"
	"github.com/warpdl/pagekit/pkg/logger"
)

const HELP = `debug/extl is a cli tool to debug the client components of pagekit.

Usage:
  debug/extl [command]

Commands:
  help    Show this help message and exit.
  list    List the components of a directory.
  run     Mount the components of a directory onto a page and print it.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		fmt.Fprint(stdout, HELP)
		return 0
	}
	l := logger.NewStandardLogger(log.New(stderr, "extl: ", 0)).EnableDebug(true)
	fsys := afero.NewOsFs()

	switch args[0] {
	case "list":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "list: missing components directory")
			return 1
		}
		eng, err := extl.NewEngine(l, fsys, args[1])
		if err != nil {
			fmt.Fprintln(stderr, "list:", err)
			return 1
		}
		for _, c := range eng.Components() {
			fmt.Fprintf(stdout, "%s@%s %v\n", c.Name, c.Version, c.Matches)
		}
	case "run":
		if len(args) < 3 {
			fmt.Fprintln(stderr, "run: usage: run <components dir> <page.html> [url]")
			return 1
		}
		location := "http://localhost/"
		if len(args) > 3 {
			location = args[3]
		}
		eng, err := extl.NewEngine(l, fsys, args[1])
		if err != nil {
			fmt.Fprintln(stderr, "run:", err)
			return 1
		}
		f, err := fsys.Open(args[2])
		if err != nil {
			fmt.Fprintln(stderr, "run:", err)
			return 1
		}
		doc, err := dom.Parse(f, location)
		f.Close()
		if err != nil {
			fmt.Fprintln(stderr, "run:", err)
			return 1
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		start := time.Now()
		n, err := eng.Run(ctx, doc)
		if err != nil {
			fmt.Fprintln(stderr, "run:", err)
			return 1
		}
		l.Info("%d mount(s), settled in %v", n, time.Since(start).Round(time.Millisecond))
		if err := doc.Render(stdout); err != nil {
			fmt.Fprintln(stderr, "run:", err)
			return 1
		}
		fmt.Fprintln(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s\n", args[0], HELP)
		return 1
	}
	return 0
}
