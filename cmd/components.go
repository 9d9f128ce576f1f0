package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli"
	"github.com/warpdl/pagekit/cmd/common"
)

func listComponents(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	l, err := newLogger(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "components", "logger", err)
		return nil
	}
	defer l.Close()
	eng, err := loadEngine(l)
	if err != nil {
		common.PrintRuntimeErr(ctx, "components", "load", err)
		return nil
	}
	list := eng.Components()
	if len(list) == 0 {
		fmt.Fprintln(ctx.App.Writer, "pagekit: no components found")
		return nil
	}
	tw := tabwriter.NewWriter(ctx.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tMATCHES\tDESCRIPTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Version, strings.Join(c.Matches, ", "), c.Description)
	}
	return tw.Flush()
}
