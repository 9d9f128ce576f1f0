package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli"
	"github.com/warpdl/pagekit/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func Execute(args []string, bArgs BuildArgs) error {
	app := newApp(bArgs)
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}

func newApp(bArgs BuildArgs) *cli.App {
	app := cli.NewApp()
	app.Name = "pagekit"
	app.HelpName = "pagekit"
	app.Usage = "Mounts page behaviors onto rendered HTML."
	app.Version = fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType)
	app.UsageText = "pagekit <command> [arguments...]"
	app.Description = DESCRIPTION
	app.CustomAppHelpTemplate = HELP_TEMPL
	app.ErrWriter = os.Stderr
	app.OnUsageError = common.UsageErrorCallback
	app.Commands = []cli.Command{
		{
			Name:                   "mount",
			Aliases:                []string{"m"},
			Usage:                  "mount components onto an HTML document",
			UsageText:              "mount [flags] <file|->",
			Description:            MountDescription,
			OnUsageError:           common.UsageErrorCallback,
			CustomHelpTemplate:     CMD_HELP_TEMPL,
			Action:                 mount,
			Flags:                  mountFlags,
			UseShortOptionHandling: true,
		},
		{
			Name:               "components",
			Aliases:            []string{"ls"},
			Usage:              "list the available client components",
			Description:        ComponentsDescription,
			OnUsageError:       common.UsageErrorCallback,
			CustomHelpTemplate: CMD_HELP_TEMPL,
			Action:             listComponents,
			Flags:              componentsFlags,
		},
		{
			Name:    "help",
			Aliases: []string{"h"},
			Usage:   "prints the help message",
			Action:  common.Help,
		},
		{
			Name:               "version",
			Aliases:            []string{"v"},
			Usage:              "prints installed version of pagekit",
			UsageText:          " ",
			CustomHelpTemplate: CMD_HELP_TEMPL,
			Action:             common.GetVersion,
		},
	}
	app.HideHelp = true
	app.HideVersion = true
	return app
}
