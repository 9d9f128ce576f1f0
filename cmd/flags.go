package cmd

import (
	"time"

	"github.com/urfave/cli"
	"github.com/warpdl/pagekit/common"
)

var (
	mountLocation string
	mountContext  string
	mountTimeout  time.Duration
	outputPath    string
	showProgress  bool
	componentsDir string
	debugMode     bool
	logFile       string

	componentsDirFlag = cli.StringFlag{
		Name:        "components, c",
		Usage:       "directory to load client components from (default: builtin)",
		EnvVar:      common.ComponentsEnv,
		Destination: &componentsDir,
	}
	debugFlag = cli.BoolFlag{
		Name:        "debug, d",
		Usage:       "use this flag to print debug logs (default: false)",
		EnvVar:      common.DebugEnv,
		Destination: &debugMode,
	}
	logFileFlag = cli.StringFlag{
		Name:        "log-file",
		Usage:       "append the log to this file",
		EnvVar:      common.LogFileEnv,
		Destination: &logFile,
	}

	mountFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "url, u",
			Usage:       "location of the page, used to find the current navigation link",
			Value:       DEF_LOCATION,
			EnvVar:      common.LocationEnv,
			Destination: &mountLocation,
		},
		cli.StringFlag{
			Name:        "context, x",
			Usage:       "context to mount in: render, client or both",
			Value:       DEF_CONTEXT,
			EnvVar:      common.ContextEnv,
			Destination: &mountContext,
		},
		cli.DurationFlag{
			Name:        "timeout, t",
			Usage:       "maximum time to wait for pending timers",
			Value:       DEF_TIMEOUT,
			Destination: &mountTimeout,
		},
		cli.StringFlag{
			Name:        "output, o",
			Usage:       "write the document to this file instead of stdout",
			Destination: &outputPath,
		},
		cli.BoolFlag{
			Name:        "progress, p",
			Usage:       "use this flag to show pending timers while waiting (default: false)",
			Destination: &showProgress,
		},
		componentsDirFlag,
		debugFlag,
		logFileFlag,
	}

	componentsFlags = []cli.Flag{
		componentsDirFlag,
		debugFlag,
	}
)
