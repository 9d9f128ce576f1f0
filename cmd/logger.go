package cmd

import (
	"log"

	"github.com/urfave/cli"
	"github.com/warpdl/pagekit/pkg/logger"
)

// newLogger logs to the app's error writer and, with --log-file, to a file
// as well.
func newLogger(ctx *cli.Context) (logger.Logger, error) {
	std := logger.NewStandardLogger(log.New(ctx.App.ErrWriter, ctx.App.HelpName+": ", 0)).EnableDebug(debugMode)
	if logFile == "" {
		return std, nil
	}
	fl, err := logger.NewFileLogger(logFile)
	if err != nil {
		return nil, err
	}
	fl.EnableDebug(debugMode)
	return logger.NewMultiLogger(std, fl), nil
}
