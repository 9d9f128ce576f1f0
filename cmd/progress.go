package cmd

import (
	"context"
	"time"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"
	"github.com/warpdl/pagekit/cmd/common"
	"github.com/warpdl/pagekit/pkg/timers"
)

const progressRefresh = 50 * time.Millisecond

type drainer interface {
	Drain(ctx context.Context) error
}

func newProgress(ctx *cli.Context) *mpb.Progress {
	if !showProgress {
		return nil
	}
	return mpb.New(
		mpb.WithOutput(ctx.App.ErrWriter),
		mpb.WithWidth(40),
		mpb.WithRefreshRate(progressRefresh),
	)
}

// drain waits for d to become idle, reporting the timers fired so far on p
// when it is not nil.
func drain(ctx context.Context, p *mpb.Progress, c timers.Context, d drainer, pending func() int) error {
	total := pending()
	if p == nil || total == 0 {
		return d.Drain(ctx)
	}
	bar := common.InitDrainBar(p, string(c)+": ", int64(total))
	errc := make(chan error, 1)
	go func() {
		errc <- d.Drain(ctx)
	}()
	ticker := time.NewTicker(progressRefresh)
	defer ticker.Stop()
	for {
		select {
		case err := <-errc:
			if err != nil {
				bar.Abort(false)
				return err
			}
			bar.SetCurrent(int64(total))
			return nil
		case <-ticker.C:
			done := total - pending()
			if done < 0 {
				done = 0
			}
			bar.SetCurrent(int64(done))
		}
	}
}
