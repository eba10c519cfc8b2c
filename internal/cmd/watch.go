package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jimezsa/jobhunt/internal/config"
	"github.com/jimezsa/jobhunt/internal/listing"
	"github.com/jimezsa/jobhunt/internal/seen"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type WatchCmd struct {
	Search   string        `arg:"" optional:"" help:"Free-text search over title and company."`
	Interval time.Duration `help:"Poll interval (defaults to poll_interval from config)."`
	Seen     string        `help:"Seen history file (defaults to seen.json in the config dir)."`
	Once     bool          `help:"Poll once and exit."`
	QueryOptions
	OutputOptions
}

// cronLogger adapts zerolog to the cron.Logger interface.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

type watcher struct {
	ctx        *Context
	controller *listing.Controller
	tracker    *seen.Tracker
	opts       OutputOptions
}

// poll refreshes the feed and prints the jobs the tracker has not seen yet.
func (w *watcher) poll(runCtx context.Context) error {
	if err := w.controller.Refresh(runCtx); err != nil {
		if errors.Is(err, listing.ErrStale) {
			return nil
		}
		return err
	}
	view := w.controller.Snapshot()
	if view.UsingDemo {
		return nil
	}

	fresh, err := w.tracker.Observe(view.Jobs)
	if err != nil {
		return fmt.Errorf("update %s: %w", w.tracker.Path(), err)
	}
	w.ctx.Logger.Debug().
		Int("fetched", len(view.Jobs)).
		Int("new", len(fresh)).
		Int("seen", w.tracker.Len()).
		Msg("watch poll")
	if len(fresh) == 0 {
		return nil
	}
	if !w.ctx.JSONOutput && !w.ctx.PlainText {
		w.ctx.UI.Infof("%d new job(s) at %s", len(fresh), time.Now().Format("15:04"))
	}
	return writeJobList(w.ctx, fresh, w.opts, nil)
}

func (c *WatchCmd) Run(ctx *Context) error {
	q, err := c.query(ctx, c.Search)
	if err != nil {
		return err
	}

	seenPath := c.Seen
	if seenPath == "" {
		if seenPath, err = config.SeenPath(); err != nil {
			return err
		}
	}
	tracker, err := seen.OpenTracker(seenPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", seenPath, err)
	}

	w := &watcher{
		ctx:        ctx,
		controller: listing.NewController(ctx.API, q, listing.Options{Logger: ctx.Logger}),
		tracker:    tracker,
		opts:       c.OutputOptions,
	}
	defer w.controller.Close()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := w.poll(runCtx); err != nil {
		if c.Once {
			return err
		}
		ctx.UI.Warnf("Poll failed: %v", err)
	}
	if c.Once {
		return nil
	}

	interval := c.Interval
	if interval <= 0 {
		interval = ctx.Config.Poll()
	}
	logger := cronLogger{logger: ctx.Logger}
	scheduler := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	if _, err := scheduler.AddFunc("@every "+interval.String(), func() {
		if err := w.poll(runCtx); err != nil {
			ctx.UI.Warnf("Poll failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule watch: %w", err)
	}

	scheduler.Start()
	ctx.UI.Infof("Watching every %s; Ctrl-C to stop", interval)
	<-runCtx.Done()
	<-scheduler.Stop().Done()
	return nil
}
