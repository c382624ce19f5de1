package command

import (
	"context"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/annotok/metrics"
	"github.com/revelaction/annotok/process"
	"github.com/revelaction/annotok/watch"
)

// NewWatchApp annotates the text files created in a directory until
// interrupted.
func NewWatchApp(ui UI) *cli.App {
	app := NewApp("annotok-watch", "annotate the .txt files created in a directory", ui,
		[]cli.Flag{
			InputDirFlag(),
			LangFlag(),
			OutputDirFlag(),
		},
		WatchFlags(),
		PipelineFlags(),
		LogFlags(),
	)
	app.Action = func(c *cli.Context) error {
		return watchAction(c, ui, nil)
	}
	return app
}

// watchAction runs the watcher. ready, if not nil, receives the watcher
// before it runs.
func watchAction(c *cli.Context, ui UI, ready func(*watch.Watcher)) error {
	e, err := NewPipelineEnv(c, ui)
	if err != nil {
		return err
	}
	defer e.Close()

	lang := c.String(FlagLang)
	if err := e.Provisioner.Ensure(c.Context, lang); err != nil {
		return err
	}

	outDir := c.String(FlagOutputDir)
	if err := process.EnsureDir(outDir); err != nil {
		return err
	}

	opts := watch.Options{
		Lang:      lang,
		OutputDir: outDir,
		Workers:   c.Int(FlagWorkers),
		QueueSize: c.Int(FlagQueueSize),
		KeepGoing: c.Bool(FlagKeepGoing),
	}

	var obs process.Observer
	addr := c.String(FlagMetricsAddr)
	var m *metrics.Metrics
	if addr != "" {
		m = metrics.New()
		obs = m
		opts.QueueLength = m.SetQueueLength
	}

	w := watch.New(c.String(FlagInputDir), e.Processor(obs), opts, e.Log)
	if ready != nil {
		ready(w)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// stops the metrics server
		defer cancel()
		return w.Run(gctx)
	})

	if m != nil {
		g.Go(func() error {
			return m.Serve(gctx, addr, e.Log)
		})
	}

	return g.Wait()
}
