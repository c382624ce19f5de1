package command

import (
	"sync/atomic"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotok/job"
	"github.com/revelaction/annotok/process"
)

// NewBatchApp annotates every file of a directory once.
func NewBatchApp(ui UI) *cli.App {
	app := NewApp("annotok-batch", "annotate every file of a directory", ui,
		[]cli.Flag{
			InputDirFlag(),
			LangFlag(),
			OutputDirFlag(),
			&cli.BoolFlag{
				Name:  FlagProgress,
				Usage: "show a progress bar",
			},
		},
		PipelineFlags(),
		LogFlags(),
	)
	app.Action = func(c *cli.Context) error {
		return batchAction(c, ui)
	}
	return app
}

func batchAction(c *cli.Context, ui UI) error {
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

	jobs, err := job.FromDir(c.String(FlagInputDir), lang, outDir)
	if err != nil {
		return err
	}

	e.Log.Info().Int("files", len(jobs)).Str("output_dir", outDir).Msg("batch")

	var done func(job.Job)
	if c.Bool(FlagProgress) && len(jobs) > 0 {
		progress := uiprogress.New()
		progress.SetOut(ui.Out)
		progress.Start()
		defer progress.Stop()

		bar := progress.AddBar(len(jobs))
		bar.AppendCompleted()
		bar.PrependElapsed()

		// read by the render goroutine of uiprogress
		var current atomic.Value
		current.Store("")
		bar.AppendFunc(func(b *uiprogress.Bar) string {
			return current.Load().(string)
		})

		done = func(j job.Job) {
			current.Store(j.Name)
			bar.Incr()
		}
	}

	return e.Processor(nil).Run(c.Context, jobs, done)
}
