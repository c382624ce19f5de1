package command

import (
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotok/job"
	"github.com/revelaction/annotok/process"
)

// NewTextApp annotates one text given on the command line.
func NewTextApp(ui UI) *cli.App {
	app := NewApp("annotok-text", "annotate a text with lemma, POS and dependency relations", ui,
		[]cli.Flag{
			&cli.StringFlag{
				Name:     FlagText,
				Usage:    "text to annotate",
				EnvVars:  env(FlagText),
				Required: true,
			},
			LangFlag(),
			OutputFlag(),
		},
		PipelineFlags(),
		LogFlags(),
	)
	app.Action = func(c *cli.Context) error {
		return textAction(c, ui)
	}
	return app
}

func textAction(c *cli.Context, ui UI) error {
	e, err := NewPipelineEnv(c, ui)
	if err != nil {
		return err
	}
	defer e.Close()

	lang := c.String(FlagLang)
	if err := e.Provisioner.Ensure(c.Context, lang); err != nil {
		return err
	}

	output := c.String(FlagOutput)
	if err := process.EnsureDir(filepath.Dir(output)); err != nil {
		return err
	}

	return e.Processor(nil).Process(c.Context, job.NewText(c.String(FlagText), lang, output))
}
