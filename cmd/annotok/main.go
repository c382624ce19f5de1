package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotok/command"
	"github.com/revelaction/annotok/storage"
)

const (
	flagSentence = "sentence"
	flagStart    = "start"
	flagCount    = "count"
	flagNoColor  = "no_color"
	flagLimit    = "limit"
)

func main() {
	ui := command.UI{Out: os.Stdout, Err: os.Stderr}
	os.Exit(command.Main(newApp(ui), os.Args, ui))
}

func newApp(ui command.UI) *cli.App {
	app := command.NewApp("annotok", "inspect the documents stored with --db", ui,
		[]cli.Flag{command.DBFlag(true)},
		command.LogFlags(),
	)

	app.Commands = []*cli.Command{
		{
			Name:  "ls",
			Usage: "list the stored documents",
			Action: withStore(ui, func(c *cli.Context, repo storage.DocRepository) error {
				return lsCommand(repo, ui)
			}),
		},
		{
			Name:      "show",
			Usage:     "print the sentences of a document, or the tokens of one sentence",
			ArgsUsage: "<doc-id>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: flagSentence, Value: -1, Usage: "print the token table of this sentence"},
				&cli.IntFlag{Name: flagStart, Usage: "first sentence"},
				&cli.IntFlag{Name: flagCount, Value: -1, Usage: "number of sentences, all if negative"},
			},
			Action: withStore(ui, func(c *cli.Context, repo storage.DocRepository) error {
				docId, err := docIdArg(c)
				if err != nil {
					return err
				}
				if sentId := c.Int(flagSentence); sentId >= 0 {
					return sentenceCommand(repo, docId, sentId, ui)
				}
				return showCommand(repo, docId, c.Int(flagStart), c.Int(flagCount), ui)
			}),
		},
		{
			Name:      "stat",
			Usage:     "print the statistics of a document",
			ArgsUsage: "<doc-id>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: flagSentence, Value: -1, Usage: "only this sentence"},
			},
			Action: withStore(ui, func(c *cli.Context, repo storage.DocRepository) error {
				docId, err := docIdArg(c)
				if err != nil {
					return err
				}
				return statCommand(repo, docId, c.Int(flagSentence), ui)
			}),
		},
		{
			Name:  "query",
			Usage: "look up stored sentences by lemma",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: flagNoColor, Usage: "do not highlight the lemmas"},
				&cli.IntFlag{Name: flagLimit, Usage: "sentences printed per query"},
			},
			Action: withStore(ui, func(c *cli.Context, repo storage.DocRepository) error {
				return queryCommand(repo, !c.Bool(flagNoColor), c.Int(flagLimit), ui)
			}),
		},
	}

	return app
}

// withStore opens the store of --db around action.
func withStore(ui command.UI, action func(*cli.Context, storage.DocRepository) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := command.NewEnv(c, ui)
		if err != nil {
			return err
		}
		defer e.Close()

		return action(c, e.Store)
	}
}
