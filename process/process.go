// Package process analyzes the text of a job and writes the annotations to
// the job destination. The text, batch and watch commands share it.
package process

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/revelaction/annotok/job"
	"github.com/revelaction/annotok/pipeline"
	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/stat"
	"github.com/revelaction/annotok/storage"
)

// Observer is notified of the outcome of every job.
type Observer interface {
	Observe(d time.Duration, numTokens int, err error)
}

type Options struct {
	// Format of the output files, render.FormatTSV by default.
	Format string

	// NFC normalizes the input text before the analysis.
	NFC bool

	// Store additionally persists the analyzed documents. Optional.
	Store storage.DocWriter

	// Observer is optional.
	Observer Observer
}

type Processor struct {
	analyzer pipeline.Analyzer
	opts     Options
	log      zerolog.Logger
}

func NewProcessor(a pipeline.Analyzer, opts Options, log zerolog.Logger) *Processor {
	if opts.Format == "" {
		opts.Format = render.Defaultformat
	}
	return &Processor{analyzer: a, opts: opts, log: log}
}

// Process analyzes the input of j and writes the annotations to j.Dest.
func (p *Processor) Process(ctx context.Context, j job.Job) error {
	start := time.Now()
	numTokens, err := p.process(ctx, j)
	if p.opts.Observer != nil {
		p.opts.Observer.Observe(time.Since(start), numTokens, err)
	}
	return err
}

func (p *Processor) process(ctx context.Context, j job.Job) (int, error) {
	log := p.log.With().Str("job", j.Id).Str("file", j.Name).Logger()
	log.Info().Str("lang", j.Lang).Msg("processing")

	text, err := j.Read()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", j.Name, err)
	}

	if p.opts.NFC {
		text = norm.NFC.String(text)
	}

	doc, err := p.analyzer.Analyze(ctx, text, j.Lang)
	if err != nil {
		return 0, fmt.Errorf("%s: analysis failed: %w", j.Name, err)
	}
	doc.Title = j.Name
	doc.Labels = []string{"lang:" + j.Lang}

	if err := render.WriteFile(j.Dest, doc, p.opts.Format); err != nil {
		return 0, fmt.Errorf("%s: failed to write %s: %w", j.Name, j.Dest, err)
	}

	if p.opts.Store != nil {
		id, err := p.opts.Store.Write(doc)
		if err != nil {
			return 0, fmt.Errorf("%s: failed to store doc: %w", j.Name, err)
		}
		log.Debug().Int("doc", id).Msg("stored")
	}

	hdl := stat.NewHandler()
	hdl.Aggregate(doc)
	stats := hdl.Get()

	log.Info().
		Str("output", j.Dest).
		Int("sentences", stats.NumSentences).
		Int("tokens", stats.NumTokens).
		Msg("processed")

	return stats.NumTokens, nil
}

// Run processes jobs in order and stops at the first error. done, if not
// nil, is called after every successful job.
func (p *Processor) Run(ctx context.Context, jobs []job.Job, done func(job.Job)) error {
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := p.Process(ctx, j); err != nil {
			return err
		}

		if done != nil {
			done(j)
		}
	}
	return nil
}

// EnsureDir creates dir and its parents if absent.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
