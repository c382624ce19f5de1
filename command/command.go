// Package command holds the flags, setup and actions shared by the annotok
// executables.
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/annotok/logging"
	"github.com/revelaction/annotok/model"
	"github.com/revelaction/annotok/pipeline"
	"github.com/revelaction/annotok/process"
	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/storage"
	"github.com/revelaction/annotok/storage/sqlite/zombiezen"
)

// BuildTag and BuildCommit are set at link time.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// NewApp returns an app whose optional flags may also come from the YAML
// file of --config.
func NewApp(name, usage string, ui UI, flags ...[]cli.Flag) *cli.App {
	var all []cli.Flag
	for _, f := range flags {
		all = append(all, f...)
	}

	return &cli.App{
		Name:                 name,
		Usage:                usage,
		Version:              fmt.Sprintf("%s (commit: %s)", BuildTag, BuildCommit),
		Flags:                all,
		Before:               altsrc.InitInputSourceWithContext(all, altsrc.NewYamlSourceFromFlagFunc(FlagConfig)),
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideHelpCommand:      true,
		EnableBashCompletion: true,
	}
}

// Main loads .env, runs app until SIGINT or SIGTERM and returns the exit
// code.
func Main(app *cli.App, args []string, ui UI) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fprintErr(ui.Err, app.Name, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, args); err != nil {
		fprintErr(ui.Err, app.Name, err)
		return 1
	}
	return 0
}

func fprintErr(w io.Writer, name string, err error) {
	_, _ = fmt.Fprintf(w, "%s: %v\n", name, err)
}

// Env is the set of components built from the flags of one invocation.
type Env struct {
	Log zerolog.Logger

	// Store is nil without --db.
	Store storage.DocRepository

	// Provisioner and Analyzer are nil for the inspector.
	Provisioner *model.Provisioner
	Analyzer    pipeline.Analyzer

	Format string
	NFC    bool

	closers []io.Closer
}

// NewEnv builds the logger and, if --db is set, the document store.
func NewEnv(c *cli.Context, ui UI) (*Env, error) {
	log, closer, err := logging.New(logging.Options{
		Level:   c.String(FlagLogLevel),
		Path:    c.String(FlagLogFile),
		Console: ui.Err,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	e := &Env{Log: log, closers: []io.Closer{closer}}

	if path := c.String(FlagDB); path != "" {
		pool, err := zombiezen.NewPool(path)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, pool)
		e.Store = zombiezen.NewDocStore(pool)
	}

	return e, nil
}

// NewPipelineEnv is NewEnv plus the model provisioner and the analyzer of
// --backend.
func NewPipelineEnv(c *cli.Context, ui UI) (*Env, error) {
	format := c.String(FlagFormat)
	if !slices.Contains(render.SupportedFormats(), format) {
		return nil, fmt.Errorf("unknown format %q, allowed values are %v", format, render.SupportedFormats())
	}

	backend := c.String(FlagBackend)
	if !slices.Contains(pipeline.Backends(), backend) {
		return nil, fmt.Errorf("unknown backend %q, allowed values are %v", backend, pipeline.Backends())
	}

	e, err := NewEnv(c, ui)
	if err != nil {
		return nil, err
	}
	e.Format = format
	e.NFC = c.Bool(FlagNFC)

	modelDir := c.String(FlagModelDir)
	switch backend {
	case pipeline.BackendExec:
		e.Provisioner = model.NewProvisioner(modelDir, model.NewHTTPFetcher(c.String(FlagModelURL)), e.Log)
		e.Analyzer = pipeline.NewExecAnalyzer(c.String(FlagUDPipeBin), e.Provisioner)
	default:
		url := c.String(FlagUDPipeURL)
		e.Provisioner = model.NewProvisioner(modelDir, model.NewServiceChecker(url), e.Log)
		rest := pipeline.NewRESTAnalyzer(url)
		rest.Models = e.Provisioner
		e.Analyzer = rest
	}

	e.Log.Debug().Str("backend", backend).Str("model_dir", modelDir).Str("format", format).Msg("setup")
	return e, nil
}

// Processor returns the shared processor of the pipeline env.
func (e *Env) Processor(obs process.Observer) *process.Processor {
	opts := process.Options{
		Format:   e.Format,
		NFC:      e.NFC,
		Observer: obs,
	}
	if e.Store != nil {
		opts.Store = e.Store
	}
	return process.NewProcessor(e.Analyzer, opts, e.Log)
}

// Close releases the store and the log file.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
