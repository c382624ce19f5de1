package command

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/revelaction/annotok/model"
	"github.com/revelaction/annotok/pipeline"
	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/watch"
)

const (
	FlagText        = "text"
	FlagLang        = "lang"
	FlagOutput      = "output"
	FlagInputDir    = "input_dir"
	FlagOutputDir   = "output_dir"
	FlagProgress    = "progress"
	FlagWorkers     = "workers"
	FlagQueueSize   = "queue_size"
	FlagKeepGoing   = "keep_going"
	FlagMetricsAddr = "metrics_addr"

	FlagBackend   = "backend"
	FlagUDPipeURL = "udpipe_url"
	FlagUDPipeBin = "udpipe_bin"
	FlagModelDir  = "model_dir"
	FlagModelURL  = "model_url"
	FlagFormat    = "format"
	FlagNFC       = "nfc"
	FlagDB        = "db"
	FlagLogLevel  = "log_level"
	FlagLogFile   = "log_file"
	FlagConfig    = "config"

	DefaultOutput    = "output.txt"
	DefaultOutputDir = "output"

	envPrefix = "ANNOTOK_"
)

func env(name string) []string {
	return []string{envPrefix + strings.ToUpper(name)}
}

// DefaultModelDir is $HOME/.cache/annotok, or a relative directory when the
// home directory is unknown.
func DefaultModelDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "annotok")
	}
	return filepath.Join(home, ".cache", "annotok")
}

func LangFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     FlagLang,
		Usage:    "language code of the input text, e.g. en",
		EnvVars:  env(FlagLang),
		Required: true,
	}
}

func InputDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     FlagInputDir,
		Usage:    "directory of the input files",
		EnvVars:  env(FlagInputDir),
		Required: true,
	}
}

func OutputFlag() cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:    FlagOutput,
		Usage:   "file of the annotations",
		Value:   DefaultOutput,
		EnvVars: env(FlagOutput),
	})
}

func OutputDirFlag() cli.Flag {
	return altsrc.NewStringFlag(&cli.StringFlag{
		Name:    FlagOutputDir,
		Usage:   "directory of the processed files, created if absent",
		Value:   DefaultOutputDir,
		EnvVars: env(FlagOutputDir),
	})
}

// WatchFlags are the flags of the watch daemon besides the directories.
func WatchFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    FlagWorkers,
			Usage:   "files processed concurrently",
			Value:   watch.DefaultWorkers,
			EnvVars: env(FlagWorkers),
		}),
		altsrc.NewIntFlag(&cli.IntFlag{
			Name:    FlagQueueSize,
			Usage:   "detected files waiting for a worker",
			Value:   watch.DefaultQueueSize,
			EnvVars: env(FlagQueueSize),
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    FlagKeepGoing,
			Usage:   "log failed files instead of stopping",
			EnvVars: env(FlagKeepGoing),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagMetricsAddr,
			Usage:   "serve Prometheus metrics on this address, e.g. :9100",
			EnvVars: env(FlagMetricsAddr),
		}),
	}
}

// PipelineFlags configure the analysis backend, the models and the output.
func PipelineFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagBackend,
			Usage:   "analysis backend: rest or exec",
			Value:   pipeline.BackendREST,
			EnvVars: env(FlagBackend),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagUDPipeURL,
			Usage:   "base URL of the UDPipe REST service",
			Value:   model.DefaultServiceURL,
			EnvVars: env(FlagUDPipeURL),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagUDPipeBin,
			Usage:   "udpipe executable of the exec backend",
			Value:   "udpipe",
			EnvVars: env(FlagUDPipeBin),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagModelDir,
			Usage:   "directory of the downloaded models",
			Value:   DefaultModelDir(),
			EnvVars: env(FlagModelDir),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagModelURL,
			Usage:   "base URL the models are downloaded from",
			Value:   model.DefaultModelURL,
			EnvVars: env(FlagModelURL),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagFormat,
			Usage:   "output format: tsv, json or conllu",
			Value:   render.Defaultformat,
			EnvVars: env(FlagFormat),
		}),
		altsrc.NewBoolFlag(&cli.BoolFlag{
			Name:    FlagNFC,
			Usage:   "NFC normalize the input text",
			EnvVars: env(FlagNFC),
		}),
		DBFlag(false),
	}
}

// DBFlag is the SQLite document store. The inspector requires it.
func DBFlag(required bool) cli.Flag {
	f := &cli.StringFlag{
		Name:     FlagDB,
		Usage:    "SQLite file storing the analyzed documents",
		EnvVars:  env(FlagDB),
		Required: required,
	}
	if required {
		return f
	}
	return altsrc.NewStringFlag(f)
}

// LogFlags are common to all executables.
func LogFlags() []cli.Flag {
	return []cli.Flag{
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "debug, info, warn or error",
			Value:   "info",
			EnvVars: env(FlagLogLevel),
		}),
		altsrc.NewStringFlag(&cli.StringFlag{
			Name:    FlagLogFile,
			Usage:   "write JSON logs to this rotated file instead of stderr",
			EnvVars: env(FlagLogFile),
		}),
		&cli.StringFlag{
			Name:    FlagConfig,
			Usage:   "YAML file with values of the optional flags",
			EnvVars: env(FlagConfig),
		},
	}
}
