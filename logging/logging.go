// Package logging builds the zerolog logger handed to every component.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

type Options struct {
	// Level is a zerolog level name (debug, info, warn, error). Empty means
	// info.
	Level string

	// Path enables JSON logging to a rotated file instead of the console.
	Path string

	// Console receives the human readable log when Path is empty.
	Console io.Writer
}

// New returns a logger for opts. The returned closer flushes and closes the
// log file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		level = l
	}

	if opts.Path != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		return zerolog.New(lj).Level(level).With().Timestamp().Logger(), lj, nil
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	w := zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
