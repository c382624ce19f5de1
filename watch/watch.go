// Package watch processes the text files created in a directory while it
// runs.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/annotok/job"
)

const (
	DefaultWorkers   = 1
	DefaultQueueSize = 64
)

// Processor handles one job.
type Processor interface {
	Process(ctx context.Context, j job.Job) error
}

type Options struct {
	Lang      string
	OutputDir string

	// Workers is the number of files processed concurrently.
	Workers int

	// QueueSize bounds the detected files waiting for a worker. Event
	// reading blocks while the queue is full.
	QueueSize int

	// KeepGoing logs failed jobs instead of stopping the watcher.
	KeepGoing bool

	// QueueLength, if set, receives the queue length after every change.
	QueueLength func(n int)
}

type Watcher struct {
	dir  string
	proc Processor
	opts Options
	log  zerolog.Logger

	// absolute output directory, never watched
	outDir string

	ready     chan struct{}
	readyOnce sync.Once
}

func New(dir string, proc Processor, opts Options, log zerolog.Logger) *Watcher {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = DefaultQueueSize
	}
	return &Watcher{
		dir:    dir,
		proc:   proc,
		opts:   opts,
		log:    log,
		outDir: absPath(opts.OutputDir),
		ready:  make(chan struct{}),
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Ready is closed once the directory subscription of the first Run is in
// place.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the directory until ctx is done or, unless KeepGoing is set,
// a job fails. Jobs already started are awaited; queued jobs are dropped. A
// canceled ctx is a clean stop and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	if w.isOutput(w.dir) {
		return fmt.Errorf("input directory %s is inside the output directory %s", w.dir, w.outDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.dir); err != nil {
		return err
	}

	w.log.Info().Str("dir", w.dir).Int("workers", w.opts.Workers).Msg("watching")
	w.readyOnce.Do(func() { close(w.ready) })

	queue := make(chan job.Job, w.opts.QueueSize)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < w.opts.Workers; i++ {
		g.Go(func() error {
			return w.work(gctx, queue)
		})
	}

	g.Go(func() error {
		defer close(queue)
		return w.dispatch(gctx, fsw, queue)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		w.log.Info().Msg("watcher stopped")
		return nil
	}
	return err
}

// dispatch turns creation events into queued jobs.
func (w *Watcher) dispatch(ctx context.Context, fsw *fsnotify.Watcher, queue chan<- job.Job) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("watcher error")

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Create) {
				continue
			}

			j, ok := w.jobFor(fsw, ev.Name)
			if !ok {
				continue
			}

			w.log.Info().Str("job", j.Id).Str("path", ev.Name).Msg("detected new file")

			select {
			case queue <- j:
				w.queueLength(len(queue))
			case <-ctx.Done():
				w.log.Warn().Str("path", ev.Name).Msg("dropped, watcher stopping")
				return ctx.Err()
			}
		}
	}
}

// jobFor returns the job of a created path. Created directories are added
// to the subscription instead.
func (w *Watcher) jobFor(fsw *fsnotify.Watcher, path string) (job.Job, bool) {
	if w.isOutput(path) {
		return job.Job{}, false
	}

	info, err := os.Stat(path)
	if err != nil {
		// removed or renamed again before we got here
		w.log.Debug().Err(err).Str("path", path).Msg("ignored")
		return job.Job{}, false
	}

	if info.IsDir() {
		if err := w.addTree(fsw, path); err != nil {
			w.log.Error().Err(err).Str("path", path).Msg("failed to watch directory")
		}
		return job.Job{}, false
	}

	if !job.IsText(path) {
		w.log.Debug().Str("path", path).Msg("ignored")
		return job.Job{}, false
	}

	return job.NewFile(path, w.opts.Lang, w.opts.OutputDir), true
}

func (w *Watcher) work(ctx context.Context, queue <-chan job.Job) error {
	for {
		select {
		case <-ctx.Done():
			for j := range queue {
				w.log.Warn().Str("job", j.Id).Str("file", j.Name).Msg("dropped, watcher stopping")
			}
			return ctx.Err()

		case j, ok := <-queue:
			if !ok {
				return nil
			}
			w.queueLength(len(queue))

			if ctx.Err() != nil {
				w.log.Warn().Str("job", j.Id).Str("file", j.Name).Msg("dropped, watcher stopping")
				continue
			}

			// a started job runs to completion even when the watcher stops
			err := w.proc.Process(context.WithoutCancel(ctx), j)
			if err == nil {
				continue
			}

			if !w.opts.KeepGoing {
				return err
			}
			w.log.Error().Err(err).Str("job", j.Id).Str("file", j.Name).Msg("processing failed")
		}
	}
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.isOutput(path) {
			w.log.Debug().Str("path", path).Msg("output directory not watched")
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) queueLength(n int) {
	if w.opts.QueueLength != nil {
		w.opts.QueueLength(n)
	}
}

// isOutput reports whether path is the output directory or inside it.
func (w *Watcher) isOutput(path string) bool {
	if w.outDir == "" {
		return false
	}
	p := absPath(path)
	return p == w.outDir || strings.HasPrefix(p, w.outDir+string(filepath.Separator))
}
