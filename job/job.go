// Package job describes a unit of work: a text or a text file to analyze in
// a language, and the file to write the annotations to.
package job

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	// OutputPrefix is prepended to the input file name to build the output
	// file name in batch and watch modes.
	OutputPrefix = "processed_"

	// TextSuffix marks the files the watcher reacts to.
	TextSuffix = ".txt"
)

type Job struct {
	// Id correlates the log lines of a job.
	Id string

	// Name is the input file base name, or "text" for literal text.
	Name string

	// Path is the input file. Empty for literal text.
	Path string

	// Text is the literal input when Path is empty.
	Text string

	Lang string
	Dest string
}

// NewText returns a job for literal text.
func NewText(text, lang, dest string) Job {
	return Job{
		Id:   uuid.NewString(),
		Name: "text",
		Text: text,
		Lang: lang,
		Dest: dest,
	}
}

// NewFile returns a job for the file at path, writing to
// <outDir>/processed_<base name>.
func NewFile(path, lang, outDir string) Job {
	return Job{
		Id:   uuid.NewString(),
		Name: filepath.Base(path),
		Path: path,
		Lang: lang,
		Dest: OutputPath(outDir, path),
	}
}

// OutputPath returns the output file of an input file.
func OutputPath(outDir, inPath string) string {
	return filepath.Join(outDir, OutputPrefix+filepath.Base(inPath))
}

// IsText reports whether the watcher processes the file at path.
func IsText(path string) bool {
	return strings.HasSuffix(path, TextSuffix)
}

// Read returns the input text of the job.
func (j Job) Read() (string, error) {
	if j.Path == "" {
		return j.Text, nil
	}

	b, err := os.ReadFile(j.Path)
	if err != nil {
		return "", fmt.Errorf("IO error: %w", err)
	}
	return string(b), nil
}

// FromDir returns a job for every regular file of dir, sorted by file name.
// Subdirectories are skipped.
func FromDir(dir, lang, outDir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			// symlinks are followed
			if e.Type()&os.ModeSymlink == 0 {
				continue
			}
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		jobs = append(jobs, NewFile(filepath.Join(dir, e.Name()), lang, outDir))
	}

	return jobs, nil
}
