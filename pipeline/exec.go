package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	sent "github.com/revelaction/annotok/sentence"
)

// ModelPaths resolves the local model file of a language.
type ModelPaths interface {
	Path(lang string) (string, error)
}

// ExecAnalyzer runs a local udpipe binary.
type ExecAnalyzer struct {
	Bin    string
	Models ModelPaths
}

var _ Analyzer = (*ExecAnalyzer)(nil)

func NewExecAnalyzer(bin string, models ModelPaths) *ExecAnalyzer {
	return &ExecAnalyzer{Bin: bin, Models: models}
}

func (a *ExecAnalyzer) Analyze(ctx context.Context, text, lang string) (sent.Doc, error) {
	modelPath, err := a.Models.Path(lang)
	if err != nil {
		return sent.Doc{}, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, a.Bin, "--tokenize", "--tag", "--parse", modelPath)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return sent.Doc{}, fmt.Errorf("%s: %w: %s", a.Bin, err, strings.TrimSpace(stderr.String()))
	}

	return parseResult(stdout.String())
}
