// Package pipeline runs text through an external UDPipe pipeline restricted
// to tokenization, lemmatization, POS tagging and dependency parsing.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/revelaction/annotok/conllu"
	sent "github.com/revelaction/annotok/sentence"
)

// Processors are the stages every backend runs, in order.
var Processors = []string{"tokenize", "lemma", "pos", "depparse"}

// Analyzer returns the analyzed document of a text.
type Analyzer interface {
	Analyze(ctx context.Context, text, lang string) (sent.Doc, error)
}

const (
	BackendREST = "rest"
	BackendExec = "exec"
)

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendREST, BackendExec}
}

// parseResult converts the CoNLL-U answer of a backend into a Doc.
func parseResult(result string) (sent.Doc, error) {
	doc, err := conllu.Parse(strings.NewReader(result))
	if err != nil {
		return sent.Doc{}, fmt.Errorf("CoNLL-U decoding error: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}
