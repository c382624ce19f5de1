// Package pipelinetest provides an in-process Analyzer for tests.
package pipelinetest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sent "github.com/revelaction/annotok/sentence"
)

// Analyzer splits sentences on "." and words on white space. Every word
// depends on the first word of its sentence, which is the root. Lemmas are
// the lower cased words.
type Analyzer struct {
	// Langs restricts the accepted language codes when not empty.
	Langs []string

	mu    sync.Mutex
	texts []string
}

func (a *Analyzer) Analyze(ctx context.Context, text, lang string) (sent.Doc, error) {
	if err := ctx.Err(); err != nil {
		return sent.Doc{}, err
	}

	if len(a.Langs) > 0 && !contains(a.Langs, lang) {
		return sent.Doc{}, fmt.Errorf("unsupported language: %q", lang)
	}

	a.mu.Lock()
	a.texts = append(a.texts, text)
	a.mu.Unlock()

	var doc sent.Doc
	for _, chunk := range strings.Split(text, ".") {
		words := strings.Fields(chunk)
		if len(words) == 0 {
			continue
		}

		s := sent.Sentence{Id: len(doc.Sentences)}
		for i, w := range words {
			tk := sent.Token{
				Id:         i + 1,
				Index:      i,
				SentenceId: s.Id,
				Text:       w,
				Lemma:      strings.ToLower(w),
				Pos:        "X",
				Head:       1,
				Dep:        "dep",
			}
			if i == 0 {
				tk.Head = 0
				tk.Dep = "root"
			}
			s.Tokens = append(s.Tokens, tk)
		}
		doc.Sentences = append(doc.Sentences, s)
	}

	return doc, nil
}

// Texts returns the texts analyzed so far.
func (a *Analyzer) Texts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.texts...)
}

func contains(list []string, s string) bool {
	for _, l := range list {
		if l == s {
			return true
		}
	}
	return false
}
