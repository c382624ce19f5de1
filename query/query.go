// Package query is an interactive lookup of stored sentences by lemma.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/storage"
)

const (
	completionThreshold = 2

	// DefaultLimit bounds the sentences printed per query
	DefaultLimit = 200

	batchSize = 100

	quitCommand = "quit"
)

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer
	Limit    int

	// lemmas of the sentences shown so far, offered as completions
	seen map[string]struct{}
}

func NewHandler(dr storage.DocReader, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Renderer: r,
		Limit:    DefaultLimit,
		seen:     map[string]struct{}{},
	}
}

// Run reads lemma lists from the prompt and prints the stored sentences
// containing all of them, until quit.
func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.W, "🔑 lemmas separated by spaces, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("annotok query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == quitCommand {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)

		lemmas := strings.Fields(in)
		results, err := h.Search(lemmas)
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "Error fetching sentences: %v\n", err)
			continue
		}

		h.Print(lemmas, results)
	}
}

// Search returns the stored sentences containing all lemmas, at most Limit.
func (h *Handler) Search(lemmas []string) ([]storage.SentenceResult, error) {
	var results []storage.SentenceResult
	cursor := storage.Cursor(0)

	for len(results) < h.Limit {
		batch, next, err := h.DocRepo.FindCandidates(lemmas, cursor, batchSize)
		if err != nil {
			return nil, err
		}

		results = append(results, batch...)

		if len(batch) < batchSize || next == cursor {
			break
		}
		cursor = next
	}

	if len(results) > h.Limit {
		results = results[:h.Limit]
	}

	for _, res := range results {
		for _, token := range res.Tokens {
			if token.Lemma != "" {
				h.seen[token.Lemma] = struct{}{}
			}
		}
	}

	return results, nil
}

// Print renders results with the matching lemmas highlighted.
func (h *Handler) Print(lemmas []string, results []storage.SentenceResult) {
	for _, res := range results {
		prefix := fmt.Sprintf("📖 %d %s ", res.DocID, res.DocTitle)
		h.Renderer.Sentence(res.Tokens, prefix, lemmas...)
	}
	fmt.Fprintf(h.Renderer.W, "%d sentences\n", len(results))
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	word := in.GetWordBeforeCursor()
	if len(word) < completionThreshold {
		return nil
	}

	return h.complete(word)
}

func (h *Handler) complete(word string) []prompt.Suggest {
	var s []prompt.Suggest
	for lemma := range h.seen {
		if strings.HasPrefix(lemma, word) {
			s = append(s, prompt.Suggest{Text: lemma})
		}
	}

	sort.Slice(s, func(i, j int) bool { return s[i].Text < s[j].Text })
	return s
}
