package stat

import (
	sent "github.com/revelaction/annotok/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumSentences          int
	NumTokens             int
	TokensPerSentenceMean int
	TokensPerSentenceDis  map[int]int

	// Pos counts the tokens per part of speech tag
	Pos map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerSentenceDis: map[int]int{}, Pos: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the sentences of doc to the stats.
func (h *Handler) Aggregate(doc sent.Doc) {
	h.stats.NumSentences += len(doc.Sentences)
	for _, sentence := range doc.Sentences {
		h.stats.NumTokens += len(sentence.Tokens)
		h.stats.TokensPerSentenceDis[len(sentence.Tokens)]++
		for _, t := range sentence.Tokens {
			h.stats.Pos[t.Pos]++
		}
	}

	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
}
