package render

import (
	"encoding/json"
	"io"

	sent "github.com/revelaction/annotok/sentence"
)

// Annotation is the JSON form of a token: the five annotation fields only.
type Annotation struct {
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	Pos    string `json:"pos"`
	Head   int    `json:"head"`
	Deprel string `json:"deprel"`
}

// JSON writes the tokens as a JSON array of annotations.
func JSON(w io.Writer, tokens []sent.Token) error {
	annotations := make([]Annotation, 0, len(tokens))
	for _, t := range tokens {
		annotations = append(annotations, Annotation{
			Text:   t.Text,
			Lemma:  t.Lemma,
			Pos:    t.Pos,
			Head:   t.Head,
			Deprel: t.Dep,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(annotations)
}
