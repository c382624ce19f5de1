package sentence

import "fmt"

// Doc is an analyzed text: an ordered list of sentences.
type Doc struct {
	Id int `json:"id,omitempty"`

	Title string `json:"title,omitempty"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is an ordered list of words as returned by the pipeline.
type Sentence struct {
	Id     int     `json:"id"`
	DocId  int     `json:"doc_id,omitempty"`
	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and metadata.
type Token struct {
	// The word id inside the sentence, starting at 1 (CoNLL-U ID column)
	Id int `json:"id"`

	// Word id of the syntactic governor, 0 for the root
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed, language specific POS data
	Tag string `json:"tag,omitempty"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Flatten returns the tokens of all sentences in document order.
func (d Doc) Flatten() []Token {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}

	tokens := make([]Token, 0, n)
	for _, s := range d.Sentences {
		tokens = append(tokens, s.Tokens...)
	}

	return tokens
}

// NumTokens returns the number of words of the document.
func (d Doc) NumTokens() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Validate checks that every head points to a word of the sentence or to
// the root (0).
func (s Sentence) Validate() error {
	for _, t := range s.Tokens {
		if t.Head < 0 || t.Head > len(s.Tokens) {
			return fmt.Errorf("sentence %d: token %d %q has head %d out of range [0, %d]", s.Id, t.Id, t.Text, t.Head, len(s.Tokens))
		}
	}
	return nil
}

// Validate checks all sentences of the document.
func (d Doc) Validate() error {
	for _, s := range d.Sentences {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Lemmas returns the unique non empty lemmas of the sentence.
func (s Sentence) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, t := range s.Tokens {
		if t.Lemma == "" || seen[t.Lemma] {
			continue
		}
		seen[t.Lemma] = true
		lemmas = append(lemmas, t.Lemma)
	}
	return lemmas
}
