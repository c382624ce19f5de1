package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoSentenceDoc() Doc {
	return Doc{
		Sentences: []Sentence{
			{Id: 0, Tokens: []Token{
				{Id: 1, Index: 0, Text: "Cats", Lemma: "cat", Pos: "NOUN", Head: 2, Dep: "nsubj"},
				{Id: 2, Index: 1, Text: "sleep", Lemma: "sleep", Pos: "VERB", Head: 0, Dep: "root"},
			}},
			{Id: 1, Tokens: []Token{
				{Id: 1, Index: 0, Text: "Dogs", Lemma: "dog", Pos: "NOUN", Head: 2, Dep: "nsubj"},
				{Id: 2, Index: 1, Text: "bark", Lemma: "bark", Pos: "VERB", Head: 0, Dep: "root"},
				{Id: 3, Index: 2, Text: ".", Lemma: ".", Pos: "PUNCT", Head: 2, Dep: "punct"},
			}},
		},
	}
}

func TestFlattenKeepsOrder(t *testing.T) {
	doc := twoSentenceDoc()
	tokens := doc.Flatten()

	assert.Len(t, tokens, 5)
	assert.Equal(t, 5, doc.NumTokens())
	var texts []string
	for _, tk := range tokens {
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, []string{"Cats", "sleep", "Dogs", "bark", "."}, texts)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Doc{}.Flatten())
}

func TestValidate(t *testing.T) {
	doc := twoSentenceDoc()
	assert.NoError(t, doc.Validate())

	doc.Sentences[1].Tokens[2].Head = 4
	assert.Error(t, doc.Validate())

	doc.Sentences[1].Tokens[2].Head = -1
	assert.Error(t, doc.Validate())
}

func TestLemmasUnique(t *testing.T) {
	s := Sentence{Tokens: []Token{{Lemma: "a"}, {Lemma: "b"}, {Lemma: "a"}, {Lemma: ""}}}
	assert.Equal(t, []string{"a", "b"}, s.Lemmas())
}
