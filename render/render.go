package render

import (
	"fmt"
	"io"
	"strings"

	sent "github.com/revelaction/annotok/sentence"
)

var (
	Yellow    = "\033[0;33m"
	Teal      = "\033[1;36m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

// Renderer prints sentences and token tables of stored documents to a
// terminal.
type Renderer struct {
	W io.Writer

	HasColor bool
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{W: w}
}

// Sentence prints the sentence text after prefix. Tokens whose lemma is in
// lemmas are highlighted.
func (r *Renderer) Sentence(s []sent.Token, prefix string, lemmas ...string) {
	fmt.Fprintf(r.W, "%s%s\n", prefix, r.SentenceString(s, lemmas...))
}

func (r *Renderer) SentenceString(s []sent.Token, lemmas ...string) string {
	words := make([]string, 0, len(s))
	for _, token := range s {
		words = append(words, colorToken(token, lemmas, r.HasColor))
	}
	return strings.Join(words, " ")
}

// Tokens prints one aligned row per token: text, lemma, pos, id, head,
// deprel and tag.
func (r *Renderer) Tokens(s []sent.Token) {
	for _, token := range s {
		fmt.Fprintf(r.W, "%20q %15q %8s %6d %6d %8s %s\n", token.Text, token.Lemma, token.Pos, token.Id, token.Head, token.Dep, token.Tag)
	}
}

func colorToken(token sent.Token, lemmas []string, hasColor bool) string {
	if !hasColor {
		return token.Text
	}

	for _, l := range lemmas {
		if l == token.Lemma {
			return Green256 + token.Text + Off
		}
	}

	return token.Text
}
