package render

import (
	"bufio"
	"io"
	"strconv"

	sent "github.com/revelaction/annotok/sentence"
)

// TSV writes one line per token with the tab separated fields text, lemma,
// pos, head and deprel. There is no header line.
func TSV(w io.Writer, tokens []sent.Token) error {
	bw := bufio.NewWriter(w)
	for _, t := range tokens {
		fields := [...]string{t.Text, t.Lemma, t.Pos, strconv.Itoa(t.Head), t.Dep}
		for i, f := range fields {
			if i > 0 {
				if err := bw.WriteByte('\t'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(f); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
