// Package conllu reads and writes the CoNLL-U format produced by UDPipe and
// other Universal Dependencies pipelines.
package conllu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	sent "github.com/revelaction/annotok/sentence"
)

const numColumns = 10

// column positions
const (
	colId = iota
	colForm
	colLemma
	colUpos
	colXpos
	colFeats
	colHead
	colDeprel
)

// Parse reads CoNLL-U sentences from r. Multi-word token ranges (1-2) and
// empty nodes (1.1) are skipped, so each token of the result is a syntactic
// word.
func Parse(r io.Reader) (sent.Doc, error) {
	var doc sent.Doc

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	current := sent.Sentence{Id: 0}
	lineNum := 0

	flush := func() {
		if len(current.Tokens) == 0 {
			return
		}
		doc.Sentences = append(doc.Sentences, current)
		current = sent.Sentence{Id: len(doc.Sentences)}
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != numColumns {
			return sent.Doc{}, fmt.Errorf("line %d: expected %d columns, got %d", lineNum, numColumns, len(cols))
		}

		if strings.ContainsAny(cols[colId], "-.") {
			continue
		}

		id, err := strconv.Atoi(cols[colId])
		if err != nil {
			return sent.Doc{}, fmt.Errorf("line %d: invalid ID %q: %w", lineNum, cols[colId], err)
		}

		head := 0
		if cols[colHead] != "_" {
			head, err = strconv.Atoi(cols[colHead])
			if err != nil {
				return sent.Doc{}, fmt.Errorf("line %d: invalid HEAD %q: %w", lineNum, cols[colHead], err)
			}
		}

		current.Tokens = append(current.Tokens, sent.Token{
			Id:         id,
			Head:       head,
			SentenceId: current.Id,
			Index:      len(current.Tokens),
			Text:       cols[colForm],
			Lemma:      lemma(cols[colForm], cols[colLemma]),
			Pos:        field(cols[colUpos]),
			Tag:        field(cols[colXpos]),
			Dep:        field(cols[colDeprel]),
		})
	}

	if err := scanner.Err(); err != nil {
		return sent.Doc{}, err
	}

	// no trailing blank line
	flush()

	return doc, nil
}

// Write serializes the doc as CoNLL-U. Columns not kept by the token model
// (FEATS, DEPS, MISC) are written as "_".
func Write(w io.Writer, doc sent.Doc) error {
	bw := bufio.NewWriter(w)
	for i, s := range doc.Sentences {
		if _, err := fmt.Fprintf(bw, "# sent_id = %d\n", i+1); err != nil {
			return err
		}
		for _, t := range s.Tokens {
			_, err := fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%s\t_\t%d\t%s\t_\t_\n",
				t.Id, t.Text, empty(t.Lemma), empty(t.Pos), empty(t.Tag), t.Head, empty(t.Dep))
			if err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func field(s string) string {
	if s == "_" {
		return ""
	}
	return s
}

// lemma keeps "_" as the lemma of the word "_".
func lemma(form, s string) string {
	if form == "_" {
		return s
	}
	return field(s)
}

func empty(s string) string {
	if s == "" {
		return "_"
	}
	return s
}
