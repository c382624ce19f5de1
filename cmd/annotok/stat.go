package main

import (
	"fmt"
	"sort"

	"github.com/revelaction/annotok/command"
	sent "github.com/revelaction/annotok/sentence"
	"github.com/revelaction/annotok/stat"
	"github.com/revelaction/annotok/storage"
)

// statCommand prints the statistics of a document, or of one sentence if
// sentId is not negative.
func statCommand(repo storage.DocReader, docId int, sentId int, ui command.UI) error {
	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if sentId >= 0 {
		if sentId >= len(doc.Sentences) {
			return fmt.Errorf("sentence index %d out of bounds (doc has %d sentences)", sentId, len(doc.Sentences))
		}
		doc = sent.Doc{Sentences: []sent.Sentence{doc.Sentences[sentId]}}
	}

	hdl := stat.NewHandler()
	hdl.Aggregate(doc)

	stats := hdl.Get()
	fmt.Fprintf(ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d\n", stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean)

	pos := make([]string, 0, len(stats.Pos))
	for p := range stats.Pos {
		pos = append(pos, p)
	}
	sort.Strings(pos)

	for _, p := range pos {
		fmt.Fprintf(ui.Out, "%8s %d\n", p, stats.Pos[p])
	}

	return nil
}
