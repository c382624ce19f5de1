package main

import (
	"fmt"

	"github.com/revelaction/annotok/command"
	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/storage"
)

func showCommand(repo storage.DocReader, docId, start, count int, ui command.UI) error {
	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if start < 0 {
		start = 0
	}
	if start >= len(doc.Sentences) {
		return nil
	}

	sentences := doc.Sentences[start:]
	if count >= 0 && count < len(sentences) {
		sentences = sentences[:count]
	}

	r := render.NewRenderer(ui.Out)
	for i, sentence := range sentences {
		prefix := fmt.Sprintf("✍  %d ", start+i)
		r.Sentence(sentence.Tokens, prefix)
	}

	return nil
}

func sentenceCommand(repo storage.DocReader, docId, sentId int, ui command.UI) error {
	doc, err := repo.Read(docId)
	if err != nil {
		return err
	}

	if sentId >= len(doc.Sentences) {
		return fmt.Errorf("sentence index %d out of bounds (0-%d)", sentId, len(doc.Sentences)-1)
	}

	s := doc.Sentences[sentId]
	r := render.NewRenderer(ui.Out)
	r.Sentence(s.Tokens, fmt.Sprintf("✍  %d ", sentId))
	fmt.Fprintln(ui.Out)
	r.Tokens(s.Tokens)

	return nil
}
