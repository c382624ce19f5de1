package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/annotok/command"
	"github.com/revelaction/annotok/storage"
)

func lsCommand(repo storage.DocReader, ui command.UI) error {
	docs, err := repo.List()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Fprintf(ui.Out, "📖 %d %s %s\n", doc.Id, doc.Title, strings.Join(doc.Labels, ","))
	}

	return nil
}
