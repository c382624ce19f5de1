package main

import (
	"github.com/revelaction/annotok/command"
	"github.com/revelaction/annotok/query"
	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/storage"
)

// Query command
func queryCommand(repo storage.DocReader, hasColor bool, limit int, ui command.UI) error {
	r := render.NewRenderer(ui.Out)
	r.HasColor = hasColor

	// now present the REPL
	h := query.NewHandler(repo, r)
	if limit > 0 {
		h.Limit = limit
	}
	return h.Run()
}
