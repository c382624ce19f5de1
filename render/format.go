package render

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/annotok/conllu"
	sent "github.com/revelaction/annotok/sentence"
)

const (
	FormatTSV    = "tsv"
	FormatJSON   = "json"
	FormatCoNLLU = "conllu"

	Defaultformat = FormatTSV
)

func SupportedFormats() []string {
	return []string{FormatTSV, FormatJSON, FormatCoNLLU}
}

// Write serializes doc to w in the given format.
func Write(w io.Writer, doc sent.Doc, format string) error {
	switch format {
	case FormatTSV, "":
		return TSV(w, doc.Flatten())
	case FormatJSON:
		return JSON(w, doc.Flatten())
	case FormatCoNLLU:
		return conllu.Write(w, doc)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

// WriteFile writes doc to path, replacing any existing file. An interrupted
// write leaves a truncated file.
func WriteFile(path string, doc sent.Doc, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, doc, format)
}
