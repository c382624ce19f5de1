package storage

import (
	sent "github.com/revelaction/annotok/sentence"
)

// Cursor for paginated lemma-based queries
type Cursor int64

// SentenceResult is a stored sentence returned by a lemma query.
type SentenceResult struct {
	RowID    int64
	DocID    int
	DocTitle string
	Tokens   []sent.Token
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// Content (Sentences) is not loaded.
	List() ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates returns sentences containing ALL given lemmas, resuming
	// after the given cursor. Returns the new cursor.
	FindCandidates(lemmas []string, after Cursor, limit int) ([]SentenceResult, Cursor, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage and
	// returns the document id.
	Write(doc sent.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}
