package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/annotok/sentence"
	"github.com/revelaction/annotok/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List() ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sent.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			doc := sent.Doc{
				Id:    stmt.ColumnInt(0),
				Title: stmt.ColumnText(1),
			}
			doc.Labels = splitLabels(stmt.ColumnText(2))
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			doc.Labels = splitLabels(stmt.ColumnText(1))
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY rowid", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var tokens []sent.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &tokens); err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, sent.Sentence{
				Id:     len(doc.Sentences),
				DocId:  id,
				Tokens: tokens,
			})
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int) ([]storage.SentenceResult, storage.Cursor, error) {
	if len(lemmas) == 0 {
		return nil, after, nil
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, after, err
	}
	defer h.pool.Put(conn)

	// INTERSECT keeps the sentences that contain ALL lemmas, each once.
	var queryBuilder strings.Builder
	var args []interface{}

	queryBuilder.WriteString("SELECT s.rowid, s.doc_id, d.title, s.data FROM sentences s JOIN docs d ON d.id = s.doc_id WHERE s.rowid IN (")
	for i, lemma := range lemmas {
		if i > 0 {
			queryBuilder.WriteString(" INTERSECT ")
		}
		queryBuilder.WriteString("SELECT sentence_rowid FROM sentence_lemmas WHERE lemma = ? AND sentence_rowid > ?")
		args = append(args, lemma, int64(after))
	}
	queryBuilder.WriteString(") ORDER BY s.rowid LIMIT ?")
	args = append(args, limit)

	var results []storage.SentenceResult
	newCursor := after
	err = sqlitex.Execute(conn, queryBuilder.String(), &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			res := storage.SentenceResult{
				RowID:    stmt.ColumnInt64(0),
				DocID:    stmt.ColumnInt(1),
				DocTitle: stmt.ColumnText(2),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &res.Tokens); err != nil {
				return err
			}
			if storage.Cursor(res.RowID) > newCursor {
				newCursor = storage.Cursor(res.RowID)
			}
			results = append(results, res)
			return nil
		},
	})
	if err != nil {
		return nil, after, err
	}

	return results, newCursor, nil
}

func (h *DocStore) Write(doc sent.Doc) (docID int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels := strings.Join(doc.Labels, ",")
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, labels},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	id := conn.LastInsertRowID()

	for _, sentence := range doc.Sentences {
		data, marshalErr := json.Marshal(sentence.Tokens)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, data) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{id, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert sentence: %w", err)
		}
		sentRowID := conn.LastInsertRowID()

		for _, lemma := range sentence.Lemmas() {
			err = sqlitex.Execute(conn, "INSERT INTO sentence_lemmas (lemma, sentence_rowid) VALUES (?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{lemma, sentRowID},
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert lemma: %w", err)
			}
		}
	}

	return int(id), nil
}

func splitLabels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
