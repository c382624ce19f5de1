package zombiezen

import (
	"context"
	_ "embed"
	"fmt"
	"runtime"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const busyTimeout = 5 * time.Second

//go:embed sql/docs.sql
var docsSchema string

// NewPool opens the document database at dbPath in WAL mode and creates the
// document tables when missing. Opening an existing database keeps its rows.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	// sqlitex.NewPool opens with OpenReadWrite | OpenCreate | OpenWAL | OpenURI
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize: runtime.NumCPU(),
		PrepareConn: func(conn *sqlite.Conn) error {
			// watch workers write concurrently
			conn.SetBusyTimeout(busyTimeout)
			return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open document database %s: %w", dbPath, err)
	}

	if err := createTables(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("document schema %s: %w", dbPath, err)
	}
	return pool, nil
}

func createTables(pool *sqlitex.Pool) error {
	conn, err := pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	return sqlitex.ExecuteScript(conn, docsSchema, nil)
}
