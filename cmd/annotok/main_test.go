package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/annotok/command"
	sent "github.com/revelaction/annotok/sentence"
	"github.com/revelaction/annotok/storage/sqlite/zombiezen"
)

func newDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annotok.db")
	pool, err := zombiezen.NewPool(path)
	require.NoError(t, err)
	defer pool.Close()

	_, err = zombiezen.NewDocStore(pool).Write(sent.Doc{
		Title:  "cats.txt",
		Labels: []string{"lang:en"},
		Sentences: []sent.Sentence{
			{Tokens: []sent.Token{
				{Id: 1, Text: "Cats", Lemma: "cat", Pos: "NOUN", Head: 2, Dep: "nsubj"},
				{Id: 2, Text: "sleep", Lemma: "sleep", Pos: "VERB", Head: 0, Dep: "root"},
			}},
			{Tokens: []sent.Token{
				{Id: 1, Text: "Dogs", Lemma: "dog", Pos: "NOUN", Head: 2, Dep: "nsubj"},
				{Id: 2, Text: "bark", Lemma: "bark", Pos: "VERB", Head: 0, Dep: "root"},
			}},
		},
	})
	require.NoError(t, err)
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(command.UI{Out: &out, Err: &errOut})
	err := app.Run(append([]string{"annotok"}, args...))
	return out.String(), err
}

func TestLs(t *testing.T) {
	db := newDB(t)
	out, err := run(t, "--db", db, "ls")
	require.NoError(t, err)
	assert.Equal(t, "📖 1 cats.txt lang:en\n", out)
}

func TestShow(t *testing.T) {
	db := newDB(t)
	out, err := run(t, "--db", db, "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "✍  0 Cats sleep\n✍  1 Dogs bark\n", out)

	out, err = run(t, "--db", db, "show", "--start", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "✍  1 Dogs bark\n", out)
}

func TestShowSentence(t *testing.T) {
	db := newDB(t)
	out, err := run(t, "--db", db, "show", "--sentence", "1", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "✍  1 Dogs bark", lines[0])
	assert.Contains(t, lines[2], `"Dogs"`)
	assert.Contains(t, lines[2], "nsubj")

	_, err = run(t, "--db", db, "show", "--sentence", "5", "1")
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	db := newDB(t)
	out, err := run(t, "--db", db, "stat", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Num sentences 2, num tokens 4, num tokens per sentence 2")
	assert.Contains(t, out, "    NOUN 2")
}

func TestDocIdArg(t *testing.T) {
	db := newDB(t)
	_, err := run(t, "--db", db, "stat")
	assert.Error(t, err)

	_, err = run(t, "--db", db, "stat", "one")
	assert.Error(t, err)

	_, err = run(t, "--db", db, "show", "42")
	assert.Error(t, err)
}

func TestMissingDB(t *testing.T) {
	_, err := run(t, "ls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
