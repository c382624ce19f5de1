package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/annotok/render"
	"github.com/revelaction/annotok/storage/sqlite/zombiezen"
	"github.com/revelaction/annotok/watch"
)

const catsSleep = `# sent_id = 1
1	Cats	cat	NOUN	NNS	_	2	nsubj	_	_
2	sleep	sleep	VERB	VBP	_	0	root	_	_
3	.	.	PUNCT	.	_	2	punct	_	_

`

// fakeService is a UDPipe REST service knowing the English model only.
type fakeService struct {
	*httptest.Server
	processed atomic.Int32
	models    atomic.Int32
	lastModel atomic.Value
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			fs.models.Add(1)
			json.NewEncoder(w).Encode(map[string]any{
				"models":        map[string][]string{"english-ewt-ud-2.15-241121": {"tokenizer", "tagger", "parser"}},
				"default_model": "english-ewt-ud-2.15-241121",
			})
		case "/process":
			if err := r.ParseForm(); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			fs.processed.Add(1)
			fs.lastModel.Store(r.PostForm.Get("model"))
			json.NewEncoder(w).Encode(map[string]string{"model": "english-ewt-ud-2.15-241121", "result": catsSleep})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func testUI() (UI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return UI{Out: &out, Err: &errOut}, &out, &errOut
}

func pipelineArgs(srv *fakeService, modelDir string) []string {
	return []string{"--udpipe_url", srv.URL, "--model_dir", modelDir, "--log_level", "debug"}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

func TestTextApp(t *testing.T) {
	srv := newFakeService(t)
	modelDir := t.TempDir()
	output := filepath.Join(t.TempDir(), "nested", "output.txt")
	ui, _, errOut := testUI()

	args := append([]string{"annotok-text", "--text", "Cats sleep.", "--lang", "en", "--output", output}, pipelineArgs(srv, modelDir)...)
	require.NoError(t, NewTextApp(ui).Run(args))

	lines := readLines(t, output)
	require.Len(t, lines, 3)
	assert.Equal(t, "Cats\tcat\tNOUN\t2\tnsubj", lines[0])
	assert.Equal(t, "sleep\tsleep\tVERB\t0\troot", lines[1])
	for _, l := range lines {
		assert.Len(t, strings.Split(l, "\t"), 5)
	}

	assert.FileExists(t, filepath.Join(modelDir, "en", "english-ewt.json"))
	assert.Equal(t, "english-ewt-ud-2.15-241121", srv.lastModel.Load())
	assert.Contains(t, errOut.String(), "processing")

	// the model is checked once
	require.NoError(t, NewTextApp(ui).Run(args))
	assert.Equal(t, int32(1), srv.models.Load())
	assert.Equal(t, int32(2), srv.processed.Load())
}

func TestTextAppMissingLang(t *testing.T) {
	ui, _, _ := testUI()
	err := NewTextApp(ui).Run([]string{"annotok-text", "--text", "Hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), FlagLang)
}

func TestTextAppUnsupportedLanguage(t *testing.T) {
	srv := newFakeService(t)
	output := filepath.Join(t.TempDir(), "output.txt")
	ui, _, _ := testUI()

	args := append([]string{"annotok-text", "--text", "Hallo", "--lang", "xx", "--output", output}, pipelineArgs(srv, t.TempDir())...)
	require.Error(t, NewTextApp(ui).Run(args))
	assert.NoFileExists(t, output)
	assert.Equal(t, int32(0), srv.processed.Load())
}

func TestTextAppUnknownBackend(t *testing.T) {
	ui, _, _ := testUI()
	err := NewTextApp(ui).Run([]string{"annotok-text", "--text", "Hello", "--lang", "en", "--backend", "grpc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestTextAppConfigFile(t *testing.T) {
	srv := newFakeService(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "output.json")
	config := filepath.Join(dir, "annotok.yaml")
	require.NoError(t, os.WriteFile(config, []byte("format: json\nmodel_dir: "+filepath.Join(dir, "models")+"\nudpipe_url: "+srv.URL+"\n"), 0644))

	ui, _, _ := testUI()
	args := []string{"annotok-text", "--text", "Cats sleep.", "--lang", "en", "--output", output, "--config", config}
	require.NoError(t, NewTextApp(ui).Run(args))

	var got []render.Annotation
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &got))
	require.Len(t, got, 3)
	assert.Equal(t, render.Annotation{Text: "Cats", Lemma: "cat", Pos: "NOUN", Head: 2, Deprel: "nsubj"}, got[0])
}

func TestTextAppEnv(t *testing.T) {
	srv := newFakeService(t)
	output := filepath.Join(t.TempDir(), "output.conllu")
	t.Setenv("ANNOTOK_FORMAT", render.FormatCoNLLU)
	t.Setenv("ANNOTOK_UDPIPE_URL", srv.URL)
	t.Setenv("ANNOTOK_MODEL_DIR", t.TempDir())

	ui, _, _ := testUI()
	require.NoError(t, NewTextApp(ui).Run([]string{"annotok-text", "--text", "Cats sleep.", "--lang", "en", "--output", output}))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# sent_id = 1")
	assert.Contains(t, string(content), "1\tCats\tcat\tNOUN")
}

func TestTextAppStore(t *testing.T) {
	srv := newFakeService(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "annotok.db")
	ui, _, _ := testUI()

	args := append([]string{"annotok-text", "--text", "Cats sleep.", "--lang", "en", "--output", filepath.Join(dir, "output.txt"), "--db", db}, pipelineArgs(srv, t.TempDir())...)
	require.NoError(t, NewTextApp(ui).Run(args))

	pool, err := zombiezen.NewPool(db)
	require.NoError(t, err)
	defer pool.Close()

	docs, err := zombiezen.NewDocStore(pool).List()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"lang:en"}, docs[0].Labels)
}

func TestBatchApp(t *testing.T) {
	srv := newFakeService(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, os.WriteFile(filepath.Join(in, "one.txt"), []byte("Cats sleep."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "two.md"), []byte("Cats sleep."), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub"), 0755))

	ui, _, _ := testUI()
	args := append([]string{"annotok-batch", "--input_dir", in, "--lang", "en", "--output_dir", out}, pipelineArgs(srv, t.TempDir())...)
	require.NoError(t, NewBatchApp(ui).Run(args))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"processed_one.txt", "processed_two.md"}, names)
	assert.Equal(t, int32(2), srv.processed.Load())
	assert.Len(t, readLines(t, filepath.Join(out, "processed_one.txt")), 3)
}

func TestBatchAppProgress(t *testing.T) {
	srv := newFakeService(t)
	in := t.TempDir()
	out := t.TempDir()
	for i := 0; i < 40; i++ {
		name := filepath.Join(in, fmt.Sprintf("f%02d.txt", i))
		require.NoError(t, os.WriteFile(name, []byte("Cats sleep."), 0644))
	}

	ui, _, _ := testUI()
	args := append([]string{"annotok-batch", "--input_dir", in, "--lang", "en", "--output_dir", out, "--progress"}, pipelineArgs(srv, t.TempDir())...)
	require.NoError(t, NewBatchApp(ui).Run(args))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 40)
	assert.Equal(t, int32(40), srv.processed.Load())
}

func TestBatchAppMissingInputDir(t *testing.T) {
	srv := newFakeService(t)
	ui, _, _ := testUI()
	args := append([]string{"annotok-batch", "--input_dir", filepath.Join(t.TempDir(), "nope"), "--lang", "en", "--output_dir", t.TempDir()}, pipelineArgs(srv, t.TempDir())...)
	assert.Error(t, NewBatchApp(ui).Run(args))
}

func TestWatchApp(t *testing.T) {
	srv := newFakeService(t)
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "missing", "output")
	ui, _, _ := testUI()

	watchers := make(chan *watch.Watcher, 1)
	app := NewWatchApp(ui)
	app.Action = func(c *cli.Context) error {
		return watchAction(c, ui, func(w *watch.Watcher) { watchers <- w })
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	args := append([]string{"annotok-watch", "--input_dir", in, "--lang", "en", "--output_dir", out}, pipelineArgs(srv, t.TempDir())...)
	go func() { done <- app.RunContext(ctx, args) }()

	var w *watch.Watcher
	select {
	case w = <-watchers:
	case err := <-done:
		t.Fatalf("watch exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not created")
	}
	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watch exited early: %v", err)
	}

	assert.DirExists(t, out)

	tmp := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(tmp, []byte("Cats sleep."), 0644))
	require.NoError(t, os.Rename(tmp, filepath.Join(in, "note.txt")))

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "processed_note.txt"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
