package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDir(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.txt"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.md"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(in, "sub"), 0755))

	jobs, err := FromDir(in, "en", "out")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "a.md", jobs[0].Name)
	assert.Equal(t, filepath.Join("out", "processed_a.md"), jobs[0].Dest)
	assert.Equal(t, "b.txt", jobs[1].Name)
	assert.Equal(t, filepath.Join("out", "processed_b.txt"), jobs[1].Dest)
	assert.Equal(t, "en", jobs[1].Lang)
	assert.NotEqual(t, jobs[0].Id, jobs[1].Id)

	text, err := jobs[1].Read()
	require.NoError(t, err)
	assert.Equal(t, "b", text)
}

func TestFromDirMissing(t *testing.T) {
	_, err := FromDir(filepath.Join(t.TempDir(), "nope"), "en", "out")
	assert.Error(t, err)
}

func TestTextJob(t *testing.T) {
	j := NewText("Hello world", "en", "output.txt")
	text, err := j.Read()
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
	assert.Equal(t, "output.txt", j.Dest)
	assert.NotEmpty(t, j.Id)
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("/in/note.txt"))
	assert.False(t, IsText("/in/note.csv"))
	assert.False(t, IsText("/in/note.TXT"))
	assert.False(t, IsText("/in/txt"))
}

func TestReadMissingFile(t *testing.T) {
	j := NewFile(filepath.Join(t.TempDir(), "gone.txt"), "en", "out")
	_, err := j.Read()
	assert.Error(t, err)
}
