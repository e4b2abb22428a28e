package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_TitleFromName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opening remarks.txt")
	require.NoError(t, os.WriteFile(path, []byte("Good evening.\r\n[Thanks]\r\n"), 0o644))

	title, text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "opening remarks", title)
	assert.Equal(t, "Good evening.\n[Thanks]\n", text)
}

func TestReadFile_Missing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile_CreatesDirsAndEndsWithNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "talk.txt")
	require.NoError(t, WriteFile(path, New(WithText("line one\nline two"))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}
