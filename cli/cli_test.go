package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/txxtlang/txxt/loader"
)

func TestFileOrStdinAbsoluteFilename(t *testing.T) {
	t.Run("Stdin", func(t *testing.T) {
		f := &FileOrStdin{Filename: "<stdin>"}
		assert.Equal(t, "<stdin>", f.AbsoluteFilename())
	})

	t.Run("RelativePath", func(t *testing.T) {
		f := &FileOrStdin{Filename: "notes.txxt"}
		abs := f.AbsoluteFilename()
		assert.True(t, filepath.IsAbs(abs))
	})
}

func TestFileOrStdinSourceContent(t *testing.T) {
	t.Run("Stdin", func(t *testing.T) {
		f := &FileOrStdin{Filename: "<stdin>", Contents: []byte("hello\n")}
		content, err := f.SourceContent()
		assert.NoError(t, err)
		assert.Equal(t, "hello\n", string(content))
	})

	t.Run("File", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txxt")
		assert.NoError(t, os.WriteFile(path, []byte("A paragraph.\n"), 0644))

		f := &FileOrStdin{Filename: path}
		content, err := f.SourceContent()
		assert.NoError(t, err)
		assert.Equal(t, "A paragraph.\n", string(content))
	})
}

func TestFileOrStdinLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txxt")
	assert.NoError(t, os.WriteFile(path, []byte("A paragraph.\n"), 0644))

	f := &FileOrStdin{Filename: path}
	doc, err := f.LoadDocument(context.Background(), loader.New())
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Blocks()))
}

func TestIsTerminalFalseUnderTest(t *testing.T) {
	// go test runs the test binary with stdin not attached to a terminal.
	assert.False(t, isTerminal())
}
