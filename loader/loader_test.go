package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/txxtlang/txxt/ast"
)

func TestLoadSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	mainFile := filepath.Join(tmpDir, "notes.txxt")
	err := os.WriteFile(mainFile, []byte("A paragraph.\n"), 0644)
	assert.NoError(t, err)

	ldr := New()
	doc, err := ldr.Load(context.Background(), mainFile)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Blocks()))
	assert.Equal(t, mainFile, doc.Filename)
}

func TestLoadBytesUsesStdinFilename(t *testing.T) {
	ldr := New()
	doc, err := ldr.LoadBytes(context.Background(), "<stdin>", []byte("Hello.\n"))
	assert.NoError(t, err)
	assert.Equal(t, "<stdin>", doc.Filename)
}

func TestLoadMissingFile(t *testing.T) {
	ldr := New()
	_, err := ldr.Load(context.Background(), filepath.Join(t.TempDir(), "missing.txxt"))
	assert.Error(t, err)
}

func TestWatchReparsesOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "notes.txxt")
	assert.NoError(t, os.WriteFile(target, []byte("First.\n"), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	blockCounts := make(chan int, 8)
	ldr := New()

	go func() {
		_ = ldr.Watch(ctx, target, func(doc *ast.Document, err error) {
			assert.NoError(t, err)
			blockCounts <- len(doc.Blocks())
		})
	}()

	first := <-blockCounts
	assert.Equal(t, 1, first)

	assert.NoError(t, os.WriteFile(target, []byte("First.\n\nSecond.\n"), 0644))

	select {
	case count := <-blockCounts:
		assert.Equal(t, 2, count)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for re-parse after write")
	}
}
