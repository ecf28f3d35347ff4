package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/txxtlang/txxt/errors"
	"github.com/txxtlang/txxt/loader"
)

// ParseCmd parses a file and dumps its AST.
type ParseCmd struct {
	File FileOrStdin `help:"TXXT input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	sourceContent, err := cmd.File.SourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	ldr := loader.New()
	doc, err := cmd.File.LoadDocument(context.Background(), ldr)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	repr.Println(doc.Root)

	if len(doc.Diagnostics) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr)
		_, _ = fmt.Fprintln(ctx.Stderr, errors.NewTextFormatter(errors.WithSource(sourceContent)).FormatAll(doc.Diagnostics))
	}

	return nil
}
