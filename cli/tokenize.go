package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/txxtlang/txxt/lexer"
	"github.com/txxtlang/txxt/parser"
)

// TokenizeCmd runs only the tokenizer and prints one line per token,
// for inspecting how a file is lexed without paying for grouping or
// assembly.
type TokenizeCmd struct {
	File FileOrStdin `help:"TXXT input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *TokenizeCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.SourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	tokens, err := parser.Tokenize(content, cmd.File.Filename)
	if err != nil {
		return fmt.Errorf("failed to tokenize file: %w", err)
	}

	for _, t := range tokens {
		if t.Type == lexer.EOF {
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%-16s %d:%d    %q\n",
			t.Type.String(), t.Span.Start.Line, t.Span.Start.Column, t.Text(content))
	}

	return nil
}
