package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/txxtlang/txxt/errors"
	"github.com/txxtlang/txxt/formatter"
	"github.com/txxtlang/txxt/loader"
	"github.com/txxtlang/txxt/output"
	"github.com/txxtlang/txxt/telemetry"
)

// FormatCmd writes a file back out, either byte-identical to its
// source or in canonical form.
type FormatCmd struct {
	File      FileOrStdin `help:"TXXT input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Canonical bool        `help:"Normalize marker spacing, list alignment, and indentation instead of an exact round trip."`
	Indent    int         `help:"Spaces per nesting level in canonical mode." default:"2"`
	Write     bool        `help:"Write the result back to the input file instead of stdout. Prompts for confirmation; if stdin is not a terminal the file is left unchanged."`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	sourceContent, err := cmd.File.SourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	ldr := loader.New()
	doc, err := cmd.File.LoadDocument(runCtx, ldr)
	if err != nil {
		return fmt.Errorf("failed to parse file: %w", err)
	}

	if len(doc.Diagnostics) > 0 {
		formatted := errors.NewTextFormatter(errors.WithSource(sourceContent)).FormatAll(doc.Diagnostics)
		_, _ = fmt.Fprintln(ctx.Stderr, formatted)
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d diagnostic(s) found, formatting anyway", len(doc.Diagnostics)))
	}

	mode := formatter.RoundTrip
	if cmd.Canonical {
		mode = formatter.Canonical
	}
	f := formatter.New(formatter.WithMode(mode), formatter.WithIndent(cmd.Indent))

	var buf bytes.Buffer
	if err := f.Format(runCtx, doc, sourceContent, &buf); err != nil {
		return err
	}

	if !cmd.Write || cmd.File.Filename == "<stdin>" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.File.Filename))
	if err != nil {
		return err
	}
	if !confirmed {
		printInfof(ctx.Stdout, "not writing %s", cmd.File.Filename)
		return nil
	}

	if err := os.WriteFile(cmd.File.Filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("formatted %s", cmd.File.Filename))
	return nil
}
