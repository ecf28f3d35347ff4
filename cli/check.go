package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/txxtlang/txxt/errors"
	"github.com/txxtlang/txxt/loader"
	"github.com/txxtlang/txxt/output"
	"github.com/txxtlang/txxt/telemetry"
)

// CheckCmd parses a file and reports every diagnostic the pipeline
// recorded, followed by a one-line summary. It prints no AST or
// formatted text.
type CheckCmd struct {
	File FileOrStdin `help:"TXXT input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	JSON bool        `help:"Report diagnostics as JSON instead of styled text."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		timer := collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
		defer func() {
			timer.End()
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

	if len(doc.Diagnostics) == 0 {
		printSuccess(ctx.Stdout, "no diagnostics")
		return nil
	}

	if cmd.JSON {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(doc.Diagnostics))
	} else {
		formatter := errors.NewTextFormatter(errors.WithSource(sourceContent))
		_, _ = fmt.Fprintln(ctx.Stdout, formatter.FormatAll(doc.Diagnostics))
	}

	printError(ctx.Stderr, fmt.Sprintf("%d diagnostic(s) found", len(doc.Diagnostics)))
	return NewCommandError(1)
}
