package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/txxtlang/txxt/ast"
	"github.com/txxtlang/txxt/errors"
	"github.com/txxtlang/txxt/loader"
)

// WatchCmd re-parses a file on every save and reports its diagnostics,
// until interrupted. Unlike the other commands it doesn't accept
// stdin — there is nothing to watch.
type WatchCmd struct {
	File string `help:"TXXT input filename to watch." arg:""`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printInfof(ctx.Stdout, "watching %s (ctrl-c to stop)", cmd.File)

	ldr := loader.New()
	err := ldr.Watch(runCtx, cmd.File, func(doc *ast.Document, err error) {
		if err != nil {
			printError(ctx.Stderr, err.Error())
			return
		}

		if len(doc.Diagnostics) == 0 {
			printSuccess(ctx.Stdout, "no diagnostics")
			return
		}

		formatter := errors.NewTextFormatter(errors.WithSource(doc.Source()))
		_, _ = fmt.Fprintln(ctx.Stdout, formatter.FormatAll(doc.Diagnostics))
		printError(ctx.Stdout, fmt.Sprintf("%d diagnostic(s) found", len(doc.Diagnostics)))
	})

	if err != nil && runCtx.Err() == nil {
		return err
	}
	return nil
}
