package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/txxtlang/txxt/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

func main() {
	var c struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}

	ctx := kong.Parse(&c,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("txxt"),
		kong.Description("A parser and formatter for TXXT documents."),
		kong.UsageOnError(),
		kong.Bind(&c.Globals),
	)

	err := ctx.Run()
	if cmdErr, ok := err.(*cli.CommandError); ok {
		os.Exit(cmdErr.ExitCode())
	}
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
