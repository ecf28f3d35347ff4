package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/txxtlang/txxt/parser"
)

var cli struct {
	File string `help:"TXXT file to parse." arg:"" type:"existingfile"`
}

func main() {
	ctx := kong.Parse(&cli)

	raw, err := os.ReadFile(cli.File)
	ctx.FatalIfErrorf(err)

	doc, err := parser.Parse(raw, cli.File)
	ctx.FatalIfErrorf(err)

	repr.Println(doc.Root)
}
