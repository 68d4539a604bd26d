package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/laplus-sadness/sjisgrep/commands"
)

func main() {
	parser := flags.NewParser(&commands.SJISGrep, flags.HelpFlag|flags.PrintErrors)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(2)
	}
}
