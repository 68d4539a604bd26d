package commands

import (
	"fmt"

	"github.com/laplus-sadness/sjisgrep/codec"
)

type EncodingsCommand struct{}

func (command *EncodingsCommand) Execute(args []string) error {
	for _, name := range codec.Names() {
		c, err := codec.Lookup(name)
		if err != nil {
			return err
		}

		suffix := ""
		if name == codec.DefaultName {
			suffix = " (default)"
		}

		fmt.Printf("%-12s %s%s\n", name, c, suffix)
	}

	return nil
}
