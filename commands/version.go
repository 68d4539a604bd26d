package commands

import "fmt"

type VersionCommand struct{}

var (
	// overridden with -ldflags "-X github.com/laplus-sadness/sjisgrep/commands.version=..."
	version = "dev"
)

func (command *VersionCommand) Execute(args []string) error {
	fmt.Println("sjisgrep", version)

	return nil
}
