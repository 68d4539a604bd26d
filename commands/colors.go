package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

var red = ansi.ColorFunc("red+b")
var yellow = ansi.ColorFunc("yellow+b")
var green = ansi.ColorFunc("green+b")
var magenta = ansi.ColorFunc("magenta")

func noColor(text string) string {
	return text
}

type palette struct {
	path    func(string) string
	address func(string) string
	failure func(string) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{path: noColor, address: noColor, failure: noColor}
	}

	return palette{path: magenta, address: green, failure: red}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdout returns where hits are written and whether colour should be used.
func stdout(disableColor bool) (io.Writer, bool) {
	if disableColor || !isTerminal(os.Stdout) {
		return os.Stdout, false
	}

	return colorable.NewColorableStdout(), true
}

func warn(args ...interface{}) {
	label := "[WARN]"
	if isTerminal(os.Stderr) {
		label = yellow(label)
	}

	fmt.Fprintln(colorable.NewColorableStderr(), append([]interface{}{label}, args...)...)
}

func fail(args ...interface{}) {
	label := "[ERROR]"
	if isTerminal(os.Stderr) {
		label = red(label)
	}

	fmt.Fprintln(colorable.NewColorableStderr(), append([]interface{}{label}, args...)...)
}
