package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Style holds the escape sequences the terminal paints with. The zero value
// prints plain text.
type Style struct {
	Bold   string
	Blue   string
	Cyan   string
	Green  string
	Yellow string
	Red    string
	Purple string
	Reset  string
	Clear  string
}

// Colored is the ANSI palette.
var Colored = Style{
	Bold:   "\033[1m",
	Blue:   "\033[34m",
	Cyan:   "\033[36m",
	Green:  "\033[32m",
	Yellow: "\033[33m",
	Red:    "\033[31m",
	Purple: "\033[35m",
	Reset:  "\033[0m",
	Clear:  "\033[H\033[2J",
}

// Plain prints without escapes.
var Plain = Style{}

// StyleFor picks Colored when w is a terminal and color is not disabled.
func StyleFor(w io.Writer, noColor bool) Style {
	if noColor {
		return Plain
	}
	f, ok := w.(*os.File)
	if !ok {
		return Plain
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return Colored
	}
	return Plain
}

func (s Style) paint(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + s.Reset
}
