package ui

import (
	"fmt"
	"io"
	"os"
)

// Banner is printed when the collector console starts
const Banner = `
    ╔════════════════════════════════════════════╗
    ║   xfollow - follow list recovery collector  ║
    ╚════════════════════════════════════════════╝
`

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes
func colorize(colorString string) func(string) string {
	return func(text string) string {
		if noColor {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

var noColor bool

// SetNoColor disables ANSI colors for every Printer
func SetNoColor(disabled bool) {
	noColor = disabled
}

// Printer writes operator-facing messages
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout is the default printer
var Stdout = NewPrinter(os.Stdout)

// Banner prints the startup banner
func (p *Printer) Banner() {
	fmt.Fprint(p.w, Cyan(Banner))
}

// Error prints an error message in red
func (p *Printer) Error(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Fprintln(p.w, Red(msg+": "+fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Fprintln(p.w, Red(msg))
	}
}

// Success prints a success message in green
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, Green(msg))
}

// Info prints a label/value pair
func (p *Printer) Info(label string, value interface{}) {
	fmt.Fprintf(p.w, "%s: %s\n", Cyan(label), Yellow(fmt.Sprint(value)))
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, Yellow(msg))
}

// Highlight prints a highlighted message in magenta
func (p *Printer) Highlight(msg string) {
	fmt.Fprintln(p.w, Magenta(msg))
}

// Line prints msg as is
func (p *Printer) Line(msg string) {
	fmt.Fprintln(p.w, msg)
}

// PrintError prints an error message to stdout
func PrintError(msg string, args ...interface{}) {
	Stdout.Error(msg, args...)
}
