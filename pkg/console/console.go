// Package console is the operator command surface: a line-based REPL that
// maps commands such as saveFollowing() onto the session controller.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"xfollow/pkg/document"
	"xfollow/pkg/session"
	"xfollow/pkg/ui"
)

const prompt = "xfollow> "

// Console reads operator commands and runs them against a Controller
type Console struct {
	ctrl        *session.Controller
	out         *ui.Printer
	raw         io.Writer
	interactive bool
	open        func(path string) document.Source
}

// New creates a console writing its responses to out
func New(ctrl *session.Controller, out io.Writer, interactive bool) *Console {
	return &Console{
		ctrl:        ctrl,
		out:         ui.NewPrinter(out),
		raw:         out,
		interactive: interactive,
		open: func(path string) document.Source {
			return document.NewFileSource(path)
		},
	}
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run processes commands from in until EOF, exit, or ctx is cancelled
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if c.interactive {
			fmt.Fprint(c.raw, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := c.Execute(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Execute runs a single command line. It returns true when the operator asked to quit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	name, arg := parse(line)
	switch name {
	case "":
	case "open":
		if arg == "" {
			c.out.Error("usage: open <page.html>")
			return false
		}
		c.Open(ctx, arg)
	case "saveFollowing":
		res := c.ctrl.SaveFollowing()
		c.out.Success(fmt.Sprintf("[SUCCESS] added %d, following total: %d", res.Added, res.Total))
	case "saveFollowers":
		res := c.ctrl.SaveFollowers()
		c.out.Success(fmt.Sprintf("[SUCCESS] added %d, followers total: %d", res.Added, res.Total))
	case "exportFinal":
		c.exportFinal()
	case "stopCollect":
		if report := c.ctrl.Stop(); report.Stopped {
			c.out.Info("[STOP] current page collected", report.BufferSize)
		}
	case "startCollect":
		if err := c.ctrl.Start(); err != nil {
			c.out.Error("cannot start collecting", err)
		}
	case "scan":
		res := c.ctrl.ScanNow(ctx)
		c.out.Info("new", res.New)
		c.out.Info("current page collected", res.BufferSize)
	case "showStatus":
		c.showStatus()
	case "help":
		c.Help()
	case "exit", "quit":
		c.ctrl.Stop()
		return true
	default:
		c.out.Error("unknown command", name)
		c.out.Line("type help for the list of commands")
	}
	return false
}

// Open starts collecting from the page snapshot at path
func (c *Console) Open(ctx context.Context, path string) {
	res := c.ctrl.Open(ctx, c.open(path))
	if res.Resumed {
		c.out.Info("resumed session", res.Status.SessionID)
	}
	c.out.Info("collecting from", path)
	c.printStatus(res.Status)
}

// Help prints the usage text
func (c *Console) Help() {
	c.out.Highlight("Usage:")
	c.out.Line("1. open <following page>, scroll to the bottom, then saveFollowing()")
	c.out.Line("2. open <verified_followers page>, scroll to the bottom, then saveFollowers()")
	c.out.Line("3. exportFinal() to write the recovery file")
	c.out.Line("")
	c.out.Line("Other commands: showStatus() stopCollect() startCollect() scan help exit")
}

func (c *Console) exportFinal() {
	report, path, err := c.ctrl.ExportFinal()

	c.out.Highlight("===== summary =====")
	c.out.Info("following", report.FollowingCount)
	c.out.Info("followers", report.FollowersCount)
	c.out.Info("mutual", report.MutualCount)
	c.out.Info("records", len(report.Records))

	if err != nil {
		c.out.Error("export failed", err)
		return
	}
	c.out.Success("[SUCCESS] file written: " + path)
}

func (c *Console) showStatus() {
	c.printStatus(c.ctrl.Status())
}

func (c *Console) printStatus(status session.Status) {
	c.out.Highlight("===== status =====")
	c.out.Info("following saved", status.Following)
	c.out.Info("followers saved", status.Followers)
	c.out.Info("current page collected", status.Buffer)
	c.out.Info("collecting", status.Running)
	c.out.Info("interval scans", status.Scans)
}

// parse accepts both console-style calls ("saveFollowing();") and plain words
func parse(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ";")
	if line == "" || strings.HasPrefix(line, "#") {
		return "", ""
	}

	fields := strings.Fields(line)
	name = strings.TrimSuffix(fields[0], "()")
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}
	return name, arg
}
