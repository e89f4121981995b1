package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BertoldVdb/trw450-tools/fwpatch"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

/* Windows consoles need escape sequences translated */
func colorWriter(w io.Writer, colors bool) io.Writer {
	if f, ok := w.(*os.File); ok && colors {
		return colorable.NewColorable(f)
	}
	return w
}

func newColor(colors bool, attr ...color.Attribute) *color.Color {
	c := color.New(attr...)
	if colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

type severityLogger struct {
	out    io.Writer
	colors map[fwpatch.Level]*color.Color
}

/* Lines look like "[LEVEL] message", the message is colored by severity */
func newLogger(out io.Writer, colors bool) fwpatch.Logger {
	l := &severityLogger{
		out: out,
		colors: map[fwpatch.Level]*color.Color{
			fwpatch.LevelError:   newColor(colors, color.FgRed, color.Bold),
			fwpatch.LevelWarning: newColor(colors, color.FgYellow, color.Bold),
			fwpatch.LevelInfo:    newColor(colors, color.FgGreen, color.Bold),
		},
	}
	return fwpatch.LogFunc(l.log)
}

func (l *severityLogger) log(level fwpatch.Level, format string, param ...interface{}) {
	msg := fmt.Sprintf(format, param...)
	if c, ok := l.colors[level]; ok {
		msg = c.Sprint(msg)
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level, msg)
}

func printBanner(w io.Writer, colors bool) {
	title := newColor(colors, color.FgGreen, color.Bold)
	ver := newColor(colors, color.FgYellow, color.Bold)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", title.Sprint("TRW450-Unlock Patch Tool"), ver.Sprintf("Version %s", version))
	fmt.Fprintln(w, "----------------------------------------------------")
}
