package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/go-delve/jdwp/pkg/config"
	"github.com/go-delve/jdwp/pkg/dump"
)

const (
	terminalHighlightEscapeCode string = "\033[%2dm"
	terminalResetEscapeCode     string = "\033[0m"
)

const (
	ansiRed     = 31
	ansiGreen   = 32
	ansiBlue    = 34
	ansiMagenta = 35
)

// ColorableStdout returns a writer for stdout that understands ANSI escape
// codes on every platform.
func ColorableStdout() io.Writer {
	return colorable.NewColorableStdout()
}

// ShouldColor reports whether output written to f should be colorized
// for the given color mode. A nil f stands for stdout.
func ShouldColor(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	if f == nil {
		f = os.Stdout
	}
	return isatty.IsTerminal(f.Fd())
}

func highlight(color int, s string) string {
	return fmt.Sprintf(terminalHighlightEscapeCode, color) + s + terminalResetEscapeCode
}

// EntryHighlighter returns a function that colors the header of a dump
// entry by its kind, or nil if enabled is false.
func EntryHighlighter(enabled bool) func(*dump.Entry, string) string {
	if !enabled {
		return nil
	}
	return func(e *dump.Entry, s string) string {
		if e.Err != nil {
			return highlight(ansiRed, s)
		}
		switch e.Kind {
		case dump.KindCommand:
			return highlight(ansiGreen, s)
		case dump.KindReply:
			return highlight(ansiBlue, s)
		case dump.KindEvents:
			return highlight(ansiMagenta, s)
		}
		return s
	}
}
