package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-delve/liner"

	"github.com/go-delve/jdwp/pkg/config"
	"github.com/go-delve/jdwp/pkg/jdwp"
)

const historyFile string = ".jdwpdump_history"

// Term represents the interactive encoder.
type Term struct {
	conf   *config.Config
	codec  *jdwp.Codec
	prompt string
	line   *liner.State
	cmds   *Commands
	stdout io.Writer
	color  bool

	nextID uint32
	last   jdwp.Request
}

// New returns a new Term encoding with codec.
func New(conf *config.Config, codec *jdwp.Codec) *Term {
	if conf == nil {
		conf = &config.Config{}
	}
	t := newTerm(conf, codec, ColorableStdout(), ShouldColor(conf.GetColor(), os.Stdout))
	t.line = liner.NewLiner()
	return t
}

func newTerm(conf *config.Config, codec *jdwp.Codec, stdout io.Writer, color bool) *Term {
	cmds := DebugCommands()
	if conf.Aliases != nil {
		cmds.Merge(conf.Aliases)
	}
	return &Term{
		conf:   conf,
		codec:  codec,
		prompt: "(jdwp) ",
		cmds:   cmds,
		stdout: stdout,
		color:  color,
		nextID: 1,
	}
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	if t.line != nil {
		t.line.Close()
	}
}

// Run begins running the encoder in the terminal.
func (t *Term) Run() (int, error) {
	defer t.Close()

	t.line.SetCompleter(func(line string) []string {
		if strings.Contains(line, " ") {
			return nil
		}
		return t.cmds.complete(line)
	})
	t.line.SetCtrlCAborts(true)

	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Printf("Unable to load history file: %v.", err)
	}

	f, err := os.Open(fullHistoryFile)
	if err != nil {
		f, err = os.Create(fullHistoryFile)
		if err != nil {
			fmt.Printf("Unable to open history file: %v. History will not be saved for this session.", err)
		}
	}
	if f != nil {
		t.line.ReadHistory(f)
		f.Close()
	}
	fmt.Fprintln(t.stdout, "Type 'help' for list of commands.")

	for {
		cmdstr, err := t.promptForInput()
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(t.stdout, "exit")
				return t.handleExit()
			}
			return 1, fmt.Errorf("prompt for input failed: %v", err)
		}

		if err := t.Call(cmdstr); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return t.handleExit()
			}
			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

// Call executes one line of input.
func (t *Term) Call(cmdstr string) error {
	return t.cmds.Call(cmdstr, t)
}

// Println prints a line to the terminal.
func (t *Term) Println(str string) {
	fmt.Fprintln(t.stdout, str)
}

func (t *Term) highlight(color int, s string) string {
	if !t.color {
		return s
	}
	return highlight(color, s)
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}

	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}

	return l, nil
}

func (t *Term) handleExit() (int, error) {
	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Println("Error saving history file:", err)
		return 0, nil
	}
	if f, err := os.OpenFile(fullHistoryFile, os.O_RDWR|os.O_TRUNC, 0666); err == nil {
		_, err = t.line.WriteHistory(f)
		if err != nil {
			fmt.Println("readline history error:", err)
		}
		f.Close()
	}
	return 0, nil
}
