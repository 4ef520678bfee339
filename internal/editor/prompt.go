package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrSessionExit means the operator asked to leave the editor. It is
// recognized at every prompt and unwinds the session cleanly.
var ErrSessionExit = errors.New("editor: session exit requested")

// Prompter reads one line of operator input for a prompt.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// IOPrompter reads prompts from a plain reader. It backs non-interactive
// use and tests.
type IOPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewIOPrompter(in io.Reader, out io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(in), out: out}
}

func (p *IOPrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrSessionExit
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// LinerPrompter wraps a liner terminal for interactive sessions with line
// editing and history. Callers must Close it to restore the terminal.
type LinerPrompter struct {
	state *liner.State
}

func NewLinerPrompter() *LinerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerPrompter{state: state}
}

func (p *LinerPrompter) Ask(prompt string) (string, error) {
	line, err := p.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrSessionExit
		}
		return "", err
	}
	if line != "" {
		p.state.AppendHistory(line)
	}
	return line, nil
}

func (p *LinerPrompter) Close() error {
	return p.state.Close()
}
