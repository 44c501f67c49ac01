// Package input asks the user for values when they were not given on the
// command line.
//
//	name := input.PromptValid("Project name", "", project.ValidateName)
//	if !input.Confirm("Write 15 files?", true) { ... }
//
// Callers decide whether to prompt at all; IsInteractive reports whether
// stdin is a terminal.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// maxAttempts bounds how often PromptValid asks again after invalid input.
const maxAttempts = 3

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over in and out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

var std = NewPrompter(os.Stdin, os.Stdout)

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompt asks on stdin. See Prompter.Prompt.
func Prompt(message, defaultValue string) string { return std.Prompt(message, defaultValue) }

// PromptValid asks on stdin. See Prompter.PromptValid.
func PromptValid(message, defaultValue string, validate func(string) error) (string, error) {
	return std.PromptValid(message, defaultValue, validate)
}

// Confirm asks on stdin. See Prompter.Confirm.
func Confirm(message string, defaultYes bool) bool { return std.Confirm(message, defaultYes) }

// Prompt asks for text input. An empty answer or a read error returns
// defaultValue.
//
//	Project name (Sandbox): _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, err := p.in.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if answer == "" || (err != nil && err != io.EOF) {
		return defaultValue
	}
	return answer
}

// PromptValid asks until validate accepts the answer, giving up after a
// few attempts with the last validation error.
func (p *Prompter) PromptValid(message, defaultValue string, validate func(string) error) (string, error) {
	var err error
	for i := 0; i < maxAttempts; i++ {
		answer := p.Prompt(message, defaultValue)
		if err = validate(answer); err == nil {
			return answer, nil
		}
		fmt.Fprintln(p.out, errStyle.Render(err.Error()))
	}
	return "", err
}

// Confirm asks a yes/no question. y and yes (any case) mean yes; an empty
// answer returns defaultYes.
//
//	Write 15 files? [Y/n]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, err := p.in.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" || (err != nil && err != io.EOF) {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}
