package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/simonhull/firebird-suite/nest/generator"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetOutput redirects all messages to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Writer returns the writer messages currently go to.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func printLine(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation.
func Success(msg string) {
	printLine(successStyle.Render("✔ " + msg))
}

// Error prints a failure that needs the user's attention.
func Error(msg string) {
	printLine(errorStyle.Render("✘ " + msg))
}

// Warn prints something that did not stop the run but may matter later.
func Warn(msg string) {
	printLine(warnStyle.Render("! " + msg))
}

// Info prints a status update.
func Info(msg string) {
	printLine(infoStyle.Render(msg))
}

// Step prints an indented sub-item, e.g. a next step or a written file.
func Step(msg string) {
	printLine(stepStyle.Render("   " + msg))
}

// Verbose prints msg only in verbose mode.
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		printLine(stepStyle.Render("· " + msg))
	}
}

// Check prints one precondition report line, e.g.
//
//	[CHECK] Sandbox/Src/Main.cpp => Conflict
func Check(r generator.PathResult) {
	status := r.Status.String()
	switch r.Status {
	case generator.StatusOK:
		status = successStyle.Render(status)
	case generator.StatusConflict:
		status = errorStyle.Render(status)
	default:
		status = warnStyle.Render(status)
		if r.Err != nil {
			status += stepStyle.Render(fmt.Sprintf(" (%v)", r.Err))
		}
	}
	printLine(fmt.Sprintf("[CHECK] %s => %s", r.Path, status))
}
