package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"
)

// pagerThreshold is the diff length above which an interactive pager is used.
const pagerThreshold = 20

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConflictDiff returns a unified diff between the file that blocks path and
// the content the plan would have written there.
func ConflictDiff(plan *Plan, path string) (string, error) {
	entry, ok := plan.Entry(path)
	if !ok {
		return "", fmt.Errorf("%s is not part of the plan", path)
	}

	existing, err := os.ReadFile(plan.Abs(path))
	if err != nil {
		return "", fmt.Errorf("reading existing %s: %w", path, err)
	}

	if isBinary(existing) {
		return fmt.Sprintf("Binary file %s differs from generated content\n", path), nil
	}
	if bytes.Equal(existing, entry.Content) {
		return fmt.Sprintf("%s is identical to the generated content\n", path), nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(existing)),
		B:        difflib.SplitLines(string(entry.Content)),
		FromFile: path + " (existing)",
		ToFile:   path + " (generated)",
		Context:  3,
	})
}

// ShowDiff prints diff to w. Long diffs are shown in a scrollable pager when
// stdout is a terminal; otherwise lines are colored and printed inline.
func ShowDiff(w io.Writer, path, diff string) error {
	if strings.Count(diff, "\n") > pagerThreshold && term.IsTerminal(int(os.Stdout.Fd())) {
		p := tea.NewProgram(newDiffViewerModel(path, colorizeDiff(diff)), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to show diff: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprint(w, colorizeDiff(diff))
	return err
}

func colorizeDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		trimmed := strings.TrimRight(line, "\n")
		nl := line[len(trimmed):]
		switch {
		case strings.HasPrefix(trimmed, "+++"), strings.HasPrefix(trimmed, "---"):
			b.WriteString(trimmed)
		case strings.HasPrefix(trimmed, "@@"):
			b.WriteString(hunkStyle.Render(trimmed))
		case strings.HasPrefix(trimmed, "+"):
			b.WriteString(addedStyle.Render(trimmed))
		case strings.HasPrefix(trimmed, "-"):
			b.WriteString(removedStyle.Render(trimmed))
		default:
			b.WriteString(trimmed)
		}
		b.WriteString(nl)
	}
	return b.String()
}

// isBinary uses the same heuristic as git: a NUL byte in the first 8000 bytes.
func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// diffViewerModel is the BubbleTea model for paging long diffs.
type diffViewerModel struct {
	path     string
	diff     string
	viewport viewport.Model
	ready    bool
}

func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{path: path, diff: diff}
}

func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// header and footer take one line each
		height := msg.Height - 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := borderStyle.Render(fmt.Sprintf("─ %s (existing vs generated) ", m.path))
	footer := borderStyle.Render(fmt.Sprintf("─ %3.f%%  [↑/↓] scroll  [q] quit ", m.viewport.ScrollPercent()*100))
	return header + "\n" + m.viewport.View() + "\n" + footer
}
