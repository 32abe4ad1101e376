package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	isatty "github.com/mattn/go-isatty"
)

var (
	styleArrow    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	stylePath     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	styleWarnTxt  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleNote     = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Faint(true)
	styleMigrated = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleClean    = lipgloss.NewStyle().Faint(true)
	styleDiffAdd  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleDiffDel  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	styleDiffHunk = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	colorEnabled  = true
)

// InitConsole configures color output based on noColor flag and TTY detection
func InitConsole(noColor bool) {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	colorEnabled = tty && !noColor
}

func r(st lipgloss.Style, s string) string {
	if !colorEnabled {
		return s
	}
	return st.Render(s)
}

// FileHeader returns the progress line printed before a file is processed.
func FileHeader(i, n int, path string) string {
	return fmt.Sprintf("%s [%d/%d] %s\n", r(styleArrow, "→"), i, n, r(stylePath, path))
}

// Warnf returns a single-line colored warning string with a standard prefix.
func Warnf(format string, a ...interface{}) string {
	msg := fmt.Sprintf(format, a...)
	return r(styleWarnLbl, "Warning:") + " " + r(styleWarnTxt, msg)
}

// Notef returns a faint informational line.
func Notef(format string, a ...interface{}) string {
	return r(styleNote, fmt.Sprintf(format, a...))
}

// Status summarizes the rules applied to one file.
func Status(applied []string) string {
	if len(applied) == 0 {
		return r(styleClean, "  already up to date")
	}
	return r(styleMigrated, fmt.Sprintf("  migrated: %s", strings.Join(applied, ", ")))
}

// ColorDiff colors the +/- and hunk lines of a unified diff.
func ColorDiff(diff string) string {
	if !colorEnabled || diff == "" {
		return diff
	}
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"):
			b.WriteString(r(stylePath, strings.TrimSuffix(ln, "\n")))
		case strings.HasPrefix(ln, "@@"):
			b.WriteString(r(styleDiffHunk, strings.TrimSuffix(ln, "\n")))
		case strings.HasPrefix(ln, "+"):
			b.WriteString(r(styleDiffAdd, strings.TrimSuffix(ln, "\n")))
		case strings.HasPrefix(ln, "-"):
			b.WriteString(r(styleDiffDel, strings.TrimSuffix(ln, "\n")))
		default:
			b.WriteString(strings.TrimSuffix(ln, "\n"))
		}
		if strings.HasSuffix(ln, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ShortError condenses a multi-line error (yaml errors span lines) into its last meaningful line.
func ShortError(err error) string {
	if err == nil {
		return ""
	}
	var candidate string
	for _, ln := range strings.Split(err.Error(), "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			candidate = t
		}
	}
	return candidate
}
