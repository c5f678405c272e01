package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
	promptPrefix = "> "
)

type TerminalUI struct {
	level int
	out   io.Writer
	in    *bufio.Reader
	au    aurora.Aurora
	tty   bool
}

// NewTerminalUI writes to stdout and reads from stdin. Colours and the
// spinner are only used when stdout is a terminal.
func NewTerminalUI() *TerminalUI {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	return &TerminalUI{
		out: os.Stdout,
		in:  bufio.NewReader(os.Stdin),
		au:  aurora.NewAurora(tty),
		tty: tty,
	}
}

func (u *TerminalUI) prefix() string {
	return strings.Repeat(indentUnit, u.level)
}

func (u *TerminalUI) line(s string) {
	fmt.Fprintf(u.out, "%s%s\n", u.prefix(), s)
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.line(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.line(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.line(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.line(u.au.Red(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Critical(format string, args ...any) {
	u.line(u.au.Bold(fmt.Sprintf(format, args...)).String())
}

// Section prints "===== title =====" between blank lines.
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := max(sectionWidth-runewidth.StringWidth(titled), 6)
	left := bars / 2
	fmt.Fprintf(u.out, "\n%s%s%s%s\n\n", u.prefix(),
		strings.Repeat("=", left), titled, strings.Repeat("=", bars-left))
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r[0]))
	}
	for _, r := range rows {
		u.line(runewidth.FillRight(r[0], width) + "  " + r[1])
	}
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		ncols = max(ncols, len(r))
	}
	if ncols == 0 {
		return
	}
	widths := make([]int, ncols)
	for _, r := range append([][]string{headers}, rows...) {
		for i, cell := range r {
			widths[i] = max(widths[i], visibleWidth(cell))
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	edge := func(left, mid, right string) string {
		parts := make([]string, ncols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return style.Render(left + strings.Join(parts, mid) + right)
	}
	row := func(cells []string) string {
		parts := make([]string, ncols)
		for i := range parts {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = " " + cell + strings.Repeat(" ", widths[i]-visibleWidth(cell)) + " "
		}
		bar := style.Render("│")
		return bar + strings.Join(parts, bar) + bar
	}

	u.line(edge("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.line(row(headers))
		u.line(edge("├", "┼", "┤"))
	}
	for _, r := range rows {
		u.line(row(r))
	}
	u.line(edge("└", "┴", "┘"))
}

func (u *TerminalUI) Spinner(msg string) func() {
	if !u.tty {
		u.line(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.prefix()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner leaves the cursor on its cleared line
		fmt.Fprintln(u.out)
	}
}

func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	options := "[Y/n]"
	if !defaultYes {
		options = "[y/N]"
	}
	u.Info("%s %s", prompt, options)
	for {
		fmt.Fprintf(u.out, "%s%s", u.prefix(), promptPrefix)
		text, err := u.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(text))
		switch {
		case answer == "":
			if err != nil {
				return false
			}
			return defaultYes
		case answer == "y" || answer == "yes":
			return true
		case answer == "n" || answer == "no":
			return false
		}
		u.Error("please enter y or n")
	}
}

func (u *TerminalUI) AskPassword(prompt string) (string, error) {
	fmt.Fprintf(u.out, "%s%s: ", u.prefix(), prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		text, err := u.in.ReadString('\n')
		if err != nil && text == "" {
			return "", fmt.Errorf("couldn't read password: %w", err)
		}
		return strings.TrimRight(text, "\r\n"), nil
	}
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(u.out)
	if err != nil {
		return "", fmt.Errorf("couldn't read password: %w", err)
	}
	return string(pw), nil
}

func (u *TerminalUI) Indent() UI {
	child := *u
	child.level++
	return &child
}

func (u *TerminalUI) Writer() io.Writer {
	if u.level == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.prefix())
}
