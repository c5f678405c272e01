// Package ui is the terminal surface of the electiongw commands.
package ui

import "io"

// UI is everything a command prints or asks. TerminalUI renders to the
// terminal; RecordingUI captures calls for tests.
type UI interface {
	Info(format string, args ...any)
	// Success is green.
	Success(format string, args ...any)
	// Warn is yellow.
	Warn(format string, args ...any)
	// Error is red. It does not stop the command.
	Error(format string, args ...any)
	// Critical is bold, for things the user must not miss such as the hash
	// of a transaction that was just sent.
	Critical(format string, args ...any)

	// Section prints a titled separator.
	Section(title string)
	// KeyValue prints label/value rows with the values aligned.
	KeyValue(rows [][2]string)
	// Table prints a bordered table. headers may be empty.
	Table(headers []string, rows [][]string)

	// Spinner animates msg until the returned stop function is called.
	Spinner(msg string) func()

	// Confirm asks a yes/no question. An empty answer picks the default.
	Confirm(prompt string, defaultYes bool) bool
	// AskPassword reads a line without echoing it.
	AskPassword(prompt string) (string, error)

	// Indent returns a child UI one level deeper sharing the same streams.
	Indent() UI
	// Writer prefixes every line with the current indentation.
	Writer() io.Writer
}
