package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry is one recorded UI call.
type Entry struct {
	Method string
	Value  string
}

// state is shared by a RecordingUI and its Indent children so scripted
// answers are consumed in order across nesting.
type state struct {
	entries []Entry
	answers []string
	next    int
	buf     bytes.Buffer
}

// RecordingUI captures every call for assertions and serves scripted
// answers to Confirm and AskPassword. Running out of answers panics.
type RecordingUI struct {
	s     *state
	level int
}

func NewRecordingUI(answers ...string) *RecordingUI {
	return &RecordingUI{s: &state{answers: answers}}
}

func (r *RecordingUI) record(method, value string) {
	r.s.entries = append(r.s.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) answer(caller string) string {
	if r.s.next >= len(r.s.answers) {
		panic(fmt.Sprintf("RecordingUI: no scripted answer left for %s", caller))
	}
	a := r.s.answers[r.s.next]
	r.s.next++
	return a
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+"="+row[1])
	}
}

func (r *RecordingUI) Table(headers []string, rows [][]string) {
	if len(headers) > 0 {
		r.record("TableHeader", strings.Join(headers, "|"))
	}
	for _, row := range rows {
		r.record("TableRow", strings.Join(row, "|"))
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	a := strings.ToLower(strings.TrimSpace(r.answer("Confirm")))
	if a == "" {
		return defaultYes
	}
	return a == "y" || a == "yes"
}

func (r *RecordingUI) AskPassword(prompt string) (string, error) {
	r.record("AskPassword", prompt)
	return r.answer("AskPassword"), nil
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{s: r.s, level: r.level + 1}
}

func (r *RecordingUI) Writer() io.Writer {
	return &r.s.buf
}

func (r *RecordingUI) Entries() []Entry {
	return r.s.entries
}

// Values returns the values recorded by method, in order.
func (r *RecordingUI) Values(method string) []string {
	var out []string
	for _, e := range r.s.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr, ignoring
// case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.s.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}

// Output is everything written to Writer.
func (r *RecordingUI) Output() string {
	return r.s.buf.String()
}
