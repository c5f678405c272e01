package ui

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/assert"
)

func plainUI(input string) (*TerminalUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &TerminalUI{
		out: out,
		in:  bufio.NewReader(strings.NewReader(input)),
		au:  aurora.NewAurora(false),
	}, out
}

func TestTableAlignsColumns(t *testing.T) {
	u, out := plainUI("")
	u.Table([]string{"ID", "NAME"}, [][]string{{"1", "Alice"}, {"10", "Bo"}})
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[1], "│ ID │ NAME  │")
	assert.Contains(t, lines[3], "│ 1  │ Alice │")
	assert.Contains(t, lines[4], "│ 10 │ Bo    │")
}

func TestKeyValueAndIndent(t *testing.T) {
	u, out := plainUI("")
	u.Indent().KeyValue([][2]string{{"Name", "Alice"}, {"Votes", "3"}})
	assert.Equal(t, "  Name   Alice\n  Votes  3\n", out.String())
}

func TestConfirm(t *testing.T) {
	u, out := plainUI("maybe\ny\n\n")
	assert.True(t, u.Confirm("Vote?", false))
	assert.Contains(t, out.String(), "please enter y or n")
	assert.True(t, u.Confirm("Again?", true))
	assert.False(t, u.Confirm("EOF?", true), "eof declines")
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI("n", "secret")
	r.Indent().Info("hello %s", "there")
	assert.False(t, r.Confirm("Sure?", true))
	pw, err := r.AskPassword("Password")
	assert.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Equal(t, []string{"hello there"}, r.Values("Info"))
	assert.True(t, r.HasMessage("HELLO"))
	assert.Panics(t, func() { r.Confirm("More?", true) })
}
