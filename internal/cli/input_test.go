package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
	lipgloss.SetColorProfile(termenv.Ascii)
}

func run(t *testing.T, noFilter bool, script ...string) string {
	t.Helper()
	tr, err := dictionary.Load("../../testdata/tiny_frequency.txt")
	require.NoError(t, err)

	var out bytes.Buffer
	h := NewInputHandler(suggest.NewCompleter(tr, 16, 64), 1, 60, 3, noFilter).
		WithIO(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func TestCompletion(t *testing.T) {
	out := run(t, false, "ba")
	assert.Contains(t, out, "30 words loaded")
	assert.Contains(t, out, " 1. back")
	assert.Contains(t, out, "(freq: 740,270)")
	assert.Contains(t, out, "(freq: 66,981.4)")
	assert.NotContains(t, out, "based")

	out = run(t, false, "pre qz")
	assert.Contains(t, out, "No results for 'qz'.")
}

func TestFiltering(t *testing.T) {
	tests := []struct {
		input    string
		noFilter bool
		want     string
	}{
		{"123", false, "No results for '123'."},
		{"aaa", false, "No results for 'aaa'."},
		{"b@", false, "No results for 'b@'."},
		{"123", true, "No results for '123'."},
		{"ba", true, "1. back"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Contains(t, run(t, tt.noFilter, tt.input), tt.want)
		})
	}
}

func TestWordCommands(t *testing.T) {
	out := run(t, false,
		"has bank",
		"has ba",
		"add bazaar 1520.5",
		"has bazaar",
		"add bogus -3",
		"add bogus x",
		"rm bank",
		"rm bank",
		"count",
	)
	assert.Contains(t, out, "'bank' is in dictionary (freq: 66,981.4).")
	assert.Contains(t, out, "'ba' is not in dictionary.")
	assert.Contains(t, out, "'bazaar' added (freq: 1,520.5).")
	assert.Contains(t, out, "'bazaar' is in dictionary (freq: 1,520.5).")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "invalid frequency 'x'")
	assert.Contains(t, out, "'bank' was removed from dictionary.")
	assert.Contains(t, out, "'bank' is not in dictionary.")
	assert.Contains(t, out, "30 words")
}

func TestSearchCommands(t *testing.T) {
	out := run(t, false, "suf ase", "fix cxt", "fix zzzq", "list 2")
	assert.Contains(t, out, "base\n")
	assert.Contains(t, out, "cat\ncot\ncut\n")
	assert.Contains(t, out, "No suggestions available for 'zzzq'.")
	assert.Contains(t, out, "baby\nback\n2 words")
}

func TestUsage(t *testing.T) {
	out := run(t, false, "help", "has", "launch the rockets", "quit", "has bank")
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "usage: has <word>")
	assert.Contains(t, out, "unknown command 'launch'")
	assert.NotContains(t, out, "'bank' is in dictionary")
}
