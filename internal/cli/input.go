// Package cli is an interactive shell over the dictionary, for debugging
// and trying out queries by hand.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const helpText = `commands:
  <prefix>          complete prefix
  pre <prefix>      complete prefix
  suf <suffix>      words ending in suffix
  fix <word>        spelling suggestions
  has <word>        check a word
  add <word> [freq] store a word (freq defaults to 1)
  rm <word>         remove a word
  count             number of words
  list [n]          words in alphabetical order
  help              this text
  quit              leave`

var (
	wordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// InputHandler reads commands line by line and prints the answers. Prefix
// length bounds and the result limit come from the caller; input filtering
// rejects queries that cannot match a word unless noFilter is set.
type InputHandler struct {
	completer       suggest.ICompleter
	in              io.Reader
	out             io.Writer
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
	noFilter        bool
}

// NewInputHandler reads from stdin and writes to stdout.
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		in:              os.Stdin,
		out:             os.Stdout,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// WithIO swaps the input and output streams.
func (h *InputHandler) WithIO(in io.Reader, out io.Writer) *InputHandler {
	h.in = in
	h.out = out
	return h
}

// Start runs the loop until quit or the end of input.
func (h *InputHandler) Start() error {
	fmt.Fprintf(h.out, "wordtrie shell, %d words loaded. type 'help' for commands.\n", h.completer.Count())
	scanner := bufio.NewScanner(h.in)

	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.Execute(line)
	}
}

// Execute runs a single command line. A lone word that is not a command
// is completed as a prefix.
func (h *InputHandler) Execute(line string) {
	h.requestCount++
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(h.out, helpText)
	case "count":
		fmt.Fprintf(h.out, "%s words\n", utils.FormatFrequency(float64(h.completer.Count())))
	case "list":
		h.list(args)
	case "pre":
		h.withArg(cmd, args, h.complete)
	case "suf":
		h.withArg(cmd, args, h.suffix)
	case "fix":
		h.withArg(cmd, args, h.correct)
	case "has":
		h.withArg(cmd, args, h.has)
	case "rm":
		h.withArg(cmd, args, h.remove)
	case "add":
		h.add(args)
	default:
		if len(args) > 0 {
			fmt.Fprintf(h.out, "unknown command '%s', try 'help'\n", cmd)
			return
		}
		h.complete(cmd)
	}
}

func (h *InputHandler) withArg(cmd string, args []string, fn func(string)) {
	if len(args) != 1 {
		fmt.Fprintf(h.out, "usage: %s <word>\n", cmd)
		return
	}
	fn(args[0])
}

// accept applies input filtering, printing the miss itself.
func (h *InputHandler) accept(query string) bool {
	if h.noFilter || utils.IsValidInput(query) {
		return true
	}
	log.Debugf("Filtered input '%s'", query)
	fmt.Fprintf(h.out, "No results for '%s'.\n", query)
	return false
}

func (h *InputHandler) complete(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		fmt.Fprintf(h.out, "prefix too short: '%s'\n", prefix)
		return
	}
	if n > h.maxPrefixLength {
		fmt.Fprintf(h.out, "prefix too long: '%s'\n", prefix)
		return
	}
	if !h.accept(prefix) {
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "No results for '%s'.\n", prefix)
		return
	}
	for i, s := range suggestions {
		pad := strings.Repeat(" ", max(0, 24-utf8.RuneCountInString(s.Word)))
		fmt.Fprintf(h.out, "%2d. %s%s %s\n", i+1, wordStyle.Render(s.Word), pad,
			dimStyle.Render("(freq: "+utils.FormatFrequency(s.Frequency)+")"))
	}
}

func (h *InputHandler) suffix(suffix string) {
	if !h.accept(suffix) {
		return
	}
	h.printWords(h.completer.Suffix(suffix), fmt.Sprintf("No results for '%s'.", suffix))
}

func (h *InputHandler) correct(word string) {
	if !h.accept(word) {
		return
	}
	h.printWords(h.completer.Correct(word), fmt.Sprintf("No suggestions available for '%s'.", word))
}

func (h *InputHandler) has(word string) {
	freq, err := h.completer.Frequency(word)
	if err != nil {
		fmt.Fprintf(h.out, "'%s' is not in dictionary.\n", word)
		return
	}
	fmt.Fprintf(h.out, "'%s' is in dictionary (freq: %s).\n", word, utils.FormatFrequency(freq))
}

func (h *InputHandler) remove(word string) {
	err := h.completer.Remove(word)
	switch {
	case errors.Is(err, trie.ErrNotFound):
		fmt.Fprintf(h.out, "'%s' is not in dictionary.\n", word)
	case err != nil:
		fmt.Fprintf(h.out, "error: %v\n", err)
	default:
		fmt.Fprintf(h.out, "'%s' was removed from dictionary.\n", word)
	}
}

func (h *InputHandler) add(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(h.out, "usage: add <word> [freq]")
		return
	}
	word := args[0]
	if !utils.IsValidWord(word) {
		fmt.Fprintf(h.out, "invalid word '%s'\n", word)
		return
	}

	freq := 1.0
	if len(args) == 2 {
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(h.out, "invalid frequency '%s'\n", args[1])
			return
		}
		freq = f
	}

	if err := h.completer.Add(word, freq); err != nil {
		fmt.Fprintf(h.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(h.out, "'%s' added (freq: %s).\n", strings.ToLower(word), utils.FormatFrequency(freq))
}

func (h *InputHandler) list(args []string) {
	words := h.completer.Words(true)
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			fmt.Fprintf(h.out, "invalid count '%s'\n", args[0])
			return
		}
		if n < len(words) {
			words = words[:n]
		}
	}
	h.printWords(words, "dictionary is empty.")
}

func (h *InputHandler) printWords(words []string, empty string) {
	if len(words) == 0 {
		fmt.Fprintln(h.out, empty)
		return
	}
	for _, w := range words {
		fmt.Fprintln(h.out, wordStyle.Render(w))
	}
	fmt.Fprintln(h.out, dimStyle.Render(fmt.Sprintf("%d words", len(words))))
}
