package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

const (
	// TextExtension is the extension of dictionary listings.
	TextExtension = ".txt"

	// minTextSize is the smallest possible listing: "a 1".
	minTextSize = 3
)

// Validate checks that filename looks like a dictionary listing without
// reading all of it: the extension, the size and the first entry.
func Validate(filename string) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory", filename)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != TextExtension {
		return fmt.Errorf("file %s has invalid extension %s (expected: %s)", filename, ext, TextExtension)
	}

	if fileInfo.Size() < minTextSize {
		return fmt.Errorf("file %s is too small (%d bytes, minimum: %d bytes)",
			filename, fileInfo.Size(), minTextSize)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := trie.ParseEntry(line); err != nil {
			return fmt.Errorf("%s: line %d: %w", filename, lineNo, err)
		}
		log.Debugf("Text file %s validated", filename)
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", filename, err)
	}
	return fmt.Errorf("file %s has no entries", filename)
}
