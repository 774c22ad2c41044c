// Package dictionary reads word/frequency listings and builds tries from
// them. Each listing is a text file with one "<word> <frequency>" pair per
// line; the order of the lines is the insertion order of the trie.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// ErrUnknownDictionary is returned for names that are not listings in the
// loader's data directory.
var ErrUnknownDictionary = errors.New("unknown dictionary")

// Loader serves the dictionaries found in one data directory. Parsed
// entries are cached per file; every Build returns a fresh trie so callers
// can mutate it freely.
type Loader struct {
	dataDir string
	entries map[string][]trie.Entry
	mu      sync.RWMutex
}

// Info describes a dictionary file in the data directory.
type Info struct {
	Name   string
	Path   string
	Size   int64
	Loaded bool
}

// LoaderStats provides statistics about the cached dictionaries
type LoaderStats struct {
	Available   int
	Loaded      int
	LoadedWords int
}

// NewLoader creates a loader for the listings in dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir: dataDir,
		entries: make(map[string][]trie.Entry),
	}
}

// Dir returns the data directory.
func (l *Loader) Dir() string {
	return l.dataDir
}

// Available scans the data directory for dictionary files, sorted by name.
func (l *Loader) Available() ([]Info, error) {
	pattern := filepath.Join(l.dataDir, "*"+TextExtension)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for dictionaries: %w", err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	infos := make([]Info, 0, len(files))
	for _, file := range files {
		stat, err := os.Stat(file)
		if err != nil || stat.IsDir() {
			continue
		}
		name := filepath.Base(file)
		_, loaded := l.entries[name]
		infos = append(infos, Info{
			Name:   name,
			Path:   file,
			Size:   stat.Size(),
			Loaded: loaded,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// Has reports whether name is a dictionary file in the data directory.
// Names with path components are never accepted.
func (l *Loader) Has(name string) bool {
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, TextExtension) {
		return false
	}
	stat, err := os.Stat(filepath.Join(l.dataDir, name))
	return err == nil && !stat.IsDir()
}

// Entries returns the parsed entries of name, reading the file on first
// use. The returned slice is shared and must not be modified.
func (l *Loader) Entries(name string) ([]trie.Entry, error) {
	l.mu.RLock()
	entries, ok := l.entries[name]
	l.mu.RUnlock()
	if ok {
		return entries, nil
	}

	if !l.Has(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDictionary, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// another caller may have loaded it meanwhile
	if entries, ok := l.entries[name]; ok {
		return entries, nil
	}

	path := filepath.Join(l.dataDir, name)
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.entries[name] = entries
	log.Debugf("Dictionary %s loaded: %d words", name, len(entries))
	return entries, nil
}

// Build returns a new trie populated from name.
func (l *Loader) Build(name string) (*trie.Trie, error) {
	entries, err := l.Entries(name)
	if err != nil {
		return nil, err
	}
	t, err := trie.FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}
	return t, nil
}

// Evict drops the cached entries of name.
func (l *Loader) Evict(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[name]; !ok {
		return fmt.Errorf("dictionary %s is not loaded", name)
	}
	delete(l.entries, name)
	log.Debugf("Evicted dictionary %s", name)
	return nil
}

// Stats returns current cache statistics.
func (l *Loader) Stats() LoaderStats {
	available, err := l.Available()
	if err != nil {
		log.Warnf("Failed to list dictionaries in %s: %v", l.dataDir, err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	words := 0
	for _, entries := range l.entries {
		words += len(entries)
	}
	return LoaderStats{
		Available:   len(available),
		Loaded:      len(l.entries),
		LoadedWords: words,
	}
}

// Load reads the listing at path into a new trie.
func Load(path string) (*trie.Trie, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return trie.FromEntries(entries)
}

// ReadFile parses the listing at path. Format errors are wrapped with the
// file name and stay reachable through errors.As.
func ReadFile(path string) ([]trie.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	entries, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse reads "<word> <frequency>" lines from r. Blank lines are ignored;
// any other malformed line fails the parse with a *trie.FormatError.
func Parse(r io.Reader) ([]trie.Entry, error) {
	var entries []trie.Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := trie.ParseEntry(line)
		if err != nil {
			var fe *trie.FormatError
			if errors.As(err, &fe) {
				fe.Line = lineNo
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return entries, nil
}
