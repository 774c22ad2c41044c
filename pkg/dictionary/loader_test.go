package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader("that 10\nwith 2.5\n\nmany 7\n"))
	require.NoError(t, err)
	assert.Equal(t, []trie.Entry{
		{Word: "that", Frequency: 10},
		{Word: "with", Frequency: 2.5},
		{Word: "many", Frequency: 7},
	}, entries)
}

func TestParseFormatError(t *testing.T) {
	_, err := Parse(strings.NewReader("that 10\n\nwith x\n"))
	require.Error(t, err)

	var fe *trie.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Line)
	assert.Equal(t, "with x", fe.Text)
}

func TestLoad(t *testing.T) {
	tr, err := Load("../../testdata/tiny_frequency.txt")
	require.NoError(t, err)
	assert.Equal(t, 30, tr.WordCount())

	_, err = Load("../../testdata/malformed_frequency.txt")
	var fe *trie.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Line)
	assert.Contains(t, err.Error(), "malformed_frequency.txt")

	_, err = Load("../../testdata/missing.txt")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderAvailable(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "tiny_frequency.txt", "ant 3\nbee 2\n")
	writeDict(t, dir, "frequency.txt", "cat 1\n")
	writeDict(t, dir, "notes.md", "not a dictionary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0755))

	l := NewLoader(dir)
	infos, err := l.Available()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "frequency.txt", infos[0].Name)
	assert.Equal(t, "tiny_frequency.txt", infos[1].Name)
	assert.False(t, infos[1].Loaded)

	_, err = l.Entries("tiny_frequency.txt")
	require.NoError(t, err)
	infos, err = l.Available()
	require.NoError(t, err)
	assert.True(t, infos[1].Loaded)
}

func TestLoaderHas(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "frequency.txt", "cat 1\n")
	l := NewLoader(dir)

	assert.True(t, l.Has("frequency.txt"))
	assert.False(t, l.Has("missing.txt"))
	assert.False(t, l.Has("../frequency.txt"))
	assert.False(t, l.Has(""))
	assert.False(t, l.Has("frequency"))
}

func TestLoaderBuildIsFresh(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "frequency.txt", "ant 3\nbee 2\nbear 5\n")
	l := NewLoader(dir)

	first, err := l.Build("frequency.txt")
	require.NoError(t, err)
	require.NoError(t, first.RemoveWord("bee"))
	assert.Equal(t, 2, first.WordCount())

	second, err := l.Build("frequency.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, second.WordCount())
	assert.Equal(t, []string{"ant", "bee", "bear"}, second.AllWords())

	stats := l.Stats()
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 1, stats.Loaded)
	assert.Equal(t, 3, stats.LoadedWords)
}

func TestLoaderUnknownAndEvict(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "frequency.txt", "ant 3\n")
	l := NewLoader(dir)

	_, err := l.Build("other.txt")
	assert.ErrorIs(t, err, ErrUnknownDictionary)

	assert.Error(t, l.Evict("frequency.txt"))
	_, err = l.Entries("frequency.txt")
	require.NoError(t, err)
	assert.NoError(t, l.Evict("frequency.txt"))
	assert.Equal(t, 0, l.Stats().Loaded)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name        string
		content     string
		wantErr     bool
		description string
	}{
		{"ok.txt", "\nthat 10\nwith\n", false, "first entry parses"},
		{"bad.txt", "that ten\n", true, "bad first entry"},
		{"small.txt", "a", true, "too small"},
		{"blank.txt", "\n\n\n\n", true, "no entries"},
		{"words.csv", "that 10\n", true, "wrong extension"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			path := writeDict(t, dir, tc.name, tc.content)
			err := Validate(path)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Error(t, Validate(filepath.Join(dir, "missing.txt")))
}
