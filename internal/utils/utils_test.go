package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFrequency(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{740270, "740,270"},
		{66981.4, "66,981.4"},
		{1135262, "1,135,262"},
		{118.2, "118.2"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatFrequency(tc.in), "%v", tc.in)
	}
}

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		in   string
		want bool
	}{
		{"hello", true},
		{"don't", true},
		{"well-known", true},
		{"", false},
		{"1234", false},
		{"he llo", false},
		{"a@b", false},
		{"zzz", false},
		{"zz", true},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, IsValidInput(tc.in), tc.in)
	}
}

func TestIsValidWord(t *testing.T) {
	assert.True(t, IsValidWord("moonwalk"))
	assert.True(t, IsValidWord("c++"))
	assert.False(t, IsValidWord(""))
	assert.False(t, IsValidWord("two words"))
	assert.False(t, IsValidWord("tab\there"))
}

func TestTOMLRoundTrip(t *testing.T) {
	type section struct {
		Name  string `toml:"name"`
		Limit int    `toml:"limit"`
		On    bool   `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, SaveTOMLFile(doc{Main: section{Name: "x", Limit: 7, On: true}}, path))
	assert.True(t, FileExists(path))

	var got doc
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, 7, got.Main.Limit)

	raw, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(raw, "main")
	require.True(t, ok)

	limit, ok := ExtractInt(sec, "limit")
	assert.True(t, ok)
	assert.Equal(t, 7, limit)
	name, ok := ExtractString(sec, "name")
	assert.True(t, ok)
	assert.Equal(t, "x", name)
	on, ok := ExtractBool(sec, "on")
	assert.True(t, ok)
	assert.True(t, on)
	_, ok = ExtractInt(sec, "name")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "write probe must be cleaned up")
}

func TestDataDirCandidates(t *testing.T) {
	dir := t.TempDir()
	pr := &PathResolver{executableDir: dir, homeDir: dir, configDir: filepath.Join(dir, "cfg")}

	_, err := pr.GetDataDir(filepath.Join(dir, "empty"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "frequency.txt"), []byte("a 1\n"), 0644))

	got, err := pr.GetDataDir("missing")
	require.NoError(t, err)
	assert.Equal(t, dataDir, got)

	got, err = pr.GetDataDir(dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, got)
}
