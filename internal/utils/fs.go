package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirCheckResult represents the result of dir checks
type DirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists simply checks if a regular file exists
func FileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// SaveTOMLFile encodes data into filePath. The file is written next to its
// destination first and renamed, so readers never see half a config.
func SaveTOMLFile(data any, filePath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filePath), ".wordtrie-*.toml")
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filePath)
}

// GetAbsolutePath returns the absolute path of a file
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if !filepath.IsAbs(path) {
		if absPath, err := filepath.Abs(path); err == nil {
			return absPath
		}
	}
	return path
}

// GetExecutableDir returns the directory of the current executable,
// with symlinks resolved when possible.
func GetExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// CheckDirStatus creates dirPath when missing and tests that it is writable
func CheckDirStatus(dirPath string) DirCheckResult {
	result := DirCheckResult{}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		result.Error = err
		log.Debugf("Cannot create directory %s: %v", dirPath, err)
		return result
	}
	result.Exists = true
	result.Writable = testWriteAccess(dirPath)
	return result
}

// testWriteAccess tests if a directory can be written to
func testWriteAccess(dirPath string) bool {
	file, err := os.CreateTemp(dirPath, ".write_test")
	if err != nil {
		log.Debugf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(file.Name())
	return true
}
