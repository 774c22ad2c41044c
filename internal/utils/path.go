package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

const appDirName = "wordtrie"

// PathResolver finds the data and config directories relative to the
// running binary, the working directory and the user's config dir.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver determines the executable location and config dir
func NewPathResolver() (*PathResolver, error) {
	execDir, err := GetExecutableDir()
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: execDir,
		homeDir:       homeDir,
		configDir:     configDirFor(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, pr.configDir)
	return pr, nil
}

// configDirFor returns the platform config directory for the app
func configDirFor(homeDir string) string {
	switch runtime.GOOS {
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, appDirName)
		}
		return filepath.Join(homeDir, ".config", appDirName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", appDirName)
	default:
		return filepath.Join(homeDir, ".config", appDirName)
	}
}

// GetDataDir resolves the directory holding the dictionary listings.
// Candidates, in order: the path itself when absolute, relative to the
// executable, relative to the working directory, then data/ next to the
// executable, its parent and the config dir. The first directory holding
// at least one *.txt listing wins.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	candidates := pr.dataDirCandidates(userSpecifiedPath)

	for _, path := range candidates {
		if isValidDataDir(path) {
			log.Debugf("Found valid data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}

	return "", &os.PathError{Op: "resolve", Path: userSpecifiedPath, Err: os.ErrNotExist}
}

func (pr *PathResolver) dataDirCandidates(userSpecifiedPath string) []string {
	if filepath.IsAbs(userSpecifiedPath) {
		return []string{userSpecifiedPath}
	}

	candidates := []string{filepath.Join(pr.executableDir, userSpecifiedPath)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// isValidDataDir checks if a directory contains at least one listing
func isValidDataDir(path string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(path, "*.txt"))
	return err == nil && len(matches) > 0
}
