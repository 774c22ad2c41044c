/*
Package config manages the TOML config for wordtrie.

Values are resolved in three layers: the builtin defaults, the TOML file,
then command line flags (applied by the caller). A file with mistyped values
is recovered key by key, so one bad entry never discards the rest.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Web    WebConfig    `toml:"web"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server and completion options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
	CacheSize    int `toml:"cache_size"`
}

// DictConfig selects the dictionary listings.
type DictConfig struct {
	DataDir string `toml:"data_dir"`
	Default string `toml:"default"`
}

// WebConfig holds the HTTP front end options.
type WebConfig struct {
	Addr       string `toml:"addr"`
	CookieName string `toml:"cookie_name"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			MinPrefix:    1,
			MaxPrefix:    60,
			CacheSize:    2048,
		},
		Dict: DictConfig{
			DataDir: "data",
			Default: "frequency.txt",
		},
		Web: WebConfig{
			Addr:       "127.0.0.1:8080",
			CookieName: "wordtrie_session",
		},
		CLI: CliConfig{
			DefaultLimit:    10,
			DefaultNoFilter: false,
		},
	}
}

// GetConfigDir returns ~/.config/wordtrie when writable, else the
// executable dir.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		primaryPath := filepath.Join(homeDir, ".config", "wordtrie")
		if result := utils.CheckDirStatus(primaryPath); result.Writable {
			return primaryPath, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}

	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return config, nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, recovering what it can from a file
// that does not decode cleanly.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, config.Validate()
}

// tryPartialParse picks the well-typed keys out of configPath
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "web"); ok {
		extractWebConfig(section, &config.Web)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, config.Validate()
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "data_dir"); ok {
		dict.DataDir = val
	}
	if val, ok := utils.ExtractString(data, "default"); ok {
		dict.Default = val
	}
}

func extractWebConfig(data map[string]any, web *WebConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		web.Addr = val
	}
	if val, ok := utils.ExtractString(data, "cookie_name"); ok {
		web.CookieName = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
