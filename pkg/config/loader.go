package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG config directory.
const AppName = "webtree"

// DefaultConfigFile is looked up in the current and home directories.
const DefaultConfigFile = ".webtree.yaml"

// XDGConfigDir returns the XDG config directory for webtree
// (~/.config/webtree on Linux).
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindConfigFile returns the first existing config file among:
//  1. configPath, when given
//  2. .webtree.yaml in the current directory
//  3. config.yaml in the XDG config directory
//  4. .webtree.yaml in the home directory
//
// It returns "" when none exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Marshal renders cfg as YAML in the layout the config file expects.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
