// Package config loads renderer configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2img/internal/fileutil"
	"github.com/alnah/go-md2img/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// appDirName is the subdirectory under the user config dir searched
// for named configs.
const appDirName = "go-md2img"

// Config holds all configuration for the rendering CLI.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Backend BackendConfig `yaml:"backend"`
	Output  OutputConfig  `yaml:"output"`
}

// RenderConfig defines the mode/threshold policy.
type RenderConfig struct {
	Mode      string `yaml:"mode"`      // "plain" or "rendered" (default: plain)
	Threshold int    `yaml:"threshold"` // characters; 0 = always render
}

// BackendConfig selects and parameterizes the image backend.
type BackendConfig struct {
	Kind           string `yaml:"kind"`           // "chrome" or "service" (default: chrome)
	ServiceURL     string `yaml:"serviceURL"`     // required when kind = service
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // 0 = library default
}

// OutputConfig defines artifact destination options.
type OutputConfig struct {
	ArtifactDir string `yaml:"artifactDir"` // empty = library default (os temp dir)
}

// DefaultConfig returns a neutral configuration: plain passthrough,
// local Chrome backend, library defaults everywhere.
func DefaultConfig() *Config {
	return &Config{
		Render:  RenderConfig{Mode: "plain", Threshold: 200},
		Backend: BackendConfig{Kind: "chrome"},
		Output:  OutputConfig{ArtifactDir: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2img/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
