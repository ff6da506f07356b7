// Package config loads gitlet settings from defaults, an optional config
// file and GITLET_* environment variables using spf13/viper.
//
// YAML, TOML and JSON files are supported. JSON files may carry // and
// /* */ comments and trailing commas; they are normalized with
// github.com/tidwall/jsonc before viper parses them, the same way
// devcontainer.json files are commonly handled.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "gitlet"

	// FileName is the config file name without extension.
	FileName = "config"

	// EnvPrefix prefixes environment overrides, e.g. GITLET_GIT_BINARY.
	EnvPrefix = "GITLET"
)

// extensions lists the config file extensions searched, in order.
var extensions = []string{"yaml", "yml", "toml", "json", "jsonc"}

// Config holds the user-tunable settings.
type Config struct {
	// Prompt is printed before every interactive read.
	Prompt string `mapstructure:"prompt"`

	// Banner enables the interactive welcome banner.
	Banner bool `mapstructure:"banner"`

	// Verbose lowers the log level to debug.
	Verbose bool `mapstructure:"verbose"`

	// Color enables styled help and banner output on terminals.
	Color bool `mapstructure:"color"`

	Git    GitConfig    `mapstructure:"git"`
	Author AuthorConfig `mapstructure:"author"`
}

// GitConfig configures the git engine.
type GitConfig struct {
	// Binary is the git executable name or path.
	Binary string `mapstructure:"binary"`
}

// AuthorConfig is the identity recorded on commits.
type AuthorConfig struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Prompt:  "gitlet> ",
		Banner:  true,
		Verbose: false,
		Color:   true,
		Git:     GitConfig{Binary: "git"},
		Author:  AuthorConfig{Name: "gitlet", Email: "gitlet@localhost"},
	}
}

// Dir returns the gitlet config directory: $XDG_CONFIG_HOME/gitlet, or
// ~/.config/gitlet when XDG_CONFIG_HOME is unset.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// Load builds the configuration. When path is non-empty that file must
// exist; otherwise the first config file found in Dir is used, and none at
// all is fine. It returns the config and the file it was read from, which
// is empty when only defaults and the environment applied.
func Load(path string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("prompt", defaults.Prompt)
	v.SetDefault("banner", defaults.Banner)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("git.binary", defaults.Git.Binary)
	v.SetDefault("author.name", defaults.Author.Name)
	v.SetDefault("author.email", defaults.Author.Email)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolved := path
	if resolved != "" {
		if !fileExists(resolved) {
			return nil, "", fmt.Errorf("config file not found: %s", resolved)
		}
	} else {
		found, err := findConfigFile()
		if err != nil {
			return nil, "", err
		}
		resolved = found
	}

	if resolved != "" {
		if err := readFile(v, resolved); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", resolved, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, resolved, nil
}

// findConfigFile returns the first config file in Dir, or "".
func findConfigFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	for _, ext := range extensions {
		candidate := filepath.Join(dir, FileName+"."+ext)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// readFile merges the config file at path into v.
func readFile(v *viper.Viper, path string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "json", "jsonc":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		// Strip comments and trailing commas before viper's JSON decoder.
		v.SetConfigType("json")
		return v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data)))
	case "yaml", "yml", "toml":
		v.SetConfigFile(path)
		return v.ReadInConfig()
	default:
		return fmt.Errorf("unsupported config file extension %q (valid: %s)", ext, strings.Join(extensions, ", "))
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
