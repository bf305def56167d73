package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// OpenAI contains connection settings for the generative endpoint.
// Every field can be supplied through the config file, an environment
// variable, or an interactive prompt at startup, in that order.
type OpenAI struct {
	BaseURL        string `toml:"base_url" env:"PODCASTR_BASE_URL"`
	APIKey         string `toml:"api_key" env:"PODCASTR_API_KEY"`
	ChatModel      string `toml:"chat_model" env:"PODCASTR_CHAT_MODEL"`
	AudioModel     string `toml:"audio_model" env:"PODCASTR_AUDIO_MODEL"`
	ImageModel     string `toml:"image_model" env:"PODCASTR_IMAGE_MODEL"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Podcast contains optional episode defaults. When set, the matching
// interactive prompt is pre-selected with the value.
type Podcast struct {
	DefaultLanguage string `toml:"default_language"`
	DefaultVoice    string `toml:"default_voice"`
}

// Paths contains directory configuration.
type Paths struct {
	// StateDir holds the session lock and the log file.
	StateDir string `toml:"state_dir"`
	// OutputDir receives generated archives. Empty means the system
	// temporary directory.
	OutputDir string `toml:"output_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Podcastr.
//
// Configuration sections:
//   - OpenAI: endpoint, credentials, and model names
//   - Podcast: default language and voice for the episode prompts
//   - Paths: state and output directories
//   - Logging: log format and level
type Config struct {
	OpenAI  OpenAI  `toml:"openai"`
	Podcast Podcast `toml:"podcast"`
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/podcastr/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// variables override file values. The returned config has all path fields
// expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg.OpenAI); err != nil {
		return nil, "", false, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// CreateSample writes the embedded sample configuration to the target path.
func CreateSample(target string) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}
	if err := os.WriteFile(target, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves ~ shortcuts and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
