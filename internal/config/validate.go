package config

import (
	"fmt"
	"net/url"
	"slices"
)

// Validate ensures the configuration is usable. Credentials and model
// names may be empty here; the CLI prompts for anything still missing
// before a run starts.
func (c *Config) Validate() error {
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validatePodcast(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOpenAI() error {
	if c.OpenAI.BaseURL != "" {
		parsed, err := url.Parse(c.OpenAI.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("openai.base_url must be an absolute URL, got %q", c.OpenAI.BaseURL)
		}
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		return fmt.Errorf("openai.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePodcast() error {
	if c.Podcast.DefaultLanguage != "" && !slices.Contains(SupportedLanguages, c.Podcast.DefaultLanguage) {
		return fmt.Errorf("podcast.default_language %q is not supported (choose from %v)", c.Podcast.DefaultLanguage, SupportedLanguages)
	}
	if c.Podcast.DefaultVoice != "" && !slices.Contains(SupportedVoices, c.Podcast.DefaultVoice) {
		return fmt.Errorf("podcast.default_voice %q is not supported (choose from %v)", c.Podcast.DefaultVoice, SupportedVoices)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
