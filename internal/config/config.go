package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	DefaultLanguage    string
	SupportedLanguages []string
	MaxDepth           int
	LogLevel           string
	LogFormat          string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	cfg := &Config{
		DefaultLanguage:    os.Getenv("I18N_DEFAULT_LANGUAGE"),
		SupportedLanguages: splitList(os.Getenv("I18N_SUPPORTED_LANGUAGES")),
		LogLevel:           strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
	}

	if raw := strings.TrimSpace(os.Getenv("I18N_MAX_DEPTH")); raw != "" {
		depth, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: I18N_MAX_DEPTH invalid (%q): %w", raw, err)
		}
		cfg.MaxDepth = depth
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies defaults and checks every rule on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = "en"
	}
	if len(c.SupportedLanguages) == 0 {
		c.SupportedLanguages = []string{"en", "fr"}
	}

	def, err := language.Parse(c.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("config: I18N_DEFAULT_LANGUAGE invalid (%q): %w", c.DefaultLanguage, err)
	}

	found := false
	for _, lang := range c.SupportedLanguages {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("config: I18N_SUPPORTED_LANGUAGES invalid entry (%q): %w", lang, err)
		}
		if tag == def {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("config: I18N_DEFAULT_LANGUAGE (%q) must be listed in I18N_SUPPORTED_LANGUAGES", c.DefaultLanguage)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("config: I18N_MAX_DEPTH must be zero or positive, got %d", c.MaxDepth)
	}

	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL invalid (%q)", c.LogLevel)
	}

	switch c.LogFormat {
	case "":
		c.LogFormat = "console"
	case "json", "console":
	default:
		return fmt.Errorf("config: LOG_FORMAT invalid (%q)", c.LogFormat)
	}

	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
