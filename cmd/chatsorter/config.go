package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	envAPIKey    = "CHATSORTER_API_KEY"
	envBaseURL   = "CHATSORTER_BASE_URL"
	envLogLevel  = "CHATSORTER_LOG_LEVEL"
	envLogFormat = "CHATSORTER_LOG_FORMAT"

	defaultConfigName = ".chatsorter.yaml"
)

// fileConfig is the YAML configuration file.
//
//	api_key: sk_live_...
//	base_url: https://chatsorter-api.onrender.com
//	log_level: warn
//	log_format: json
type fileConfig struct {
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// settings is the resolved CLI configuration.
type settings struct {
	APIKey    string
	BaseURL   string
	LogLevel  string
	LogFormat string
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultConfigName)
}

// loadConfigFile reads path. A missing file is an error only when the path
// was given explicitly.
func loadConfigFile(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveSettings merges flags, environment and file, in that order of
// precedence. Empty values count as unset.
func resolveSettings(flags settings, getenv func(string) string, file fileConfig) settings {
	return settings{
		APIKey:    firstNonEmpty(flags.APIKey, getenv(envAPIKey), file.APIKey),
		BaseURL:   firstNonEmpty(flags.BaseURL, getenv(envBaseURL), file.BaseURL),
		LogLevel:  firstNonEmpty(flags.LogLevel, getenv(envLogLevel), file.LogLevel),
		LogFormat: firstNonEmpty(flags.LogFormat, getenv(envLogFormat), file.LogFormat),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
