/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration and applies
// environment overrides. Environment variables are read-only overrides at
// runtime and never written back to the file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoggingConfig mirrors the log package's options.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// EngineConfig exposes the classifier tunables. The zero value means "use
// the built-in default" so a sparse YAML file stays valid.
type EngineConfig struct {
	// CloseGap is the top-2 score gap below which a call counts as close.
	CloseGap float64 `yaml:"close_gap"`
	// ReviewThreshold is the doubt level (0-100) that flags a line.
	ReviewThreshold int `yaml:"review_threshold"`
	// FallbackMaxGap disables the smart tie-break at or above this gap.
	FallbackMaxGap float64 `yaml:"fallback_max_gap"`
}

// AppConfig is the persisted configuration.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Logging       LoggingConfig `yaml:"logging"`
	Engine        EngineConfig  `yaml:"engine"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Engine:        EngineConfig{CloseGap: 25, ReviewThreshold: 60, FallbackMaxGap: 40},
	}
}

// Env var names used as overrides.
const (
	EnvLogLevel  = "KTB_LOG_LEVEL"
	EnvLogFormat = "KTB_LOG_FORMAT"
	EnvLogFile   = "KTB_LOG_FILE"

	EnvCloseGap        = "KTB_CLOSE_GAP"
	EnvReviewThreshold = "KTB_REVIEW_THRESHOLD"
	EnvFallbackMaxGap  = "KTB_FALLBACK_MAX_GAP"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Katib")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Katib")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "katib")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides. A malformed file is ignored in favor of the
// defaults rather than failing startup.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	if src.Engine.CloseGap > 0 {
		dst.Engine.CloseGap = src.Engine.CloseGap
	}
	if src.Engine.ReviewThreshold > 0 {
		dst.Engine.ReviewThreshold = src.Engine.ReviewThreshold
	}
	if src.Engine.FallbackMaxGap > 0 {
		dst.Engine.FallbackMaxGap = src.Engine.FallbackMaxGap
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCloseGap)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Engine.CloseGap = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvReviewThreshold)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Engine.ReviewThreshold = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFallbackMaxGap)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Engine.FallbackMaxGap = f
		}
	}
}
