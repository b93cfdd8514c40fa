/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("path layout differs on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{EnvLogLevel, EnvLogFormat, EnvLogFile, EnvCloseGap, EnvReviewThreshold, EnvFallbackMaxGap} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolateHome(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Engine.CloseGap != 25 || cfg.Engine.ReviewThreshold != 60 || cfg.Engine.FallbackMaxGap != 40 {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
}

func TestLoadMergesFile(t *testing.T) {
	isolateHome(t)
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "logging:\n  level: DEBUG\nengine:\n  review_threshold: 75\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("file level must merge lowercased, got %q", cfg.Logging.Level)
	}
	if cfg.Engine.ReviewThreshold != 75 {
		t.Fatalf("file threshold must merge, got %d", cfg.Engine.ReviewThreshold)
	}
	// untouched fields keep their defaults
	if cfg.Engine.CloseGap != 25 || cfg.Logging.Format != "console" {
		t.Fatalf("sparse file must not clobber defaults: %+v", cfg)
	}
}

func TestLoadIgnoresMalformedFile(t *testing.T) {
	isolateHome(t)
	path, _ := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.CloseGap != 25 {
		t.Fatalf("malformed file must fall back to defaults: %+v", cfg)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	isolateHome(t)
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvCloseGap, "30")
	t.Setenv(EnvReviewThreshold, "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env level must win, got %q", cfg.Logging.Level)
	}
	if cfg.Engine.CloseGap != 30 {
		t.Fatalf("env close gap must win, got %v", cfg.Engine.CloseGap)
	}
	if cfg.Engine.ReviewThreshold != 60 {
		t.Fatalf("unparsable env value must be ignored, got %d", cfg.Engine.ReviewThreshold)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolateHome(t)
	want := Defaults()
	want.Logging.Level = "debug"
	want.Engine.FallbackMaxGap = 35
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Logging.Level != "debug" || got.Engine.FallbackMaxGap != 35 {
		t.Fatalf("round trip lost values: %+v", got)
	}
}
