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
	"testing"
)

func useConfigFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if content != "" {
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv(EnvConfigFile, p)
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	useConfigFile(t, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HistoryMax != 50 || cfg.Editor.PasteOffset != 20 {
		t.Fatalf("unexpected defaults: %#v", cfg.Editor)
	}
}

func TestLoadMergesFile(t *testing.T) {
	useConfigFile(t, `
editor:
  history_max: 10
  canvas_center_x: 100
  canvas_center_y: 80
export:
  dpi: 300
logging:
  level: DEBUG
`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HistoryMax != 10 || cfg.Editor.CanvasCenterX != 100 || cfg.Editor.CanvasCenterY != 80 {
		t.Fatalf("editor not merged: %#v", cfg.Editor)
	}
	if cfg.Editor.PasteOffset != 20 {
		t.Fatalf("unset field lost its default: %#v", cfg.Editor)
	}
	if cfg.Export.DPI != 300 || cfg.Export.FontSize != 18 {
		t.Fatalf("export not merged: %#v", cfg.Export)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	useConfigFile(t, "editor: [not, a, map")
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Editor.HistoryMax != 50 {
		t.Fatalf("defaults not returned on error: %#v", cfg.Editor)
	}
}

func TestEnvOverrides(t *testing.T) {
	useConfigFile(t, "editor:\n  history_max: 10\n")
	t.Setenv(EnvHistoryMax, "5")
	t.Setenv(EnvTelemetryOptIn, "true")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/mc.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HistoryMax != 5 {
		t.Fatalf("HistoryMax = %d, want 5", cfg.Editor.HistoryMax)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("TelemetryOptIn expected true from env override")
	}
	if cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/mc.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
	if env, ok := EnvOverrideFor("editor.history_max"); !ok || env != EnvHistoryMax {
		t.Fatalf("EnvOverrideFor = %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("export.font_size"); ok {
		t.Fatalf("font_size has no env override")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := useConfigFile(t, "")
	cfg := Defaults()
	cfg.Editor.SnapThreshold = 6
	cfg.General.Theme = "dark"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFrom(p)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Editor.SnapThreshold != 6 || got.General.Theme != "dark" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/mc.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/mc.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}
