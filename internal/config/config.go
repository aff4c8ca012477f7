/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the per-user mathcanvas settings from YAML and applies
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mathcanvas/internal/storage"
)

// EditorConfig tunes the canvas editor.
type EditorConfig struct {
	// HistoryMax caps the undo log.
	HistoryMax int `yaml:"history_max"`
	// PasteOffset shifts pasted elements on both axes.
	PasteOffset float64 `yaml:"paste_offset"`
	// CanvasCenterX/Y is where builders place prompted fractions and matrices.
	CanvasCenterX float64 `yaml:"canvas_center_x"`
	CanvasCenterY float64 `yaml:"canvas_center_y"`
	// SnapThreshold enables snapping dragged elements to other elements' rows and columns; 0 disables.
	SnapThreshold float64 `yaml:"snap_threshold"`
}

type ExportConfig struct {
	DPI      int     `yaml:"dpi"`
	FontSize float64 `yaml:"font_size"`
	Padding  float64 `yaml:"padding"`
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark"
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration persisted as YAML.
// Environment variables override it at runtime and are never written back.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Editor        EditorConfig  `yaml:"editor"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Editor:        EditorConfig{HistoryMax: 50, PasteOffset: 20, CanvasCenterX: 400, CanvasCenterY: 300},
		Export:        ExportConfig{DPI: 96, FontSize: 18, Padding: 24},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile     = "MC_CONFIG"
	EnvHistoryMax     = "MC_HISTORY_MAX"
	EnvPasteOffset    = "MC_PASTE_OFFSET"
	EnvSnapThreshold  = "MC_SNAP_THRESHOLD"
	EnvExportDPI      = "MC_EXPORT_DPI"
	EnvTelemetryOptIn = "MC_TELEMETRY_OPT_IN"
	EnvLogLevel       = "MC_LOG_LEVEL"
	EnvLogFormat      = "MC_LOG_FORMAT"
	EnvLogSource      = "MC_LOG_SOURCE"
	EnvLogFile        = "MC_LOG_FILE"
)

// ConfigPath returns the per-user config file path. MC_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "MathCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "MathCanvas")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "mathcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "mathcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config (if present), applies defaults and merges
// environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file yields defaults; a
// malformed one is an error and the defaults (with env overrides) are returned.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg to the user config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as YAML to path, creating parent directories.
func SaveTo(path string, cfg AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn

	if src.Editor.HistoryMax > 0 {
		dst.Editor.HistoryMax = src.Editor.HistoryMax
	}
	if src.Editor.PasteOffset != 0 {
		dst.Editor.PasteOffset = src.Editor.PasteOffset
	}
	if src.Editor.CanvasCenterX != 0 || src.Editor.CanvasCenterY != 0 {
		dst.Editor.CanvasCenterX = src.Editor.CanvasCenterX
		dst.Editor.CanvasCenterY = src.Editor.CanvasCenterY
	}
	if src.Editor.SnapThreshold > 0 {
		dst.Editor.SnapThreshold = src.Editor.SnapThreshold
	}

	if src.Export.DPI > 0 {
		dst.Export.DPI = src.Export.DPI
	}
	if src.Export.FontSize > 0 {
		dst.Export.FontSize = src.Export.FontSize
	}
	if src.Export.Padding > 0 {
		dst.Export.Padding = src.Export.Padding
	}

	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvHistoryMax)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Editor.HistoryMax = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPasteOffset)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Editor.PasteOffset = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSnapThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Editor.SnapThreshold = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDPI)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Export.DPI = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"editor.history_max":       EnvHistoryMax,
	"editor.paste_offset":      EnvPasteOffset,
	"editor.snap_threshold":    EnvSnapThreshold,
	"export.dpi":               EnvExportDPI,
	"general.telemetry_opt_in": EnvTelemetryOptIn,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by the environment.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envKeys[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
