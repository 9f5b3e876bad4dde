/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: defaults, then the YAML file in
// the per-user config directory, then DRAWPAD_* environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "drawpad/internal/log"
	"drawpad/internal/stroke"
)

//go:embed config.schema.json
var schemaJSON []byte

// ErrInvalid wraps every schema violation reported by LoadFile.
var ErrInvalid = errors.New("config: invalid file")

type PenConfig struct {
	Width float32 `yaml:"width"`
	Color string  `yaml:"color"`
	Alpha float32 `yaml:"alpha"`
}

type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration. Environment variables are
// read-only overrides and are never written back by Save.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Pen           PenConfig     `yaml:"pen"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults. The pen matches stroke.DefaultStyle.
func Defaults() AppConfig {
	def := stroke.DefaultStyle()
	return AppConfig{
		ConfigVersion: 1,
		Pen:           PenConfig{Width: def.Width, Color: "black", Alpha: def.Alpha},
		Canvas:        CanvasConfig{Width: 800, Height: 600, Background: "white"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvPenWidth     = "DRAWPAD_PEN_WIDTH"
	EnvPenColor     = "DRAWPAD_PEN_COLOR"
	EnvPenAlpha     = "DRAWPAD_PEN_ALPHA"
	EnvCanvasWidth  = "DRAWPAD_CANVAS_WIDTH"
	EnvCanvasHeight = "DRAWPAD_CANVAS_HEIGHT"
	EnvLogLevel     = "DRAWPAD_LOG_LEVEL"
	EnvLogFormat    = "DRAWPAD_LOG_FORMAT"
	EnvLogSource    = "DRAWPAD_LOG_SOURCE"
	EnvLogFile      = "DRAWPAD_LOG_FILE"
)

// envKeys maps dotted config keys to their override variable.
var envKeys = map[string]string{
	"pen.width":      EnvPenWidth,
	"pen.color":      EnvPenColor,
	"pen.alpha":      EnvPenAlpha,
	"canvas.width":   EnvCanvasWidth,
	"canvas.height":  EnvCanvasHeight,
	"logging.level":  EnvLogLevel,
	"logging.format": EnvLogFormat,
	"logging.source": EnvLogSource,
	"logging.file":   EnvLogFile,
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Drawpad")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Drawpad")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "drawpad")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "drawpad")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load returns defaults merged with the user file and env overrides. A missing
// file is not an error; an unreadable or invalid one is logged and skipped.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		applog.WithComponent("config").Warn("ignoring config file", "path", path, "err", err)
		cfg = Defaults()
		applyEnvOverrides(&cfg)
	}
	return cfg, nil
}

// LoadFile is Load for an explicit path. Unlike Load it reports invalid files.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	default:
		fileCfg, err := decode(data)
		if err != nil {
			return cfg, err
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

func decode(data []byte) (AppConfig, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return AppConfig{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if doc != nil {
		if err := validate(doc); err != nil {
			return AppConfig{}, err
		}
	}
	// absent keys keep their defaults
	out := Defaults()
	if err := yaml.Unmarshal(data, &out); err != nil {
		return AppConfig{}, fmt.Errorf("config: decode: %w", err)
	}
	return out, nil
}

func validate(doc any) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Save writes cfg as YAML to the per-user path and returns that path.
func Save(cfg AppConfig) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return path, SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Marshal renders cfg as YAML.
func Marshal(cfg AppConfig) ([]byte, error) { return yaml.Marshal(cfg) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Pen.Width != 0 {
		dst.Pen.Width = src.Pen.Width
	}
	if c := strings.TrimSpace(src.Pen.Color); c != "" {
		dst.Pen.Color = c
	}
	dst.Pen.Alpha = src.Pen.Alpha
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if b := strings.TrimSpace(src.Canvas.Background); b != "" {
		dst.Canvas.Background = b
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvPenWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Pen.Width = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPenColor)); v != "" {
		cfg.Pen.Color = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPenAlpha)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Pen.Alpha = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Canvas.Width = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Canvas.Height = n
		}
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

// EnvOverrideFor returns the env var name if the dotted key is currently overridden.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// Overrides lists the dotted keys currently overridden by the environment.
func Overrides() map[string]string {
	out := map[string]string{}
	for k, name := range envKeys {
		if os.Getenv(name) != "" {
			out[k] = name
		}
	}
	return out
}

// PenStyle converts the pen section into the engine's initial style. Width
// and alpha are clamped to the slider ranges. An unknown color falls back to
// black and is reported.
func (c AppConfig) PenStyle() (stroke.PathStyle, error) {
	s := stroke.PathStyle{Width: stroke.ClampWidth(c.Pen.Width), Color: stroke.Black, Alpha: stroke.ClampAlpha(c.Pen.Alpha)}
	col, err := stroke.ParseColor(c.Pen.Color)
	if err != nil {
		return s, fmt.Errorf("config: pen color: %w", err)
	}
	s.Color = col
	return s, nil
}

// Background returns the canvas background color, white when unparsable.
func (c AppConfig) Background() stroke.Color {
	col, err := stroke.ParseColor(c.Canvas.Background)
	if err != nil {
		return stroke.White
	}
	return col
}
