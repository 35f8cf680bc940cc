package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/lixenwraith/splitflap/constants"
	"github.com/lixenwraith/splitflap/render"
)

var (
	ErrInvalid  = errors.New("config: invalid")
	ErrNotFound = errors.New("config: file not found")
	ErrRead     = errors.New("config: read failed")
)

// MaxTiles bounds the tile row
const MaxTiles = 32

// DefaultTokens is the classic flap set: blank, letters, digits
const DefaultTokens = " ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Duration is a time.Duration written as a Go duration string in JSON
type Duration time.Duration

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts "400ms" style strings or integer milliseconds
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %s", b)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Config holds all demo options
type Config struct {
	Tokens        string   `json:"tokens"`
	Tiles         int      `json:"tiles"`
	Duration      Duration `json:"duration"`
	MaxShadow     float64  `json:"max_shadow"`
	FrameInterval Duration `json:"frame_interval"`
	Sound         bool     `json:"sound"`
	SoundVolume   float64  `json:"sound_volume"`
	Color         string   `json:"color"`
}

// fileConfig mirrors Config with optional fields so a file can set zero values
type fileConfig struct {
	Tokens        *string   `json:"tokens"`
	Tiles         *int      `json:"tiles"`
	Duration      *Duration `json:"duration"`
	MaxShadow     *float64  `json:"max_shadow"`
	FrameInterval *Duration `json:"frame_interval"`
	Sound         *bool     `json:"sound"`
	SoundVolume   *float64  `json:"sound_volume"`
	Color         *string   `json:"color"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Tokens:        DefaultTokens,
		Tiles:         6,
		Duration:      Duration(constants.DefaultAnimationDuration),
		MaxShadow:     constants.MaxShadowAlpha,
		FrameInterval: Duration(constants.FrameUpdateInterval),
		Sound:         true,
		SoundVolume:   0.5,
		Color:         render.DefaultPalette,
	}
}

// TokenRunes returns the token set as runes
func (c Config) TokenRunes() []rune {
	return []rune(c.Tokens)
}

// Validate checks value ranges
func (c Config) Validate() error {
	var problems []string
	if c.Tokens == "" {
		problems = append(problems, "tokens is empty")
	}
	if c.Tiles < 1 || c.Tiles > MaxTiles {
		problems = append(problems, fmt.Sprintf("tiles %d outside 1..%d", c.Tiles, MaxTiles))
	}
	if c.Duration < 0 {
		problems = append(problems, "duration is negative")
	}
	if c.MaxShadow < 0 || c.MaxShadow > 1 {
		problems = append(problems, fmt.Sprintf("max_shadow %g outside [0,1]", c.MaxShadow))
	}
	if c.FrameInterval <= 0 {
		problems = append(problems, "frame_interval must be positive")
	}
	if c.SoundVolume < 0 || c.SoundVolume > 1 {
		problems = append(problems, fmt.Sprintf("sound_volume %g outside [0,1]", c.SoundVolume))
	}
	if _, err := render.LookupPalette(c.Color); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// GlobalPath returns $XDG_CONFIG_HOME/splitflap/config.json or the
// ~/.config equivalent, empty when no home is known
// env entries take precedence over the process environment
func GlobalPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok && after != "" {
			return filepath.Join(after, "splitflap", "config.json")
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "splitflap", "config.json")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "splitflap", "config.json")
	}
	return ""
}

// LoadFile merges the file at path over base
// A missing file is an error only when mustExist is set
func LoadFile(base Config, path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return base, false, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return base, false, nil
		}
		return base, false, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	cfg, err := Parse(base, data)
	if err != nil {
		return base, false, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Parse merges JSON-with-comments data over base
func Parse(base Config, data []byte) (Config, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return base, fmt.Errorf("%w: invalid JSONC: %w", ErrInvalid, err)
	}

	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(standard))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return base, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return fc.merge(base), nil
}

func (fc fileConfig) merge(c Config) Config {
	if fc.Tokens != nil {
		c.Tokens = *fc.Tokens
	}
	if fc.Tiles != nil {
		c.Tiles = *fc.Tiles
	}
	if fc.Duration != nil {
		c.Duration = *fc.Duration
	}
	if fc.MaxShadow != nil {
		c.MaxShadow = *fc.MaxShadow
	}
	if fc.FrameInterval != nil {
		c.FrameInterval = *fc.FrameInterval
	}
	if fc.Sound != nil {
		c.Sound = *fc.Sound
	}
	if fc.SoundVolume != nil {
		c.SoundVolume = *fc.SoundVolume
	}
	if fc.Color != nil {
		c.Color = *fc.Color
	}
	return c
}

// Format renders cfg as commented JSON
func Format(cfg Config) ([]byte, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	doc := append([]byte("// splitflap configuration, JSON with comments\n"), body...)
	out, err := hujson.Format(doc)
	if err != nil {
		return nil, fmt.Errorf("config: format: %w", err)
	}
	return out, nil
}

// Write stores cfg at path atomically, creating parent directories
func Write(path string, cfg Config) error {
	data, err := Format(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
