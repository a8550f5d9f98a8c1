// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jlink"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Default values for settings not given in a settings file.
const (
	DefaultJumpToLineDelay = 100 * time.Millisecond
	DefaultRefreshInterval = time.Second
)

// Settings are the options of a link session. A Settings value is treated as
// an immutable snapshot: to change settings, load new ones.
type Settings struct {
	Highlighting bool // underline linked property names in view
	Cache        bool // memoize scans of destination files
	Sound        bool // beep when a definition is not found

	// JumpToLineDelay is how long to wait after opening a file before
	// moving the caret.
	JumpToLineDelay time.Duration

	// RefreshInterval is the period at which pending highlight updates are
	// applied.
	RefreshInterval time.Duration

	// MappingDefaultFilePath is the directory against which relative file
	// patterns are resolved.
	MappingDefaultFilePath string

	Mapping []Item
}

// Default returns settings with default values and no mapping.
func Default() *Settings {
	return &Settings{
		Highlighting:    true,
		Cache:           true,
		Sound:           true,
		JumpToLineDelay: DefaultJumpToLineDelay,
		RefreshInterval: DefaultRefreshInterval,
	}
}

// ItemsFor returns the items whose source files include path.
func (s *Settings) ItemsFor(path string) []Item {
	var out []Item
	for _, it := range s.Mapping {
		if it.Src.MatchesPath(path) {
			out = append(out, it)
		}
	}
	return out
}

// SourceWords returns the source property paths of the items whose source
// files include path, in mapping order.
func (s *Settings) SourceWords(path string) []*jlink.Word {
	var out []*jlink.Word
	for _, it := range s.ItemsFor(path) {
		out = append(out, it.Src.Word())
	}
	return out
}

// A Format is the syntax of a settings file.
type Format int

// Constants defining the valid Format values.
const (
	HuJSON Format = iota // JSON with comments and trailing commas
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	}
	return "hujson"
}

// FormatOf returns the format of a settings file, chosen by its extension.
// Files with an unknown extension are read as HuJSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	}
	return HuJSON
}

// Load reads settings from the file at path. Unless the file says otherwise,
// relative file patterns are resolved against the directory containing it.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, FormatOf(path), filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("load settings %q: %w", path, err)
	}
	return s, nil
}

// Parse decodes settings from data in the given format. A relative
// mappingDefaultFilePath is resolved against dir, and dir is used if it is
// not set.
func Parse(data []byte, format Format, dir string) (*Settings, error) {
	var f file
	switch format {
	case HuJSON:
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if err := decodeYAML(std, &f); err != nil {
			return nil, err
		}
	case YAML:
		if err := decodeYAML(data, &f); err != nil {
			return nil, err
		}
	case TOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown settings format %v", format)
	}
	return f.settings(dir)
}

func decodeYAML(data []byte, f *file) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// file is the encoded form of Settings. Fields not set keep their defaults.
type file struct {
	Highlighting    *bool     `yaml:"highlighting" toml:"highlighting"`
	Cache           *bool     `yaml:"cache" toml:"cache"`
	Sound           *bool     `yaml:"sound" toml:"sound"`
	JumpToLineDelay *Duration `yaml:"jumpToLineDelay" toml:"jumpToLineDelay"`
	RefreshInterval *Duration `yaml:"refreshInterval" toml:"refreshInterval"`
	DefaultPath     string    `yaml:"mappingDefaultFilePath" toml:"mappingDefaultFilePath"`
	Mapping         []Item    `yaml:"mapping" toml:"mapping"`
}

func (f *file) settings(dir string) (*Settings, error) {
	s := Default()
	setIf(&s.Highlighting, f.Highlighting)
	setIf(&s.Cache, f.Cache)
	setIf(&s.Sound, f.Sound)
	if f.JumpToLineDelay != nil {
		s.JumpToLineDelay = time.Duration(*f.JumpToLineDelay)
	}
	if f.RefreshInterval != nil {
		s.RefreshInterval = time.Duration(*f.RefreshInterval)
	}
	if s.JumpToLineDelay < 0 {
		return nil, fmt.Errorf("jumpToLineDelay: negative duration %v", s.JumpToLineDelay)
	}
	if s.RefreshInterval <= 0 {
		return nil, fmt.Errorf("refreshInterval: must be positive, got %v", s.RefreshInterval)
	}

	base := filepath.FromSlash(f.DefaultPath)
	switch {
	case base == "":
		base = dir
	case !filepath.IsAbs(base) && dir != "":
		base = filepath.Join(dir, base)
	}
	s.MappingDefaultFilePath = base

	s.Mapping = f.Mapping
	for i := range s.Mapping {
		if err := s.Mapping[i].compile(base); err != nil {
			return nil, fmt.Errorf("mapping[%d]: %w", i, err)
		}
	}
	return s, nil
}

func setIf(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Duration is a time.Duration that decodes from a duration string such as
// "250ms", or from a bare integer giving milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
