package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format for a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode reads a config document onto cfg. Fields absent from the document
// keep their current values.
func Decode(r io.Reader, format Format, cfg *Config) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("decoding %s config: %w", format, err)
	}
	return nil
}

// Load reads the config file at path over Default and validates it.
// A relative keymap file is resolved against the config file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	format, err := FormatFromPath(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), format, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if f := cfg.Keymap.File; f != "" && !filepath.IsAbs(f) {
		cfg.Keymap.File = filepath.Join(filepath.Dir(path), f)
	}
	if p := cfg.Persistence.Path; p != "" && !filepath.IsAbs(p) {
		cfg.Persistence.Path = filepath.Join(filepath.Dir(path), p)
	}
	return cfg, cfg.Validate()
}
