package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for keymap files with an unsupported extension.
var ErrUnknownFormat = errors.New("keymap: unknown file format")

// File is the on-disk layout of a keymap file.
type File struct {
	Keymaps []*Keymap `json:"keymaps" toml:"keymaps" yaml:"keymaps"`
}

// Format identifies a keymap file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format for a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode reads keymaps in the given format and validates them.
func Decode(r io.Reader, format Format) ([]*Keymap, error) {
	var f File
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&f)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&f)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&f)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s keymap: %w", format, err)
	}

	for i, km := range f.Keymaps {
		if km == nil {
			return nil, fmt.Errorf("keymap %d: empty entry", i)
		}
		if km.Name == "" {
			return nil, fmt.Errorf("keymap %d: missing name", i)
		}
		if err := km.Validate(); err != nil {
			return nil, fmt.Errorf("keymap %q: %w", km.Name, err)
		}
	}
	return f.Keymaps, nil
}

// LoadFile reads a keymap file. The format follows the file extension and
// every keymap's Source is set to the path.
func LoadFile(path string) ([]*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap: %w", err)
	}
	defer fh.Close()

	kms, err := Decode(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, km := range kms {
		km.Source = path
	}
	return kms, nil
}

// LoadInto reads a keymap file and registers its keymaps, replacing any
// previously loaded from the same path.
func (r *Registry) LoadInto(path string) error {
	kms, err := LoadFile(path)
	if err != nil {
		return err
	}
	return r.Replace(path, kms)
}
