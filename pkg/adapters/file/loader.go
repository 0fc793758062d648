package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.TourLoader for a single tour document.
// The format is picked from the extension: .json, .yaml/.yml or .toml.
type Loader struct {
	Path string
}

// NewLoader creates a loader for the tour document at path.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the tour document.
func (l *Loader) Load(ctx context.Context) (*domain.Tour, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour file: %w", err)
	}
	return Decode(filepath.Ext(l.Path), data)
}

// Decode parses a tour document in the format named by ext.
// Numbers authored as strings (e.g. "id": "3") are accepted.
func Decode(ext string, data []byte) (*domain.Tour, error) {
	raw := make(map[string]any)

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse json tour: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml tour: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml tour: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tour format %q", ext)
	}

	var tour domain.Tour
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &tour,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode tour: %w", err)
	}
	return &tour, nil
}
