// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package resource

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a resource file format.
type Format int

// Formats.
const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf returns the Format implied by the
// extension of filename.
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filename)
}

// Encoder is implemented by the encoders of every
// Format.
type Encoder interface {
	Encode(v any) error
}

// Decoder is implemented by the decoders of every
// Format.
type Decoder interface {
	Decode(v any) error
}

func (f Format) encoder(w io.Writer) (Encoder, error) {
	switch f {
	case TOML:
		return toml.NewEncoder(w).SetIndentTables(true), nil
	case YAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		return e, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFormat, f)
}

func (f Format) decoder(r io.Reader) (Decoder, error) {
	switch f {
	case TOML:
		return toml.NewDecoder(r), nil
	case YAML:
		return yaml.NewDecoder(r), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFormat, f)
}
