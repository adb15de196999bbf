// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package resource saves and loads materials as
// TOML or YAML documents.
//
// A document names the material class and lists
// property values by the names that the class's
// property table uses. Object properties (textures
// and shaders) are stored as references, which a
// Resolver maps to and from objects.
package resource

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/gviegas/visual/material"
	"github.com/gviegas/visual/prop"
	"github.com/gviegas/visual/server"
	"github.com/gviegas/visual/variant"
)

var (
	// ErrFormat means that a Format is not known.
	ErrFormat = errors.New("resource: unknown format")
	// ErrClass means that a document names a class
	// that cannot be loaded.
	ErrClass = errors.New("resource: unknown class")
)

// Document is the encoded form of a material.
type Document struct {
	Class      string         `toml:"class" yaml:"class"`
	Name       string         `toml:"name,omitempty" yaml:"name,omitempty"`
	Properties map[string]any `toml:"properties" yaml:"properties"`
}

// Resolver maps objects to references and back.
type Resolver interface {
	// Ref returns the reference of obj.
	Ref(obj any) (string, bool)
	// Resolve returns the object that ref refers to.
	// class is the resource class that the property
	// expects (e.g., "Texture").
	Resolve(ref, class string) (any, error)
}

// Encode converts m to a Document.
// Object properties that res cannot reference are
// left out. res may be nil.
func Encode(m *material.Material, res Resolver) *Document {
	class := material.ClassOf(m)
	doc := &Document{
		Class:      class.Name(),
		Name:       m.Name,
		Properties: make(map[string]any),
	}
	for _, info := range class.List(m) {
		v, err := class.Get(m, info.Name)
		if err != nil || v == nil {
			continue
		}
		if info.Type == variant.Object {
			ref, ok := "", false
			if res != nil {
				ref, ok = res.Ref(v)
			}
			if !ok {
				slog.Warn("resource: object property has no reference", "class", doc.Class, "property", info.Name)
				continue
			}
			v = ref
		}
		doc.Properties[info.Name] = variant.Flatten(v)
	}
	return doc
}

// Decode creates a new material from doc.
// Properties are set in the order that the class
// lists them, so that a shader is set before its
// parameters. Unknown properties are skipped.
// res may be nil if doc has no object properties.
func Decode(srv server.Server, doc *Document, res Resolver) (*material.Material, error) {
	kind, ok := material.ParseKind(doc.Class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClass, doc.Class)
	}
	m, err := material.New(srv, kind)
	if err != nil {
		return nil, err
	}
	m.Name = doc.Name
	class := material.ClassOf(m)
	pending := maps.Clone(doc.Properties)
	set := func(name string, v any) error {
		delete(pending, name)
		info, _ := lookup(class, m, name)
		if ref, ok := v.(string); ok && info.Type == variant.Object {
			if res == nil {
				return fmt.Errorf("resource: %s: no resolver for %q", name, ref)
			}
			obj, err := res.Resolve(ref, info.HintString)
			if err != nil {
				return fmt.Errorf("resource: %s: %w", name, err)
			}
			v = obj
		}
		err := class.Set(m, name, v)
		if errors.Is(err, prop.ErrUnknown) {
			slog.Warn("resource: unknown property", "class", doc.Class, "property", name)
			return nil
		}
		return err
	}
	for _, info := range class.List(m) {
		if v, ok := pending[info.Name]; ok {
			if err := set(info.Name, v); err != nil {
				m.Free()
				return nil, err
			}
		}
	}
	// Dynamic properties only exist once the static
	// ones are set.
	for _, name := range slices.Sorted(maps.Keys(pending)) {
		if err := set(name, pending[name]); err != nil {
			m.Free()
			return nil, err
		}
	}
	return m, nil
}

// lookup finds a property in the list of m, which
// includes dynamic properties.
func lookup(class *prop.Class[*material.Material], m *material.Material, name string) (prop.Info, bool) {
	if info, ok := class.Lookup(name); ok {
		return info, true
	}
	for _, info := range class.List(m) {
		if info.Name == name {
			return info, true
		}
	}
	return prop.Info{}, false
}

// Save writes m to w.
func Save(w io.Writer, m *material.Material, f Format, res Resolver) error {
	enc, err := f.encoder(w)
	if err != nil {
		return err
	}
	if err = enc.Encode(Encode(m, res)); err != nil {
		return fmt.Errorf("resource: %v: %w", f, err)
	}
	if c, ok := enc.(io.Closer); ok {
		if err = c.Close(); err != nil {
			return fmt.Errorf("resource: %v: %w", f, err)
		}
	}
	return nil
}

// Load reads a material from r.
func Load(srv server.Server, r io.Reader, f Format, res Resolver) (*material.Material, error) {
	dec, err := f.decoder(r)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("resource: %v: %w", f, err)
	}
	return Decode(srv, &doc, res)
}

// SaveFile writes m to the named file, whose
// extension selects the Format.
func SaveFile(filename string, m *material.Material, res Resolver) error {
	f, err := FormatOf(filename)
	if err != nil {
		return err
	}
	fp, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("resource: %w", err)
	}
	if err = Save(fp, m, f, res); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// LoadFile reads a material from the named file,
// whose extension selects the Format.
func LoadFile(srv server.Server, filename string, res Resolver) (*material.Material, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	defer fp.Close()
	return Load(srv, fp, f, res)
}
