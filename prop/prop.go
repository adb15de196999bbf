// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package prop implements statically enumerated
// property tables.
//
// Every node or resource type builds one Class when
// the program starts, describing its exposed properties,
// enumeration constants and signals. Classes are then
// queried by property name to get, set and list
// properties of a given object.
package prop

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gviegas/visual/variant"
)

// Hint describes how a property's value should be
// presented or constrained by an editor.
type Hint int

// Hints.
const (
	HintNone Hint = iota
	// HintString is "min,max[,step]".
	HintRange
	// HintString is a comma-separated list of names.
	HintEnum
	// Value is a bit mask.
	HintAllFlags
	// HintString is the resource class name.
	HintResourceType
)

// Info describes a property.
type Info struct {
	Name       string
	Type       variant.Type
	Hint       Hint
	HintString string
}

// Property is a property of objects of type T.
// Set may be nil for read-only properties.
type Property[T any] struct {
	Info
	Get func(T) any
	Set func(T, any) error
}

// Dynamic describes properties that vary from object
// to object.
// Get and Set report whether name was handled.
type Dynamic[T any] struct {
	List func(T) []Info
	Get  func(obj T, name string) (any, bool)
	Set  func(obj T, name string, value any) (bool, error)
}

// Constant is an enumeration constant exposed by
// a Class.
type Constant struct {
	Name  string
	Value int64
}

var (
	// ErrUnknown means that no property has the
	// given name.
	ErrUnknown = errors.New("prop: unknown property")
	// ErrReadOnly means that the property cannot be set.
	ErrReadOnly = errors.New("prop: read-only property")
)

// Class is the property table of type T.
type Class[T any] struct {
	name      string
	parent    string
	props     []Property[T]
	inherited int
	index     map[string]int
	consts    []Constant
	signals   []string
	dyn       *Dynamic[T]
	reverse   bool
}

// NewClass creates an empty class.
func NewClass[T any](name string) *Class[T] {
	return &Class[T]{name: name, index: make(map[string]int)}
}

// Inherit creates a class whose initial properties,
// constants and signals are those of parent, accessed
// through up.
func Inherit[P, T any](name string, parent *Class[P], up func(T) P) *Class[T] {
	c := NewClass[T](name)
	c.parent = parent.name
	for _, p := range parent.props {
		q := Property[T]{Info: p.Info}
		get := p.Get
		q.Get = func(obj T) any { return get(up(obj)) }
		if set := p.Set; set != nil {
			q.Set = func(obj T, v any) error { return set(up(obj), v) }
		}
		c.Add(q)
	}
	c.inherited = len(c.props)
	c.consts = slices.Clone(parent.consts)
	c.signals = slices.Clone(parent.signals)
	if d := parent.dyn; d != nil {
		c.dyn = &Dynamic[T]{
			List: func(obj T) []Info { return d.List(up(obj)) },
			Get:  func(obj T, name string) (any, bool) { return d.Get(up(obj), name) },
			Set:  func(obj T, name string, v any) (bool, error) { return d.Set(up(obj), name, v) },
		}
	}
	return c
}

// Name returns the class name.
func (c *Class[T]) Name() string { return c.name }

// Parent returns the name of the class c inherits from,
// if any.
func (c *Class[T]) Parent() string { return c.parent }

// Add adds properties to c.
// It panics if a property name is already in use.
func (c *Class[T]) Add(props ...Property[T]) *Class[T] {
	for _, p := range props {
		if _, dup := c.index[p.Name]; dup {
			panic(fmt.Sprintf("prop: %s: duplicate property %q", c.name, p.Name))
		}
		if p.Get == nil {
			panic(fmt.Sprintf("prop: %s: property %q has no getter", c.name, p.Name))
		}
		c.index[p.Name] = len(c.props)
		c.props = append(c.props, p)
	}
	return c
}

// Const adds an enumeration constant to c.
func (c *Class[T]) Const(name string, value int64) *Class[T] {
	c.consts = append(c.consts, Constant{name, value})
	return c
}

// Signal declares a signal emitted by objects of c.
func (c *Class[T]) Signal(name string) *Class[T] {
	c.signals = append(c.signals, name)
	return c
}

// SetDynamic sets the dynamic properties of c.
func (c *Class[T]) SetDynamic(d Dynamic[T]) *Class[T] {
	c.dyn = &d
	return c
}

// ReverseList makes List report dynamic and own
// properties before inherited ones.
func (c *Class[T]) ReverseList() *Class[T] {
	c.reverse = true
	return c
}

// IsReversed returns whether ReverseList was called.
func (c *Class[T]) IsReversed() bool { return c.reverse }

// Constants returns the enumeration constants of c.
func (c *Class[T]) Constants() []Constant { return slices.Clone(c.consts) }

// Signals returns the signals declared by c.
func (c *Class[T]) Signals() []string { return slices.Clone(c.signals) }

// HasSignal returns whether c declares signal.
func (c *Class[T]) HasSignal(signal string) bool { return slices.Contains(c.signals, signal) }

// Lookup returns the Info of a static property.
func (c *Class[T]) Lookup(name string) (Info, bool) {
	i, ok := c.index[name]
	if !ok {
		return Info{}, false
	}
	return c.props[i].Info, true
}

// List lists the properties of obj.
// The default order is inherited, own, then dynamic
// properties; ReverseList inverts the order of these
// groups.
func (c *Class[T]) List(obj T) []Info {
	inh := make([]Info, 0, c.inherited)
	own := make([]Info, 0, len(c.props)-c.inherited)
	for i, p := range c.props {
		if i < c.inherited {
			inh = append(inh, p.Info)
		} else {
			own = append(own, p.Info)
		}
	}
	var dyn []Info
	if c.dyn != nil && c.dyn.List != nil {
		dyn = c.dyn.List(obj)
	}
	if c.reverse {
		return slices.Concat(dyn, own, inh)
	}
	return slices.Concat(inh, own, dyn)
}

// Get gets the value of a property of obj.
func (c *Class[T]) Get(obj T, name string) (any, error) {
	if i, ok := c.index[name]; ok {
		return c.props[i].Get(obj), nil
	}
	if c.dyn != nil && c.dyn.Get != nil {
		if v, ok := c.dyn.Get(obj, name); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknown, c.name, name)
}

// Set sets the value of a property of obj.
// value is converted to the property's type first.
func (c *Class[T]) Set(obj T, name string, value any) error {
	if i, ok := c.index[name]; ok {
		p := &c.props[i]
		if p.Set == nil {
			return fmt.Errorf("%w: %s.%s", ErrReadOnly, c.name, name)
		}
		if p.Type != variant.Object {
			v, err := variant.Convert(value, p.Type)
			if err != nil {
				return fmt.Errorf("prop: %s.%s: %w", c.name, name, err)
			}
			value = v
		}
		return p.Set(obj, value)
	}
	if c.dyn != nil && c.dyn.Set != nil {
		if ok, err := c.dyn.Set(obj, name, value); ok || err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknown, c.name, name)
}
