// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package object provides identity, signals and
// property-change notifications for scene nodes and
// resources.
package object

import (
	"slices"
	"sync/atomic"
)

// ID identifies an Object for the lifetime of the
// process. IDs are never reused.
type ID uint64

var lastID atomic.Uint64

// Conn identifies a connection made by Object.Connect
// or Object.OnChange.
type Conn int

type slot struct {
	conn Conn
	fn   func(args ...any)
}

// Object is meant to be embedded. The zero value is
// ready for use; the ID is assigned on first request.
type Object struct {
	id      ID
	next    Conn
	signals map[string][]slot
	changed []slot
}

// ID returns the object's ID.
func (o *Object) ID() ID {
	if o.id == 0 {
		o.id = ID(lastID.Add(1))
	}
	return o.id
}

// Connect calls fn whenever signal is emitted.
func (o *Object) Connect(signal string, fn func(args ...any)) Conn {
	if o.signals == nil {
		o.signals = make(map[string][]slot)
	}
	o.next++
	o.signals[signal] = append(o.signals[signal], slot{o.next, fn})
	return o.next
}

// Disconnect removes a connection made by Connect.
// It returns false if conn is not connected to signal.
func (o *Object) Disconnect(signal string, conn Conn) bool {
	s := o.signals[signal]
	i := slices.IndexFunc(s, func(x slot) bool { return x.conn == conn })
	if i < 0 {
		return false
	}
	o.signals[signal] = slices.Delete(s, i, i+1)
	return true
}

// Connections returns the number of connections to
// signal.
func (o *Object) Connections(signal string) int { return len(o.signals[signal]) }

// Emit calls every function connected to signal, in
// connection order.
// Connections made or removed by the callees take
// effect on the next emission.
func (o *Object) Emit(signal string, args ...any) {
	for _, s := range slices.Clone(o.signals[signal]) {
		s.fn(args...)
	}
}

// OnChange calls fn with the property name whenever a
// property change is notified.
func (o *Object) OnChange(fn func(property string)) Conn {
	o.next++
	o.changed = append(o.changed, slot{o.next, func(args ...any) { fn(args[0].(string)) }})
	return o.next
}

// RemoveOnChange removes a connection made by OnChange.
func (o *Object) RemoveOnChange(conn Conn) bool {
	i := slices.IndexFunc(o.changed, func(x slot) bool { return x.conn == conn })
	if i < 0 {
		return false
	}
	o.changed = slices.Delete(o.changed, i, i+1)
	return true
}

// NotifyChange notifies that property has changed.
// An empty name means that the property list itself
// changed.
func (o *Object) NotifyChange(property string) {
	for _, s := range slices.Clone(o.changed) {
		s.fn(property)
	}
}
