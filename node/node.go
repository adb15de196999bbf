// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene tree.
//
// Nodes form a graph in which each node has at most one
// immediate ancestor. A node is in a world when it
// descends from the root of a Tree; lifecycle
// notifications are delivered to the node's Receiver as
// it enters or leaves a world and as its global
// transform changes.
package node

import (
	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/object"
)

// Notification is a lifecycle notification.
type Notification int

// Notifications.
const (
	// The node entered a world.
	// Sent ancestors first.
	EnterWorld Notification = iota + 1
	// The node's global transform changed.
	// Sent after EnterWorld and whenever the local
	// transform of the node or of any ancestor
	// changes while in a world.
	TransformChanged
	// The node is about to leave its world.
	// Sent descendants first.
	ExitWorld
)

func (n Notification) String() string {
	switch n {
	case EnterWorld:
		return "EnterWorld"
	case TransformChanged:
		return "TransformChanged"
	case ExitWorld:
		return "ExitWorld"
	}
	return "Notification(?)"
}

// Receiver receives lifecycle notifications.
type Receiver interface {
	Notify(what Notification)
}

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
//
// Node is meant to be embedded in a type that
// implements Receiver; see Init.
type Node struct {
	object.Object

	next   *Node
	prev   *Node
	sub    *Node
	parent *Node

	self   Receiver
	local  linear.Transform
	global linear.Transform
	dirty  bool
	world  *World

	// Name for the node.
	// It is not used by node code.
	Name string
}

// New creates an initialized node that has no
// Receiver.
func New() *Node { return new(Node).Init(nil) }

// Init initializes node n.
// self is the value that receives n's notifications,
// usually the struct in which n is embedded. It may
// be nil.
func (n *Node) Init(self Receiver) *Node {
	n.self = self
	n.local.I()
	n.global.I()
	n.dirty = false
	return n
}

// Self returns the Receiver given to Init.
func (n *Node) Self() Receiver { return n.self }

// Parent returns the immediate ancestor of n, or nil.
func (n *Node) Parent() *Node { return n.parent }

// World returns the world n is in, or nil.
func (n *Node) World() *World { return n.world }

// IsInWorld returns whether n is in a world.
func (n *Node) IsInWorld() bool { return n.world != nil }

// Insert inserts node sub as immediate descendant
// of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
// If sub was in a world, it leaves it first. If n is
// in a world, sub and its descendants enter it.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	sub.next = n.sub
	sub.prev = n
	if n.sub != nil {
		n.sub.prev = sub
	}
	n.sub = sub
	sub.parent = n
	sub.invalidate()
	if n.world != nil {
		sub.enterWorld(n.world)
	}
}

// Remove removes node n from its immediate ancestor.
// If n is in a world, n and its descendants leave it.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	if n.world != nil {
		n.exitWorld()
	}
	// Node.prev refers to the ancestor when n is
	// the first immediate descendant.
	if n.prev.sub == n {
		n.prev.sub = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev = nil
	n.next = nil
	n.parent = nil
	n.invalidate()
}

// Children returns the immediate descendants of n,
// most recently inserted first.
func (n *Node) Children() (s []*Node) {
	for nd := n.sub; nd != nil; nd = nd.next {
		s = append(s, nd)
	}
	return
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(nd *Node) bool {
		f(nd)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}

// Ancestor returns the nearest ancestor of n for
// which f returns true, or nil.
func (n *Node) Ancestor(f func(*Node) bool) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if f(p) {
			return p
		}
	}
	return nil
}

// preorder calls f for n and its descendants,
// ancestors first.
func (n *Node) preorder(f func(*Node)) {
	f(n)
	for nd := n.sub; nd != nil; nd = nd.next {
		nd.preorder(f)
	}
}

// postorder calls f for n and its descendants,
// descendants first.
func (n *Node) postorder(f func(*Node)) {
	for nd := n.sub; nd != nil; nd = nd.next {
		nd.postorder(f)
	}
	f(n)
}

func (n *Node) notify(what Notification) {
	if n.self != nil {
		n.self.Notify(what)
	}
}

func (n *Node) enterWorld(w *World) {
	n.preorder(func(nd *Node) {
		nd.world = w
		nd.notify(EnterWorld)
		nd.notify(TransformChanged)
	})
}

func (n *Node) exitWorld() {
	n.postorder(func(nd *Node) {
		nd.notify(ExitWorld)
		nd.world = nil
	})
}

// invalidate marks the global transform of n and of
// its descendants as stale.
func (n *Node) invalidate() {
	n.preorder(func(nd *Node) { nd.dirty = true })
}

// Transform returns the local transform of n.
func (n *Node) Transform() linear.Transform { return n.local }

// SetTransform sets the local transform of n.
// If n is in a world, n and its descendants are
// notified that their global transforms changed.
func (n *Node) SetTransform(t linear.Transform) {
	n.local = t
	n.invalidate()
	if n.world != nil {
		n.preorder(func(nd *Node) { nd.notify(TransformChanged) })
	}
}

// GlobalTransform returns the transform of n relative
// to the root of its graph.
func (n *Node) GlobalTransform() linear.Transform {
	if n.dirty {
		if n.parent != nil {
			pg := n.parent.GlobalTransform()
			n.global.Mul(&pg, &n.local)
		} else {
			n.global = n.local
		}
		n.dirty = false
	}
	return n.global
}
