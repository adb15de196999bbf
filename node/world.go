// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"github.com/gviegas/visual/server"
)

// World is a scenario in a rendering server.
// Nodes of a Tree that is bound to a World are said
// to be in that world.
type World struct {
	srv      server.Server
	scenario server.RID
}

// NewWorld creates a new world using srv.
func NewWorld(srv server.Server) *World {
	return &World{srv: srv, scenario: srv.ScenarioCreate()}
}

// Server returns the rendering server of w.
func (w *World) Server() server.Server { return w.srv }

// Scenario returns the scenario of w.
// It returns server.Nil after w.Free is called.
func (w *World) Scenario() server.RID { return w.scenario }

// Free releases the scenario of w.
// Trees using w must be discarded first.
func (w *World) Free() {
	if w.scenario.IsValid() {
		w.srv.Free(w.scenario)
		w.scenario = server.Nil
	}
}

// Tree is a scene tree whose root is in a world.
type Tree struct {
	root  Node
	world *World
}

// NewTree creates a new tree bound to w.
func NewTree(w *World) *Tree {
	t := &Tree{world: w}
	t.root.Init(nil)
	t.root.Name = "root"
	t.root.world = w
	return t
}

// Root returns the root node of t.
// Nodes inserted into the root, directly or not,
// enter t's world.
func (t *Tree) Root() *Node { return &t.root }

// World returns the world of t.
func (t *Tree) World() *World { return t.world }

// Clear removes every node from t.
func (t *Tree) Clear() {
	for _, n := range t.root.Children() {
		n.Remove()
	}
}
