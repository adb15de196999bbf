// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/visual/linear"
	"github.com/gviegas/visual/server"
)

// fmt.Stringer for testing only.
// n.Name must have been set in order to produce
// meaningful output.
func (n *Node) String() string {
	const s = `
(%5s) <-> (%5s) <-> (%5s)
               |
               v
            (%5s)
`
	nd := [4]*Node{n.prev, n, n.next, n.sub}
	nm := [4]string{}
	for i := range nd {
		if nd[i] != nil {
			nm[i] = nd[i].Name
		} else {
			nm[i] = "<nil>"
		}
	}
	return fmt.Sprintf(s, nm[0], nm[1], nm[2], nm[3])
}

// logGraph outputs the scene graph whose root is n.
func (n *Node) logGraph(t *testing.T) {
	s := n.String()
	n.ForEach(func(n *Node) {
		s += n.String()
	})
	t.Log(s)
}

// testInsert calls n.Insert and checks that it works
// as expected.
func (n *Node) testInsert(sub *Node, t *testing.T) {
	n.Insert(sub)
	require.Same(t, sub, n.sub, "n.Insert: n.sub\n%v", n)
	require.Same(t, n, sub.prev, "n.Insert: sub.prev\n%v", sub)
	require.Same(t, n, sub.Parent())
}

// testRemove calls n.Remove and checks that it works
// as expected.
func (n *Node) testRemove(t *testing.T) {
	var anc, sub *Node
	if x := n.prev; x != nil && n == x.sub {
		anc = x
		sub = n.next
	}
	n.Remove()
	require.Nil(t, n.next, "n.Remove: n.next\n%v", n)
	require.Nil(t, n.prev, "n.Remove: n.prev\n%v", n)
	require.Nil(t, n.Parent())
	if anc != nil {
		require.Same(t, sub, anc.sub, "n.Remove: anc.sub\n%v", anc)
	}
}

func names(s []*Node) (nm []string) {
	for _, n := range s {
		nm = append(nm, n.Name)
	}
	return
}

func newNamed(name string) *Node {
	n := New()
	n.Name = name
	return n
}

func TestNode(t *testing.T) {
	n1 := newNamed("n1")
	n2 := newNamed("n2")
	n3 := newNamed("n3")
	n4 := newNamed("n4")
	n5 := newNamed("n5")

	n1.testInsert(n2, t)
	n1.testInsert(n3, t)
	n1.testInsert(n4, t)
	n3.testInsert(n5, t)
	n1.logGraph(t)
	assert.Equal(t, []string{"n4", "n3", "n2"}, names(n1.Children()))
	var order []*Node
	n1.ForEach(func(n *Node) { order = append(order, n) })
	assert.Equal(t, []string{"n4", "n3", "n2", "n5"}, names(order))
	assert.Same(t, n1, n5.Ancestor(func(n *Node) bool { return n.Name == "n1" }))
	assert.Nil(t, n5.Ancestor(func(n *Node) bool { return n.Name == "n4" }))

	n2.testRemove(t)
	n3.testRemove(t)
	n1.testRemove(t)
	n5.testRemove(t)
	n4.testRemove(t)
	assert.Empty(t, n1.Children())

	n5.testInsert(n4, t)
	n4.testInsert(n3, t)
	n3.testInsert(n2, t)
	n2.testInsert(n1, t)
	n5.logGraph(t)
	n1.testRemove(t)
	n2.testRemove(t)
	n3.testRemove(t)
	n4.testRemove(t)

	n1.testInsert(n2, t)
	n2.testInsert(n3, t)
	n1.testInsert(n2, t)
	n1.testInsert(n3, t)
	assert.Equal(t, []string{"n3", "n2"}, names(n1.Children()))
	assert.Empty(t, n2.Children())
	n2.testRemove(t)
	n3.testInsert(n2, t)
	n1.logGraph(t)

	var n int
	n1.Until(func(*Node) bool { n++; return false })
	assert.Equal(t, 1, n)
}

// recorder records the notifications of a node.
type recorder struct {
	Node
	log *[]string
}

func newRecorder(name string, log *[]string) *recorder {
	r := &recorder{log: log}
	r.Init(r)
	r.Name = name
	return r
}

func (r *recorder) Notify(what Notification) {
	*r.log = append(*r.log, r.Name+":"+what.String())
}

func TestLifecycle(t *testing.T) {
	srv := server.NewMem(nil)
	w := NewWorld(srv)
	require.True(t, w.Scenario().IsValid())
	tr := NewTree(w)
	assert.Same(t, w, tr.World())
	assert.Same(t, w, tr.Root().World())

	var log []string
	a := newRecorder("a", &log)
	b := newRecorder("b", &log)
	c := newRecorder("c", &log)
	a.Insert(&b.Node)
	b.Insert(&c.Node)
	assert.Empty(t, log, "no notifications outside a world")
	assert.False(t, c.IsInWorld())

	tr.Root().Insert(&a.Node)
	assert.Equal(t, []string{
		"a:EnterWorld", "a:TransformChanged",
		"b:EnterWorld", "b:TransformChanged",
		"c:EnterWorld", "c:TransformChanged",
	}, log)
	assert.Same(t, w, c.World())

	log = nil
	b.SetTransform(linear.Transform{})
	assert.Equal(t, []string{"b:TransformChanged", "c:TransformChanged"}, log)

	log = nil
	a.Remove()
	assert.Equal(t, []string{"c:ExitWorld", "b:ExitWorld", "a:ExitWorld"}, log)
	assert.False(t, a.IsInWorld())
	assert.Nil(t, c.World())

	log = nil
	tr.Root().Insert(&c.Node)
	assert.Equal(t, []string{"c:EnterWorld", "c:TransformChanged"}, log)
	assert.Empty(t, b.Children())

	log = nil
	tr.Clear()
	assert.Equal(t, []string{"c:ExitWorld"}, log)

	w.Free()
	assert.Equal(t, server.Nil, w.Scenario())
	assert.Equal(t, 0, srv.Live())
	w.Free()
	assert.Equal(t, 0, srv.Misuse())
}

func TestGlobalTransform(t *testing.T) {
	var tp, tc linear.Transform
	tp.I()
	tp.Origin = linear.V3{1, 2, 3}
	tc.I()
	tc.Basis.Scale(2, 2, 2)
	tc.Origin = linear.V3{1, 0, 0}

	p := newNamed("p")
	c := newNamed("c")
	p.Insert(c)
	assert.Equal(t, linear.Identity(), c.GlobalTransform())

	p.SetTransform(tp)
	c.SetTransform(tc)
	g := c.GlobalTransform()
	assert.Equal(t, linear.V3{2, 2, 3}, g.Origin)
	assert.Equal(t, linear.V3{4, 2, 3}, g.Xform(linear.V3{1, 0, 0}))

	tp.Origin = linear.V3{}
	p.SetTransform(tp)
	g = c.GlobalTransform()
	assert.Equal(t, linear.V3{1, 0, 0}, g.Origin, "ancestor changes must invalidate descendants")

	c.Remove()
	assert.Equal(t, tc, c.GlobalTransform())
	assert.Equal(t, tc, c.Transform())
}
