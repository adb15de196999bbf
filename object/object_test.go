// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	var a, b Object
	ida := a.ID()
	assert.NotZero(t, ida)
	assert.Equal(t, ida, a.ID(), "ID must be stable")
	assert.NotEqual(t, ida, b.ID())
}

func TestSignals(t *testing.T) {
	var o Object
	var got []string
	c1 := o.Connect("changed", func(args ...any) { got = append(got, "c1") })
	o.Connect("changed", func(args ...any) { got = append(got, args[0].(string)) })
	o.Connect("other", func(...any) { t.Fatal("unexpected emission") })
	assert.Equal(t, 2, o.Connections("changed"))

	o.Emit("changed", "c2")
	assert.Equal(t, []string{"c1", "c2"}, got)

	assert.True(t, o.Disconnect("changed", c1))
	assert.False(t, o.Disconnect("changed", c1))
	assert.False(t, o.Disconnect("missing", c1))
	got = nil
	o.Emit("changed", "x")
	assert.Equal(t, []string{"x"}, got)
	o.Emit("unknown")
}

func TestEmitDuringDisconnect(t *testing.T) {
	var o Object
	var n int
	var c Conn
	c = o.Connect("s", func(...any) {
		n++
		o.Disconnect("s", c)
	})
	o.Connect("s", func(...any) { n++ })
	o.Emit("s")
	assert.Equal(t, 2, n)
	o.Emit("s")
	assert.Equal(t, 3, n)
}

func TestNotifyChange(t *testing.T) {
	var o Object
	var props []string
	c := o.OnChange(func(p string) { props = append(props, p) })
	o.NotifyChange("a")
	o.NotifyChange("")
	assert.Equal(t, []string{"a", ""}, props)
	assert.True(t, o.RemoveOnChange(c))
	assert.False(t, o.RemoveOnChange(c))
	o.NotifyChange("b")
	assert.Len(t, props, 2)
}
