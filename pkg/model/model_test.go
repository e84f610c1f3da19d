package model

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// leaf builds a node owning a free variable "E" plus a fixed "t".
func leaf(t *testing.T, path string) *Node {
	t.Helper()
	b := NewBuilder(path)
	e := b.Var("E", unit.KilowattHour, "Segment energy")
	tv := b.Lit("t", 120, unit.Second, "Segment time")
	p := b.Var("P", unit.Kilowatt, "Segment power")
	b.Equal("energy balance", e.Mon(), p.Mon().Mul(tv.Mon()))
	n, err := b.Node()
	require.NoError(t, err)
	return n
}

func group(t *testing.T, path string, children ...Constrainable) *Node {
	t.Helper()
	b := NewBuilder(path)
	for _, c := range children {
		b.Child(c)
	}
	n, err := b.Node()
	require.NoError(t, err)
	return n
}

func TestBuilderDuplicateSymbol(t *testing.T) {
	b := NewBuilder("vehicle")
	b.Var("W", unit.Lbf, "Weight")
	b.Var("W", unit.Lbf, "Weight again")
	_, err := b.Node()
	var dup *DuplicateSymbolError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "vehicle", dup.Path)
	assert.Equal(t, "W", dup.Symbol)
}

func TestBuilderStickyError(t *testing.T) {
	b := NewBuilder("vehicle")
	w := b.Var("W", unit.Lbf, "Weight")
	d := b.Var("d", unit.Meter, "Length")
	b.Equal("bad dims", w.Mon(), d.Mon())
	// Later well-formed constraints do not clear the failure.
	b.Equal("fine", w.Mon(), w.Mon())
	_, err := b.Node()
	var mismatch *gp.UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestMultipleInstancesDoNotCollide(t *testing.T) {
	segA := leaf(t, "mission/takeoff")
	segB := leaf(t, "mission/landing")
	sys, err := Flatten(group(t, "mission", segA, segB))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, v := range sys.Variables {
		key := v.Key().String()
		assert.False(t, names[key], "qualified name %s repeated", key)
		names[key] = true
	}
	assert.Len(t, sys.Variables, 6)
}

func TestFlattenDetectsPathCollision(t *testing.T) {
	segA := leaf(t, "mission/hover")
	segB := leaf(t, "mission/hover")
	_, err := Flatten(group(t, "mission", segA, segB))
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "mission/hover", collision.Path)
}

// constraint multiset as label-sorted strings
func flatLabels(sys *System) []string {
	out := make([]string, len(sys.Constraints))
	for i, c := range sys.Constraints {
		out[i] = c.Label + ":" + c.String()
	}
	sort.Strings(out)
	return out
}

func TestFlattenAssociative(t *testing.T) {
	build := func() (a, b, c *Node) {
		return leaf(t, "a"), leaf(t, "b"), leaf(t, "c")
	}

	a1, b1, c1 := build()
	left, err := Flatten(group(t, "g1", group(t, "g2", a1, b1), c1))
	require.NoError(t, err)

	a2, b2, c2 := build()
	right, err := Flatten(group(t, "g1", a2, group(t, "g2", b2, c2)))
	require.NoError(t, err)

	assert.Equal(t, flatLabels(left), flatLabels(right))
}

func TestFlattenRejectsForeignVariable(t *testing.T) {
	other := leaf(t, "elsewhere")
	b := NewBuilder("root")
	w := b.Var("W", unit.KilowattHour, "Budget")
	borrowed, ok := other.Lookup("E")
	require.True(t, ok)
	b.GreaterEq("budget", w.Mon(), borrowed.Mon().Posy())
	n, err := b.Node()
	require.NoError(t, err)

	// "elsewhere" is referenced but never composed into the tree.
	_, err = Flatten(n)
	var unresolved *UnresolvedVariableError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "elsewhere", unresolved.Path)
}

func TestResolveOwnBeforeDescendants(t *testing.T) {
	child := leaf(t, "parent/seg")
	b := NewBuilder("parent")
	own := b.Var("E", unit.KilowattHour, "Parent energy")
	b.Child(child)
	n, err := b.Node()
	require.NoError(t, err)

	got, err := Resolve(n, "E")
	require.NoError(t, err)
	assert.Same(t, own, got)
}

func TestResolveDescendant(t *testing.T) {
	child := leaf(t, "parent/seg")
	parent := group(t, "parent", child)

	got, err := Resolve(parent, "P")
	require.NoError(t, err)
	assert.Equal(t, "parent/seg", got.Path())
}

func TestResolveUnresolved(t *testing.T) {
	n := leaf(t, "seg")
	_, err := Resolve(n, "nope")
	var unresolved *UnresolvedVariableError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "seg", unresolved.Path)
}

func TestResolveAmbiguousAcrossSiblings(t *testing.T) {
	// The same symbol exists in two unrelated sibling subtrees; a lookup from
	// the common ancestor without an owner path must fail.
	root := group(t, "root", leaf(t, "root/left"), leaf(t, "root/right"))
	_, err := Resolve(root, "E")
	var ambiguous *AmbiguousVariableError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"root/left", "root/right"}, ambiguous.Paths)

	// Disambiguating by owner path succeeds.
	v, err := ResolveAt(root, "root/right", "E")
	require.NoError(t, err)
	assert.Equal(t, "root/right", v.Path())
}

func TestFlattenLeavesNodeConstraintListsIntact(t *testing.T) {
	seg := leaf(t, "seg")
	before := len(seg.Constraints())
	_, err := Flatten(group(t, "root", seg))
	require.NoError(t, err)
	assert.Len(t, seg.Constraints(), before)
}
