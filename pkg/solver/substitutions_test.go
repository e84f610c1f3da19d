package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

func demoSystem(t *testing.T) *model.System {
	t.Helper()
	b := model.NewBuilder("vehicle")
	w := b.Var("W", unit.Lbf, "Weight")
	ta := b.Var("T_A", unit.LbfPerSquareFoot, "Disk loading")
	g := b.Lit("g", 9.807, unit.MeterPerSecondSquared, "Gravitational acceleration")
	b.Equal("self", w.Mon(), w.Mon())
	b.Equal("self2", ta.Mon(), ta.Mon())
	b.Equal("self3", g.Mon(), g.Mon())
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)
	return sys
}

func TestApplySubstitutions(t *testing.T) {
	sys := demoSystem(t)
	subs := gp.Substitutions{}.
		Set(gp.Key{Path: "vehicle", Symbol: "T_A"}, unit.New(16.3, unit.LbfPerSquareFoot))
	pinned, err := ApplySubstitutions(sys, subs)
	require.NoError(t, err)

	// Build-time parameter echoed back alongside the substitution.
	assert.Len(t, pinned, 2)
	assert.InDelta(t, 16.3, pinned[gp.Key{Path: "vehicle", Symbol: "T_A"}].Value(), 1e-12)
	assert.InDelta(t, 9.807, pinned[gp.Key{Path: "vehicle", Symbol: "g"}].Value(), 1e-12)
}

func TestSubstitutionConvertsToDeclaredUnit(t *testing.T) {
	sys := demoSystem(t)
	subs := gp.Substitutions{}.
		Set(gp.Key{Path: "vehicle", Symbol: "W"}, unit.New(4.4482216152605, unit.Newton))
	pinned, err := ApplySubstitutions(sys, subs)
	require.NoError(t, err)
	q := pinned[gp.Key{Path: "vehicle", Symbol: "W"}]
	assert.Equal(t, unit.Lbf, q.Unit())
	assert.InDelta(t, 1, q.Value(), 1e-12)
}

func TestSubstitutionUnknownTarget(t *testing.T) {
	sys := demoSystem(t)
	subs := gp.Substitutions{}.
		Set(gp.Key{Path: "vehicle", Symbol: "nope"}, unit.New(1, unit.Lbf))
	_, err := ApplySubstitutions(sys, subs)
	var target *SubstitutionTargetError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "nope", target.Key.Symbol)
	// The system is left unmodified.
	assert.Len(t, sys.Variables, 3)
}

func TestSubstitutionAlreadyFixed(t *testing.T) {
	sys := demoSystem(t)
	subs := gp.Substitutions{}.
		Set(gp.Key{Path: "vehicle", Symbol: "g"}, unit.New(1, unit.MeterPerSecondSquared))
	_, err := ApplySubstitutions(sys, subs)
	var target *SubstitutionTargetError
	require.ErrorAs(t, err, &target)
}

func TestSubstitutionDimensionMismatch(t *testing.T) {
	sys := demoSystem(t)
	subs := gp.Substitutions{}.
		Set(gp.Key{Path: "vehicle", Symbol: "W"}, unit.New(1, unit.Second))
	_, err := ApplySubstitutions(sys, subs)
	var target *SubstitutionTargetError
	require.ErrorAs(t, err, &target)
}
