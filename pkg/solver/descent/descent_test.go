package descent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/solver"
	"github.com/skystack-labs/skygp/pkg/unit"
)

func key(path, symbol string) gp.Key {
	return gp.Key{Path: path, Symbol: symbol}
}

func TestHoverThrustEqualsWeight(t *testing.T) {
	// A single hover segment: thrust balances a fixed 3000 lbf weight.
	b := model.NewBuilder("hover")
	thrust := b.Var("T", unit.Lbf, "Total thrust")
	weight := b.Lit("W", 3000, unit.Lbf, "Vehicle weight")
	b.Equal("thrust balance", thrust.Mon(), weight.Mon())
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	sol, err := New().Solve(context.Background(), solver.Problem{
		Objective: thrust.Mon(),
		System:    sys,
	})
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	got := sol.Variables[key("hover", "T")]
	assert.Equal(t, unit.Lbf, got.Unit())
	assert.InDelta(t, 3000, got.Value(), 1e-6)

	// The fixed weight comes back as a constant.
	w, ok := sol.Value(key("hover", "W"))
	require.True(t, ok)
	assert.InDelta(t, 3000, w.Value(), 1e-12)
}

func TestEqualityChainPropagation(t *testing.T) {
	b := model.NewBuilder("chain")
	a := b.Var("a", unit.Meter, "")
	bb := b.Var("b", unit.Meter, "")
	c := b.Lit("c", 2, unit.Meter, "")
	b.Equal("a from b", a.Mon(), bb.Mon().Scale(2))
	b.Equal("b from c", bb.Mon(), c.Mon().Scale(3))
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	sol, err := New().Solve(context.Background(), solver.Problem{Objective: a.Mon(), System: sys})
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)
	assert.InDelta(t, 6, sol.Variables[key("chain", "b")].Value(), 1e-9)
	assert.InDelta(t, 12, sol.Variables[key("chain", "a")].Value(), 1e-9)
}

func TestTwoSegmentEnergyBudget(t *testing.T) {
	// Hover and cruise energies pinned by substitution at 5 and 10 kWh; the
	// minimized total must land on the 15 kWh budget boundary.
	b := model.NewBuilder("mission")
	total := b.Var("E_total", unit.KilowattHour, "Total mission energy")
	e1 := b.Var("E_hover", unit.KilowattHour, "Hover energy")
	e2 := b.Var("E_cruise", unit.KilowattHour, "Cruise energy")
	b.GreaterEq("energy budget", total.Mon(), b.Sum(e1.Mon(), e2.Mon()))
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	subs := gp.Substitutions{}.
		Set(key("mission", "E_hover"), unit.New(5, unit.KilowattHour)).
		Set(key("mission", "E_cruise"), unit.New(10, unit.KilowattHour))

	sol, err := New().Solve(context.Background(), solver.Problem{
		Objective:     total.Mon(),
		System:        sys,
		Substitutions: subs,
	})
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	got := sol.Variables[key("mission", "E_total")]
	assert.InEpsilon(t, 15, got.Value(), 1e-3)
	assert.GreaterOrEqual(t, got.Value(), 14.99)
}

func TestConflictingPinsInfeasible(t *testing.T) {
	// Thrust and weight both fixed, to conflicting values, with a
	// thrust-equals-weight constraint: terminal Infeasible, no partial
	// solution.
	b := model.NewBuilder("hover")
	thrust := b.Lit("T", 2000, unit.Lbf, "Total thrust")
	weight := b.Lit("W", 3000, unit.Lbf, "Vehicle weight")
	b.Equal("thrust balance", thrust.Mon(), weight.Mon())
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	sol, err := New().Solve(context.Background(), solver.Problem{Objective: thrust.Mon(), System: sys})
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, sol.Status)
	assert.Empty(t, sol.Variables)
}

func TestConflictingEqualitiesInfeasible(t *testing.T) {
	b := model.NewBuilder("m")
	x := b.Var("x", unit.Meter, "")
	one := b.Lit("one", 1, unit.Meter, "")
	b.Equal("pin low", x.Mon(), one.Mon().Scale(2))
	b.Equal("pin high", x.Mon(), one.Mon().Scale(3))
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	sol, err := New().Solve(context.Background(), solver.Problem{Objective: x.Mon(), System: sys})
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, sol.Status)
}

func TestSubstitutionErrorsPassThrough(t *testing.T) {
	b := model.NewBuilder("m")
	x := b.Var("x", unit.Meter, "")
	b.Equal("self", x.Mon(), x.Mon())
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	subs := gp.Substitutions{}.Set(key("m", "missing"), unit.New(1, unit.Meter))
	_, err = New().Solve(context.Background(), solver.Problem{Objective: x.Mon(), System: sys, Substitutions: subs})
	var target *solver.SubstitutionTargetError
	require.ErrorAs(t, err, &target)
}

func TestUnitsConvertedOnSolvedValues(t *testing.T) {
	// Constraint stated in newtons, variable declared in lbf: the solution
	// must come back in the declared unit.
	b := model.NewBuilder("m")
	f := b.Var("F", unit.Lbf, "Force")
	ref := b.Lit("F_ref", 4448.2216152605, unit.Newton, "Reference force")
	b.Equal("match", f.Mon(), ref.Mon())
	n, err := b.Node()
	require.NoError(t, err)
	sys, err := model.Flatten(n)
	require.NoError(t, err)

	sol, err := New().Solve(context.Background(), solver.Problem{Objective: f.Mon(), System: sys})
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)
	got := sol.Variables[key("m", "F")]
	assert.Equal(t, unit.Lbf, got.Unit())
	assert.InDelta(t, 1000, got.Value(), 1e-6)
}
