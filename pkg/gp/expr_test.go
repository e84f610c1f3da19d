package gp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/unit"
)

func freeVar(symbol string, u unit.Unit) *Variable {
	return NewVariable("test", symbol, u, "")
}

func TestMonomialCanonicalMergesFactors(t *testing.T) {
	r := freeVar("R", unit.Foot)
	m := r.Mon().Mul(r.Mon()) // R * R
	require.Len(t, m.Factors, 1)
	assert.Equal(t, 2.0, m.Factors[0].Exp)
	assert.True(t, m.Dims().Equal(unit.SquareFoot.Dims))
}

func TestMonomialDivCancels(t *testing.T) {
	v := freeVar("V", unit.MPH)
	m := v.Mon().Div(v.Mon())
	assert.Empty(t, m.Factors)
	assert.True(t, m.Dims().Dimensionless())
}

func TestMonomialPowScalesExponentsAndCoeff(t *testing.T) {
	ct := freeVar("CT", unit.Dimensionless)
	m := Mon(2, ct).Pow(1.5)
	require.Len(t, m.Factors, 1)
	assert.InDelta(t, 1.5, m.Factors[0].Exp, 1e-12)
	assert.InDelta(t, 2.828427124746190, m.Coeff, 1e-12)
}

func TestSumRejectsMixedDims(t *testing.T) {
	w := freeVar("W", unit.Lbf)
	d := freeVar("d", unit.Meter)
	_, err := Sum(w.Mon(), d.Mon())
	var mismatch *UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "sum", mismatch.Op)
}

func TestSumAcceptsCompatibleTerms(t *testing.T) {
	a := freeVar("a", unit.Lbf)
	b := freeVar("b", unit.Lbf)
	p, err := Sum(a.Mon(), b.Mon().Scale(2))
	require.NoError(t, err)
	assert.Len(t, p.Monos, 2)
	assert.True(t, p.Dims().Equal(unit.Lbf.Dims))
}

func TestEqualRejectsDimMismatch(t *testing.T) {
	w := freeVar("W", unit.Lbf)
	e := freeVar("E", unit.KilowattHour)
	_, err := Equal("bad", w.Mon(), e.Mon())
	var mismatch *UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestConstraintRejectsNonPositiveCoeff(t *testing.T) {
	a := freeVar("a", unit.Dimensionless)
	b := freeVar("b", unit.Dimensionless)
	_, err := Equal("neg", a.Mon().Scale(-1), b.Mon())
	var form *FormError
	require.ErrorAs(t, err, &form)

	_, err = Equal("zero", a.Mon().Scale(0), b.Mon())
	require.ErrorAs(t, err, &form)
}

func TestConstraintKeysDeduplicated(t *testing.T) {
	a := freeVar("a", unit.Lbf)
	b := freeVar("b", unit.Lbf)
	p, err := Sum(a.Mon(), a.Mon().Scale(3), b.Mon())
	require.NoError(t, err)
	c, err := GreaterEq("sum", b.Mon().Scale(10), p)
	require.NoError(t, err)
	assert.Len(t, c.Keys(), 2)
}

func TestKeyString(t *testing.T) {
	v := NewVariable("aircraft/battery", "C", unit.KilowattHour, "Battery capacity")
	assert.Equal(t, "aircraft/battery.C", v.Key().String())
}

func TestFixedVariable(t *testing.T) {
	g := NewConstant("aircraft", "g", unit.New(9.807, unit.MeterPerSecondSquared), "Gravitational acceleration")
	q, ok := g.Fixed()
	require.True(t, ok)
	assert.InDelta(t, 9.807, q.Value(), 1e-12)

	mtow := NewVariable("aircraft", "MTOW", unit.Lbf, "Takeoff weight")
	_, ok = mtow.Fixed()
	assert.False(t, ok)
}
