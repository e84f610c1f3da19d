package unit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertRoundTrip(t *testing.T) {
	pairs := []struct {
		name string
		a, b Unit
	}{
		{"lbf-N", Lbf, Newton},
		{"kWh-Wh", KilowattHour, WattHour},
		{"kWh-J", KilowattHour, Joule},
		{"nmi-m", NauticalMile, Meter},
		{"mph-fps", MPH, FootPerSecond},
		{"hr-s", Hour, Second},
		{"ft2-m2", SquareFoot, SquareMeter},
		{"mph-kt", MPH, Knot},
		{"min-yr", Minute, Year},
	}
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			q := New(3.25, tc.a)
			there, err := q.Convert(tc.b)
			require.NoError(t, err)
			back, err := there.Convert(tc.a)
			require.NoError(t, err)
			assert.InEpsilon(t, q.Value(), back.Value(), 1e-12)
		})
	}
}

func TestConvertKnownValues(t *testing.T) {
	q, err := New(1, Lbf).Convert(Newton)
	require.NoError(t, err)
	assert.InDelta(t, 4.4482216152605, q.Value(), 1e-12)

	q, err = New(1, KilowattHour).Convert(WattHour)
	require.NoError(t, err)
	assert.InDelta(t, 1000, q.Value(), 1e-9)

	q, err = New(100, NauticalMile).Convert(Meter)
	require.NoError(t, err)
	assert.InDelta(t, 185200, q.Value(), 1e-6)
}

func TestConvertIncompatible(t *testing.T) {
	_, err := New(1, Lbf).Convert(Meter)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "convert", mismatch.Op)
}

func TestAdd(t *testing.T) {
	sum, err := New(1, KilowattHour).Add(New(500, WattHour))
	require.NoError(t, err)
	assert.Equal(t, KilowattHour, sum.Unit())
	assert.InDelta(t, 1.5, sum.Value(), 1e-12)

	_, err = New(1, Lbf).Add(New(1, Meter))
	assert.Error(t, err)
	var mismatch *MismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestMulDivPowComposeDims(t *testing.T) {
	// P = F * v
	p := New(100, Lbf).Mul(New(10, FootPerSecond))
	assert.True(t, p.Dims().Equal(Kilowatt.Dims))

	// E = P * t
	e := New(1, Kilowatt).Mul(New(1, Hour))
	got, err := e.Convert(KilowattHour)
	require.NoError(t, err)
	assert.InDelta(t, 1, got.Value(), 1e-12)

	// Fractional exponents compose dims fractionally.
	half := New(4, SquareMeter).Pow(0.5)
	assert.True(t, half.Dims().Equal(Meter.Dims))
	assert.InDelta(t, 2, half.Value(), 1e-12)
}

func TestRPMIsAngularRate(t *testing.T) {
	// 60 rpm is one revolution per second: 2*pi rad/s.
	w := New(60, RPM)
	assert.InDelta(t, 6.283185307179586, w.SI(), 1e-12)
	assert.True(t, w.Dims().Equal(Second.Dims.Pow(-1)))
}

func TestDimsString(t *testing.T) {
	assert.Equal(t, "-", Dims{}.String())
	assert.Equal(t, "M·L·T^-2", Lbf.Dims.String())
}
