package unit

import (
	"fmt"
	"math"
	"strings"
)

// dimTolerance is the tolerance used when comparing dimension exponents.
// Exponents become fractional through power operations (e.g. CT^1.5), so
// exact comparison is not an option.
const dimTolerance = 1e-9

// Dims is a dimension vector: exponents over the mass, length and time base
// dimensions. The zero value is dimensionless.
type Dims struct {
	M float64 // mass
	L float64 // length
	T float64 // time
}

// Dimensionless reports whether every exponent is zero.
func (d Dims) Dimensionless() bool {
	return math.Abs(d.M) < dimTolerance && math.Abs(d.L) < dimTolerance && math.Abs(d.T) < dimTolerance
}

// Equal reports whether two dimension vectors match within tolerance.
func (d Dims) Equal(o Dims) bool {
	return math.Abs(d.M-o.M) < dimTolerance && math.Abs(d.L-o.L) < dimTolerance && math.Abs(d.T-o.T) < dimTolerance
}

// Mul returns the dimensions of a product.
func (d Dims) Mul(o Dims) Dims {
	return Dims{M: d.M + o.M, L: d.L + o.L, T: d.T + o.T}
}

// Div returns the dimensions of a quotient.
func (d Dims) Div(o Dims) Dims {
	return Dims{M: d.M - o.M, L: d.L - o.L, T: d.T - o.T}
}

// Pow returns the dimensions raised to a real power.
func (d Dims) Pow(p float64) Dims {
	return Dims{M: d.M * p, L: d.L * p, T: d.T * p}
}

// String renders the dimension vector for error messages, e.g. "M·L·T^-2".
func (d Dims) String() string {
	if d.Dimensionless() {
		return "-"
	}
	var parts []string
	for _, b := range []struct {
		sym string
		exp float64
	}{{"M", d.M}, {"L", d.L}, {"T", d.T}} {
		if math.Abs(b.exp) < dimTolerance {
			continue
		}
		if math.Abs(b.exp-1) < dimTolerance {
			parts = append(parts, b.sym)
		} else {
			parts = append(parts, fmt.Sprintf("%s^%g", b.sym, b.exp))
		}
	}
	return strings.Join(parts, "·")
}

// MismatchError reports an operation between incompatible dimensions.
type MismatchError struct {
	Op   string
	Want Dims
	Got  Dims
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("unit mismatch in %s: %s is not compatible with %s", e.Op, e.Got, e.Want)
}
