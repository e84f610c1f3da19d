package unit

import (
	"fmt"
	"math"
)

// Quantity is an immutable scalar tagged with a Unit.
type Quantity struct {
	value float64
	unit  Unit
}

// New builds a quantity of v in unit u.
func New(v float64, u Unit) Quantity {
	return Quantity{value: v, unit: u}
}

// Value returns the magnitude in the quantity's own unit.
func (q Quantity) Value() float64 { return q.value }

// Unit returns the quantity's unit.
func (q Quantity) Unit() Unit { return q.unit }

// Dims returns the quantity's dimension vector.
func (q Quantity) Dims() Dims { return q.unit.Dims }

// SI returns the magnitude converted to SI base units.
func (q Quantity) SI() float64 { return q.value * q.unit.Factor }

// Convert re-expresses the quantity in a compatible unit. Conversion between
// incompatible dimensions fails with a *MismatchError.
func (q Quantity) Convert(to Unit) (Quantity, error) {
	if !q.unit.Compatible(to) {
		return Quantity{}, &MismatchError{Op: "convert", Want: to.Dims, Got: q.unit.Dims}
	}
	return Quantity{value: q.SI() / to.Factor, unit: to}, nil
}

// Add sums two quantities. The result is expressed in q's unit. Addition of
// incompatible dimensions fails with a *MismatchError.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if !q.unit.Compatible(o.unit) {
		return Quantity{}, &MismatchError{Op: "add", Want: q.Dims(), Got: o.Dims()}
	}
	return Quantity{value: q.value + o.SI()/q.unit.Factor, unit: q.unit}, nil
}

// Mul multiplies two quantities. Units compose algebraically and never fail.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{value: q.value * o.value, unit: q.unit.Mul(o.unit)}
}

// Div divides two quantities. Units compose algebraically and never fail.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{value: q.value / o.value, unit: q.unit.Div(o.unit)}
}

// Pow raises the quantity to a real power.
func (q Quantity) Pow(p float64) Quantity {
	return Quantity{value: pow(q.value, p), unit: q.unit.Pow(p)}
}

func (q Quantity) String() string {
	if q.unit.Dims.Dimensionless() && q.unit.Factor == 1 {
		return fmt.Sprintf("%g", q.value)
	}
	return fmt.Sprintf("%g %s", q.value, q.unit.Name)
}

// pow is math.Pow with integer fast paths to keep exact factors exact.
func pow(x, p float64) float64 {
	switch p {
	case 1:
		return x
	case 2:
		return x * x
	case -1:
		return 1 / x
	}
	return math.Pow(x, p)
}
