package unit

import "fmt"

// Unit is a named scale of a dimension vector. Factor converts a magnitude
// expressed in this unit into SI base units (kg, m, s).
type Unit struct {
	Name   string
	Factor float64
	Dims   Dims
}

// Mul returns the product unit, e.g. W/kg from W and 1/kg.
func (u Unit) Mul(o Unit) Unit {
	return Unit{
		Name:   u.Name + "·" + o.Name,
		Factor: u.Factor * o.Factor,
		Dims:   u.Dims.Mul(o.Dims),
	}
}

// Div returns the quotient unit.
func (u Unit) Div(o Unit) Unit {
	return Unit{
		Name:   u.Name + "/" + o.Name,
		Factor: u.Factor / o.Factor,
		Dims:   u.Dims.Div(o.Dims),
	}
}

// Pow returns the unit raised to a real power.
func (u Unit) Pow(p float64) Unit {
	return Unit{
		Name:   fmt.Sprintf("%s^%g", u.Name, p),
		Factor: pow(u.Factor, p),
		Dims:   u.Dims.Pow(p),
	}
}

// Compatible reports whether a quantity in u can be converted to o.
func (u Unit) Compatible(o Unit) bool {
	return u.Dims.Equal(o.Dims)
}

func (u Unit) String() string { return u.Name }
