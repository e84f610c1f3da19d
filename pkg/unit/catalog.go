package unit

import "math"

// Base dimension vectors.
var (
	dimless = Dims{}
	mass    = Dims{M: 1}
	length  = Dims{L: 1}
	tim     = Dims{T: 1}
	force   = Dims{M: 1, L: 1, T: -2}
	energy  = Dims{M: 1, L: 2, T: -2}
	power   = Dims{M: 1, L: 2, T: -3}
)

// Named units. Factors convert a magnitude in the unit to SI base units.
// Dollars are treated as dimensionless, following standard practice in
// geometric-programming cost models.
var (
	Dimensionless = Unit{Name: "-", Factor: 1, Dims: dimless}

	Kilogram = Unit{Name: "kg", Factor: 1, Dims: mass}

	Meter        = Unit{Name: "m", Factor: 1, Dims: length}
	Foot         = Unit{Name: "ft", Factor: 0.3048, Dims: length}
	NauticalMile = Unit{Name: "nmi", Factor: 1852, Dims: length}
	Mile         = Unit{Name: "mi", Factor: 1609.344, Dims: length}

	Second = Unit{Name: "s", Factor: 1, Dims: tim}
	Minute = Unit{Name: "min", Factor: 60, Dims: tim}
	Hour   = Unit{Name: "hr", Factor: 3600, Dims: tim}
	Year   = Unit{Name: "yr", Factor: 365.25 * 24 * 3600, Dims: tim}

	Newton = Unit{Name: "N", Factor: 1, Dims: force}
	Lbf    = Unit{Name: "lbf", Factor: 4.4482216152605, Dims: force}

	Joule        = Unit{Name: "J", Factor: 1, Dims: energy}
	WattHour     = Unit{Name: "Wh", Factor: 3600, Dims: energy}
	KilowattHour = Unit{Name: "kWh", Factor: 3.6e6, Dims: energy}

	Watt     = Unit{Name: "W", Factor: 1, Dims: power}
	Kilowatt = Unit{Name: "kW", Factor: 1000, Dims: power}

	MeterPerSecond = Unit{Name: "m/s", Factor: 1, Dims: length.Div(tim)}
	FootPerSecond  = Unit{Name: "ft/s", Factor: 0.3048, Dims: length.Div(tim)}
	MPH            = Unit{Name: "mph", Factor: 0.44704, Dims: length.Div(tim)}
	Knot           = Unit{Name: "kt", Factor: 1852.0 / 3600.0, Dims: length.Div(tim)}

	// RPM is revolutions per minute; one revolution is 2*pi radians and
	// radians are dimensionless.
	RPM = Unit{Name: "rpm", Factor: 2 * math.Pi / 60, Dims: tim.Pow(-1)}

	MeterPerSecondSquared = Unit{Name: "m/s^2", Factor: 1, Dims: length.Div(tim.Mul(tim))}

	SquareFoot  = Unit{Name: "ft^2", Factor: 0.3048 * 0.3048, Dims: length.Pow(2)}
	SquareMeter = Unit{Name: "m^2", Factor: 1, Dims: length.Pow(2)}

	KilogramPerCubicMeter = Unit{Name: "kg/m^3", Factor: 1, Dims: mass.Div(length.Pow(3))}

	WattHourPerKilogram = Unit{Name: "Wh/kg", Factor: 3600, Dims: energy.Div(mass)}
	WattPerKilogram     = Unit{Name: "W/kg", Factor: 1, Dims: power.Div(mass)}

	LbfPerSquareFoot = Unit{Name: "lbf/ft^2", Factor: 4.4482216152605 / (0.3048 * 0.3048), Dims: force.Div(length.Pow(2))}

	// CubicSecondPerCubicFoot carries the units of the rotor noise constant.
	CubicSecondPerCubicFoot = Unit{Name: "s^3/ft^3", Factor: 1 / (0.3048 * 0.3048 * 0.3048), Dims: tim.Pow(3).Div(length.Pow(3))}

	// Cost rates: dollars are dimensionless, so these carry only the
	// denominator's dimensions.
	PerLbf  = Unit{Name: "1/lbf", Factor: 1 / 4.4482216152605, Dims: force.Pow(-1)}
	PerKWh  = Unit{Name: "1/kWh", Factor: 1 / 3.6e6, Dims: energy.Pow(-1)}
	PerHour = Unit{Name: "1/hr", Factor: 1.0 / 3600.0, Dims: tim.Pow(-1)}
)
