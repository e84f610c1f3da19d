// Package atmosphere provides International Standard Atmosphere properties as
// a pure function of altitude. It is a total, deterministic lookup over the
// valid altitude domain; anything outside fails with *DomainError.
package atmosphere

import (
	"fmt"
	"math"

	"github.com/skystack-labs/skygp/pkg/unit"
)

// ISA constants.
const (
	seaLevelTemp     = 288.15  // K
	seaLevelPressure = 101325  // Pa
	lapseRate        = 0.0065  // K/m in the troposphere
	tropopause       = 11000   // m
	maxAltitude      = 20000   // m, top of the lower stratosphere model
	gasConstant      = 287.053 // J/(kg·K)
	gravity          = 9.80665 // m/s^2
	gamma            = 1.4
)

// Properties are the atmospheric quantities the performance models consume.
type Properties struct {
	Density      unit.Quantity // kg/m^3
	SpeedOfSound unit.Quantity // m/s
}

// DomainError reports an altitude outside the modeled atmosphere.
type DomainError struct {
	Altitude unit.Quantity
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("altitude %s outside atmosphere model: %s", e.Altitude, e.Reason)
}

// Lookup returns ISA density and speed of sound at the given altitude.
// Valid from sea level to 20 km.
func Lookup(altitude unit.Quantity) (Properties, error) {
	hq, err := altitude.Convert(unit.Meter)
	if err != nil {
		return Properties{}, &DomainError{Altitude: altitude, Reason: "not a length"}
	}
	h := hq.Value()
	if h < 0 {
		return Properties{}, &DomainError{Altitude: altitude, Reason: "below sea level"}
	}
	if h > maxAltitude {
		return Properties{}, &DomainError{Altitude: altitude, Reason: "above 20 km"}
	}

	var temp, pressure float64
	if h <= tropopause {
		temp = seaLevelTemp - lapseRate*h
		pressure = seaLevelPressure * math.Pow(temp/seaLevelTemp, gravity/(lapseRate*gasConstant))
	} else {
		temp = seaLevelTemp - lapseRate*tropopause
		pTropo := seaLevelPressure * math.Pow(temp/seaLevelTemp, gravity/(lapseRate*gasConstant))
		pressure = pTropo * math.Exp(-gravity*(h-tropopause)/(gasConstant*temp))
	}

	return Properties{
		Density:      unit.New(pressure/(gasConstant*temp), unit.KilogramPerCubicMeter),
		SpeedOfSound: unit.New(math.Sqrt(gamma*gasConstant*temp), unit.MeterPerSecond),
	}, nil
}
