package aircraft

import (
	"github.com/skystack-labs/skygp/pkg/atmosphere"
	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// FlightState carries the atmospheric condition of one or more segments as
// fixed variables. One state may be borrowed by several segments; it is
// composed into the tree exactly once, by whichever mission owns it.
type FlightState struct {
	*model.Node
	Density      *gp.Variable
	SpeedOfSound *gp.Variable
}

// NewFlightState resolves atmosphere properties for the altitude and pins
// them as parameters. Out-of-domain altitudes fail with
// *atmosphere.DomainError.
func NewFlightState(path string, altitude unit.Quantity) (*FlightState, error) {
	props, err := atmosphere.Lookup(altitude)
	if err != nil {
		return nil, err
	}
	b := model.NewBuilder(path)
	fs := &FlightState{
		Density:      b.Const("rho", props.Density, "Air density"),
		SpeedOfSound: b.Const("a", props.SpeedOfSound, "Speed of sound"),
	}

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	fs.Node = node
	return fs, nil
}
