package aircraft

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// PowerSystem is the electrical distribution design model.
//
// TODO: electrical system weight model (currently excluded from the weight
// budget, matching the rotor weight gap).
type PowerSystem struct {
	*model.Node
	Efficiency *gp.Variable
}

// NewPowerSystem builds the electrical system model with the given
// end-to-end efficiency.
func NewPowerSystem(path string, efficiency float64) (*PowerSystem, error) {
	if efficiency <= 0 || efficiency > 1 {
		return nil, fmt.Errorf("electrical efficiency must be in (0, 1], got %g", efficiency)
	}
	b := model.NewBuilder(path)
	ps := &PowerSystem{
		Efficiency: b.Lit("eta", efficiency, unit.Dimensionless, "Electrical system efficiency"),
	}
	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	ps.Node = node
	return ps, nil
}

// PowerSystemPerformance relates a segment's battery-side draw to its
// propulsion-side output through the electrical efficiency.
type PowerSystemPerformance struct {
	*model.Node
	PowerIn  *gp.Variable
	PowerOut *gp.Variable
}

// Performance instantiates the electrical chain for one segment.
func (ps *PowerSystem) Performance(path string) (*PowerSystemPerformance, error) {
	b := model.NewBuilder(path)
	p := &PowerSystemPerformance{
		PowerIn:  b.Var("P_in", unit.Kilowatt, "Input power (from the battery)"),
		PowerOut: b.Var("P_out", unit.Kilowatt, "Output power (to the motors)"),
	}
	b.Equal("efficiency chain", p.PowerOut.Mon(), gp.Mon(1, b.Resolve(ps, "eta"), p.PowerIn))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	p.Node = node
	return p, nil
}
