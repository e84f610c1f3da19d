package aircraft

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Crew models the flight crew weight.
type Crew struct {
	*model.Node
	Weight *gp.Variable
	Count  *gp.Variable
}

// NewCrew builds the crew model. memberWeight defaults to 190 lbf when zero.
func NewCrew(path string, count int, memberWeight unit.Quantity) (*Crew, error) {
	if count < 1 {
		return nil, fmt.Errorf("crew count must be at least 1, got %d", count)
	}
	if memberWeight.Value() == 0 {
		memberWeight = unit.New(190, unit.Lbf)
	}
	b := model.NewBuilder(path)
	c := &Crew{
		Weight: b.Var("W", unit.Lbf, "Total crew weight"),
		Count:  b.Lit("N_crew", float64(count), unit.Dimensionless, "Number of crew members"),
	}
	one := b.Const("W_oneCrew", memberWeight, "Weight of one crew member")
	b.Equal("crew weight", c.Weight.Mon(), c.Count.Mon().Mul(one.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	c.Node = node
	return c, nil
}

// Passengers models the paying payload of one mission.
type Passengers struct {
	*model.Node
	Weight *gp.Variable
	Count  *gp.Variable
}

// NewPassengers builds the passenger model. memberWeight defaults to 200 lbf
// when zero.
func NewPassengers(path string, count int, memberWeight unit.Quantity) (*Passengers, error) {
	if count < 1 {
		return nil, fmt.Errorf("passenger count must be at least 1, got %d", count)
	}
	if memberWeight.Value() == 0 {
		memberWeight = unit.New(200, unit.Lbf)
	}
	b := model.NewBuilder(path)
	p := &Passengers{
		Weight: b.Var("W", unit.Lbf, "Total passenger weight"),
		Count:  b.Lit("N_passengers", float64(count), unit.Dimensionless, "Number of passengers"),
	}
	one := b.Const("W_onePassenger", memberWeight, "Weight of one passenger")
	b.Equal("passenger weight", p.Weight.Mon(), p.Count.Mon().Mul(one.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	p.Node = node
	return p, nil
}

// Structure ties structural weight to takeoff weight by a fixed fraction.
// The MTOW variable is borrowed from the aircraft that owns this structure.
type Structure struct {
	*model.Node
	Weight *gp.Variable
}

// NewStructure builds the structural weight model.
func NewStructure(path string, mtow *gp.Variable, weightFraction float64) (*Structure, error) {
	if weightFraction <= 0 || weightFraction >= 1 {
		return nil, fmt.Errorf("structural weight fraction must be in (0, 1), got %g", weightFraction)
	}
	b := model.NewBuilder(path)
	s := &Structure{
		Weight: b.Var("W", unit.Lbf, "Structural weight"),
	}
	fraction := b.Lit("weight_fraction", weightFraction, unit.Dimensionless, "Structural weight fraction")
	b.Equal("structural weight", s.Weight.Mon(), fraction.Mon().Mul(mtow.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	s.Node = node
	return s, nil
}
