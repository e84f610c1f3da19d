package aircraft

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Config holds every per-vehicle design parameter. All fields without a
// stated default are required.
type Config struct {
	// RotorCount is the number of lifting rotors.
	RotorCount int
	// RotorSolidity is the rotor solidity ratio. Default 0.1.
	RotorSolidity float64
	// LiftToDrag is the cruise lift-to-drag ratio.
	LiftToDrag float64
	// CruiseEfficiency is the cruise propulsive efficiency.
	CruiseEfficiency float64
	// ElectricalEfficiency is the end-to-end electrical efficiency.
	// Default 0.9.
	ElectricalEfficiency float64
	// StructuralFraction is the structural weight fraction of MTOW.
	StructuralFraction float64
	// Battery holds the energy-storage parameters.
	Battery BatteryConfig
	// CrewCount is the number of crew members. Default 1.
	CrewCount int
	// CrewMemberWeight defaults to 190 lbf.
	CrewMemberWeight unit.Quantity
}

func (c Config) withDefaults() Config {
	if c.RotorSolidity == 0 {
		c.RotorSolidity = 0.1
	}
	if c.ElectricalEfficiency == 0 {
		c.ElectricalEfficiency = 0.9
	}
	if c.CrewCount == 0 {
		c.CrewCount = 1
	}
	return c
}

func (c Config) validate() error {
	if c.LiftToDrag <= 0 {
		return fmt.Errorf("cruise lift-to-drag must be positive, got %g", c.LiftToDrag)
	}
	if c.CruiseEfficiency <= 0 || c.CruiseEfficiency > 1 {
		return fmt.Errorf("cruise efficiency must be in (0, 1], got %g", c.CruiseEfficiency)
	}
	return nil
}

// Aircraft is the top-level vehicle design model. Its variables are the
// persistent design quantities every mission shares.
type Aircraft struct {
	*model.Node
	MTOW          *gp.Variable
	WNoPassengers *gp.Variable
	EffCapacity   *gp.Variable
	Gravity       *gp.Variable
	LiftToDrag    *gp.Variable
	CruiseEff     *gp.Variable

	Rotors      *Rotors
	Battery     *Battery
	Crew        *Crew
	Structure   *Structure
	PowerSystem *PowerSystem
}

// New builds the vehicle design model and its subsystem children.
func New(path string, cfg Config) (*Aircraft, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := model.NewBuilder(path)
	ac := &Aircraft{
		MTOW:          b.Var("MTOW", unit.Lbf, "Maximum takeoff weight"),
		WNoPassengers: b.Var("W_noPassengers", unit.Lbf, "Weight without passengers"),
		EffCapacity:   b.Var("C_eff", unit.KilowattHour, "Effective battery capacity"),
		Gravity:       b.Lit("g", 9.807, unit.MeterPerSecondSquared, "Gravitational acceleration"),
		LiftToDrag:    b.Lit("L_D", cfg.LiftToDrag, unit.Dimensionless, "Cruise lift-to-drag ratio"),
		CruiseEff:     b.Lit("eta_cruise", cfg.CruiseEfficiency, unit.Dimensionless, "Cruise propulsive efficiency"),
	}

	var err error
	if ac.Rotors, err = NewRotors(model.JoinPath(path, "rotors"), cfg.RotorCount, cfg.RotorSolidity); err != nil {
		return nil, err
	}
	if ac.Battery, err = NewBattery(model.JoinPath(path, "battery"), cfg.Battery); err != nil {
		return nil, err
	}
	if ac.Crew, err = NewCrew(model.JoinPath(path, "crew"), cfg.CrewCount, cfg.CrewMemberWeight); err != nil {
		return nil, err
	}
	if ac.Structure, err = NewStructure(model.JoinPath(path, "structure"), ac.MTOW, cfg.StructuralFraction); err != nil {
		return nil, err
	}
	if ac.PowerSystem, err = NewPowerSystem(model.JoinPath(path, "power-system"), cfg.ElectricalEfficiency); err != nil {
		return nil, err
	}
	for _, child := range []model.Constrainable{ac.Rotors, ac.Battery, ac.Crew, ac.Structure, ac.PowerSystem} {
		b.Child(child)
	}

	b.Equal("shared gravity", ac.Gravity.Mon(), b.Resolve(ac.Battery, "g").Mon())
	b.Equal("battery capacity", ac.EffCapacity.Mon(), b.Resolve(ac.Battery, "C_eff").Mon())

	// TODO: rotor and electrical-system weight models; until then only the
	// weighted components enter the empty-weight budget.
	b.GreaterEq("empty weight budget", ac.WNoPassengers.Mon(), b.Sum(
		b.Resolve(ac.Structure, "W").Mon(),
		b.Resolve(ac.Battery, "W").Mon(),
		b.Resolve(ac.Crew, "W").Mon(),
	))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	ac.Node = node
	return ac, nil
}
