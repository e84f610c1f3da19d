package aircraft

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// BatteryConfig holds the energy-storage design parameters.
type BatteryConfig struct {
	// EnergyDensity is the cell-level specific energy (e.g. 400 Wh/kg).
	EnergyDensity unit.Quantity
	// PowerDensity is the cell-level specific power. Default 3000 W/kg.
	PowerDensity unit.Quantity
	// UsableFraction is the fraction of capacity usable without damaging the
	// pack. Default 0.8.
	UsableFraction float64
	// DischargeExponent is the Peukert exponent n. Default 1 (ideal cell).
	DischargeExponent float64
}

func (c BatteryConfig) withDefaults() BatteryConfig {
	if c.PowerDensity.Value() == 0 {
		c.PowerDensity = unit.New(3000, unit.WattPerKilogram)
	}
	if c.UsableFraction == 0 {
		c.UsableFraction = 0.8
	}
	if c.DischargeExponent == 0 {
		c.DischargeExponent = 1
	}
	return c
}

func (c BatteryConfig) validate() error {
	if !c.EnergyDensity.Dims().Equal(unit.WattHourPerKilogram.Dims) || c.EnergyDensity.Value() <= 0 {
		return fmt.Errorf("battery energy density must be a positive energy per mass, got %s", c.EnergyDensity)
	}
	if c.UsableFraction <= 0 || c.UsableFraction > 1 {
		return fmt.Errorf("battery usable fraction must be in (0, 1], got %g", c.UsableFraction)
	}
	if c.DischargeExponent < 1 {
		return fmt.Errorf("battery discharge exponent must be >= 1, got %g", c.DischargeExponent)
	}
	return nil
}

// Battery is the persistent energy-storage design model.
type Battery struct {
	*model.Node
	Capacity    *gp.Variable
	EffCapacity *gp.Variable
	Weight      *gp.Variable
	Mass        *gp.Variable
	MaxPower    *gp.Variable
	Gravity     *gp.Variable

	dischargeExponent float64
}

// NewBattery builds the battery design model.
func NewBattery(path string, cfg BatteryConfig) (*Battery, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := model.NewBuilder(path)
	bat := &Battery{
		Capacity:          b.Var("C", unit.KilowattHour, "Battery capacity"),
		EffCapacity:       b.Var("C_eff", unit.KilowattHour, "Effective battery capacity"),
		Weight:            b.Var("W", unit.Lbf, "Battery weight"),
		Mass:              b.Var("m", unit.Kilogram, "Battery mass"),
		MaxPower:          b.Var("P_max", unit.Kilowatt, "Battery maximum power"),
		Gravity:           b.Var("g", unit.MeterPerSecondSquared, "Gravitational acceleration"),
		dischargeExponent: cfg.DischargeExponent,
	}
	energyDensity := b.Const("C_m", cfg.EnergyDensity, "Battery energy density")
	powerDensity := b.Const("P_m", cfg.PowerDensity, "Battery power density")
	usable := b.Lit("usable_fraction", cfg.UsableFraction, unit.Dimensionless,
		"Fraction of battery energy usable without damaging the pack")

	b.Equal("capacity", bat.Capacity.Mon(), bat.Mass.Mon().Mul(energyDensity.Mon()))
	b.Equal("weight", bat.Weight.Mon(), bat.Mass.Mon().Mul(bat.Gravity.Mon()))
	b.Equal("effective capacity", bat.EffCapacity.Mon(), usable.Mon().Mul(bat.Capacity.Mon()))
	b.Equal("power limit", bat.MaxPower.Mon(), powerDensity.Mon().Mul(bat.Mass.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	bat.Node = node
	return bat, nil
}

// BatteryPerformance is the per-segment discharge model.
type BatteryPerformance struct {
	*model.Node
	Energy *gp.Variable
	Power  *gp.Variable
	Time   *gp.Variable
}

// Performance instantiates the discharge model for one segment. The Peukert
// relation E == P·Rt·(t/Rt)^(1/n) reduces to E == P·t for n == 1.
func (bat *Battery) Performance(path string) (*BatteryPerformance, error) {
	b := model.NewBuilder(path)
	p := &BatteryPerformance{
		Energy: b.Var("E", unit.KilowattHour, "Electrical energy used during segment"),
		Power:  b.Var("P", unit.Kilowatt, "Power draw during segment"),
		Time:   b.Var("t", unit.Second, "Time the battery provides power"),
	}
	rating := b.Lit("Rt", 1, unit.Hour, "Battery hour rating")

	inv := 1 / bat.dischargeExponent
	b.Equal("Peukert discharge", p.Energy.Mon(),
		p.Power.Mon().Mul(rating.Pow(1-inv)).Mul(p.Time.Pow(inv)))
	b.LessEq("power ceiling", p.Power.Mon().Posy(), b.Resolve(bat, "P_max").Mon())

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	p.Node = node
	return p, nil
}
