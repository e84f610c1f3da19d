package aircraft

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// CostConfig holds the operating-economics parameters. Dollar amounts are
// dimensionless; rates carry inverse units so every cost term reduces to
// plain dollars.
type CostConfig struct {
	// VehicleLife is the airframe life for amortization. Default 10000 hr.
	VehicleLife unit.Quantity
	// CostPerWeight is the purchase price per unit MTOW. Default 350 $/lbf.
	CostPerWeight unit.Quantity
	// CostPerEnergy is the electricity price. Default 0.12 $/kWh.
	CostPerEnergy unit.Quantity
	// PilotWrapRate is the fully-loaded pilot cost. Default 70 $/hr.
	PilotWrapRate unit.Quantity
	// MechanicWrapRate is the fully-loaded mechanic cost. Default 60 $/hr.
	MechanicWrapRate unit.Quantity
	// MechanicCount is the crew per overhaul. Default 1.
	MechanicCount int
	// OverhaulTime is the labor per overhaul. Default 30 hr.
	OverhaulTime unit.Quantity
	// TimeBetweenOverhauls is flight time between overhauls. Default 100 hr.
	TimeBetweenOverhauls unit.Quantity
}

func (c CostConfig) withDefaults() CostConfig {
	if c.VehicleLife.Value() == 0 {
		c.VehicleLife = unit.New(10000, unit.Hour)
	}
	if c.CostPerWeight.Value() == 0 {
		c.CostPerWeight = unit.New(350, unit.PerLbf)
	}
	if c.CostPerEnergy.Value() == 0 {
		c.CostPerEnergy = unit.New(0.12, unit.PerKWh)
	}
	if c.PilotWrapRate.Value() == 0 {
		c.PilotWrapRate = unit.New(70, unit.PerHour)
	}
	if c.MechanicWrapRate.Value() == 0 {
		c.MechanicWrapRate = unit.New(60, unit.PerHour)
	}
	if c.MechanicCount == 0 {
		c.MechanicCount = 1
	}
	if c.OverhaulTime.Value() == 0 {
		c.OverhaulTime = unit.New(30, unit.Hour)
	}
	if c.TimeBetweenOverhauls.Value() == 0 {
		c.TimeBetweenOverhauls = unit.New(100, unit.Hour)
	}
	return c
}

// TypicalMissionConfig describes the revenue trip the economics are judged
// against. It is usually shorter and lighter than the sizing mission.
type TypicalMissionConfig struct {
	// Range is the trip distance.
	Range unit.Quantity
	// CruiseSpeed is the level-flight speed.
	CruiseSpeed unit.Quantity
	// HoverDuration is the time spent in each hover segment. Default 30 s.
	HoverDuration unit.Quantity
	// Altitude is the mission altitude for atmosphere lookup. Default 0.
	Altitude unit.Quantity
	// PassengerCount is the number of paying passengers. Default 1.
	PassengerCount int
	// PassengerWeight defaults to 200 lbf.
	PassengerWeight unit.Quantity
	// RotorPerf bounds the hover segments' rotor operating condition.
	RotorPerf RotorPerfConfig
	// Cost holds the operating-economics parameters.
	Cost CostConfig
}

func (c TypicalMissionConfig) withDefaults() TypicalMissionConfig {
	if c.HoverDuration.Value() == 0 {
		c.HoverDuration = unit.New(30, unit.Second)
	}
	if c.Altitude.Value() == 0 {
		c.Altitude = unit.New(0, unit.Foot)
	}
	if c.PassengerCount == 0 {
		c.PassengerCount = 1
	}
	c.Cost = c.Cost.withDefaults()
	return c
}

func (c TypicalMissionConfig) validate() error {
	if c.Range.Value() <= 0 {
		return fmt.Errorf("typical mission range must be positive, got %s", c.Range)
	}
	if c.CruiseSpeed.Value() <= 0 {
		return fmt.Errorf("cruise speed must be positive, got %s", c.CruiseSpeed)
	}
	return nil
}

// TypicalMission is the revenue mission: takeoff hover, cruise, landing
// hover, flown below MTOW, with the per-trip operating cost built on top.
// CostPerSeat is the study objective.
type TypicalMission struct {
	*model.Node
	Weight      *gp.Variable
	SoundRatio  *gp.Variable
	Energy      *gp.Variable
	Time        *gp.Variable
	CostPerTrip *gp.Variable
	CostPerSeat *gp.Variable

	Passengers  *Passengers
	FlightState *FlightState
	Takeoff     *Hover
	Cruise      *LevelFlight
	Landing     *Hover

	segments []EnergySegment
}

// NewTypicalMission builds the revenue mission and its cost model against an
// aircraft.
func NewTypicalMission(path string, ac *Aircraft, cfg TypicalMissionConfig) (*TypicalMission, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := model.NewBuilder(path)
	m := &TypicalMission{
		Weight:      b.Var("W_mission", unit.Lbf, "Vehicle weight flown on the typical mission"),
		SoundRatio:  b.Var("p_ratio", unit.Dimensionless, "Worst-case hover sound pressure ratio"),
		Energy:      b.Var("E_mission", unit.KilowattHour, "Total energy over the typical mission"),
		Time:        b.Var("t_mission", unit.Hour, "Total time over the typical mission"),
		CostPerTrip: b.Var("cpt", unit.Dimensionless, "Operating cost per trip, dollars"),
		CostPerSeat: b.Var("cptpp", unit.Dimensionless, "Operating cost per trip per passenger, dollars"),
	}
	missionRange := b.Const("mission_range", cfg.Range, "Trip distance of the typical mission")

	var err error
	if m.Passengers, err = NewPassengers(model.JoinPath(path, "passengers"), cfg.PassengerCount, cfg.PassengerWeight); err != nil {
		return nil, err
	}
	if m.FlightState, err = NewFlightState(model.JoinPath(path, "flight-state"), cfg.Altitude); err != nil {
		return nil, err
	}
	b.Child(m.Passengers)
	b.Child(m.FlightState)

	if m.Takeoff, err = NewHover(model.JoinPath(path, "takeoff"), ac, m.FlightState, m.Weight, cfg.HoverDuration, cfg.RotorPerf); err != nil {
		return nil, err
	}
	if m.Cruise, err = NewLevelFlight(model.JoinPath(path, "cruise"), ac, m.Weight, cfg.CruiseSpeed); err != nil {
		return nil, err
	}
	if m.Landing, err = NewHover(model.JoinPath(path, "landing"), ac, m.FlightState, m.Weight, cfg.HoverDuration, cfg.RotorPerf); err != nil {
		return nil, err
	}
	m.segments = []EnergySegment{m.Takeoff, m.Cruise, m.Landing}
	for _, s := range m.segments {
		b.Child(s)
	}

	b.GreaterEq("mission weight", m.Weight.Mon(),
		b.Sum(b.Resolve(ac, "W_noPassengers").Mon(), m.Passengers.Weight.Mon()))
	// The revenue mission may be lighter than the design mission, never
	// heavier.
	mtow := b.Resolve(ac, "MTOW")
	b.LessEq("takeoff weight limit", m.Weight.Mon().Posy(), mtow.Mon())
	b.Equal("cruise distance", m.Cruise.Range.Mon(), missionRange.Mon())

	b.Add(ChainEnergy("mission energy", m.Energy, m.segments...))
	b.Add(ChainTime("mission time", m.Time, m.segments...))
	b.LessEq("battery energy", m.Energy.Mon().Posy(), b.Resolve(ac, "C_eff").Mon())

	// Noise is judged against the loudest hover.
	for _, h := range []*Hover{m.Takeoff, m.Landing} {
		b.GreaterEq("worst-case noise", m.SoundRatio.Mon(), h.Rotor.SoundRatio.Mon().Posy())
	}

	// Operating cost, all terms in dollars per trip.
	cVehicle := b.Var("c_vehicle", unit.Dimensionless, "Amortized vehicle cost per trip, dollars")
	cEnergy := b.Var("c_energy", unit.Dimensionless, "Energy cost per trip, dollars")
	cPilot := b.Var("c_pilot", unit.Dimensionless, "Pilot cost per trip, dollars")
	cMaint := b.Var("c_maintenance", unit.Dimensionless, "Maintenance cost per trip, dollars")
	price := b.Var("purchase_price", unit.Dimensionless, "Vehicle purchase price, dollars")
	overhaul := b.Var("overhaul_cost", unit.Dimensionless, "Cost of one overhaul, dollars")

	life := b.Const("vehicle_life", cfg.Cost.VehicleLife, "Airframe life for amortization")
	perWeight := b.Const("cost_per_weight", cfg.Cost.CostPerWeight, "Purchase price per unit takeoff weight")
	perEnergy := b.Const("cost_per_energy", cfg.Cost.CostPerEnergy, "Electricity price")
	pilotRate := b.Const("pilot_wrap_rate", cfg.Cost.PilotWrapRate, "Fully-loaded pilot cost rate")
	mechRate := b.Const("mechanic_wrap_rate", cfg.Cost.MechanicWrapRate, "Fully-loaded mechanic cost rate")
	mechCount := b.Lit("N_mechanics", float64(cfg.Cost.MechanicCount), unit.Dimensionless, "Mechanics per overhaul")
	overhaulTime := b.Const("overhaul_time", cfg.Cost.OverhaulTime, "Labor per overhaul")
	betweenOverhauls := b.Const("time_between_overhauls", cfg.Cost.TimeBetweenOverhauls, "Flight time between overhauls")

	b.Equal("purchase price", price.Mon(), perWeight.Mon().Mul(mtow.Mon()))
	b.Equal("vehicle cost", cVehicle.Mon(), price.Mon().Mul(m.Time.Mon()).Div(life.Mon()))
	b.Equal("energy cost", cEnergy.Mon(), m.Energy.Mon().Mul(perEnergy.Mon()))
	b.Equal("pilot cost", cPilot.Mon(), pilotRate.Mon().Mul(m.Time.Mon()))
	b.Equal("overhaul cost", overhaul.Mon(), gp.Mon(1, mechCount, overhaulTime, mechRate))
	b.Equal("maintenance cost", cMaint.Mon(),
		overhaul.Mon().Mul(m.Time.Mon()).Div(betweenOverhauls.Mon()))

	b.GreaterEq("cost per trip", m.CostPerTrip.Mon(),
		b.Sum(cVehicle.Mon(), cEnergy.Mon(), cPilot.Mon(), cMaint.Mon()))
	b.Equal("cost per seat", m.CostPerTrip.Mon(),
		m.CostPerSeat.Mon().Mul(m.Passengers.Count.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	m.Node = node
	return m, nil
}
