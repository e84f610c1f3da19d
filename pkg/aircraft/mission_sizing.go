package aircraft

import (
	"errors"
	"fmt"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// ReservePolicy selects which regulatory energy reserve a sizing mission
// carries. Exactly one reserve constraint is active per mission.
type ReservePolicy string

const (
	// ReserveFAALoiter is a fixed-duration loiter at cruise speed.
	ReserveFAALoiter ReservePolicy = "faa-loiter"
	// ReserveUberDivert is a fixed-distance diversion at cruise speed.
	ReserveUberDivert ReservePolicy = "uber-divert"
)

// ErrUnknownReservePolicy aborts a build over a policy this package does not
// implement. Silently substituting a default reserve would size the vehicle
// against the wrong requirement.
var ErrUnknownReservePolicy = errors.New("unknown reserve policy")

// SizingMissionConfig describes the worst-case mission the vehicle must fly.
type SizingMissionConfig struct {
	// Range is the cruise distance.
	Range unit.Quantity
	// CruiseSpeed is the level-flight speed of the cruise segment.
	CruiseSpeed unit.Quantity
	// LoiterSpeed is the level-flight speed of the reserve segment, flown
	// slower than cruise for endurance. Default 100 mph.
	LoiterSpeed unit.Quantity
	// HoverDuration is the time spent in each hover segment. Default 120 s.
	HoverDuration unit.Quantity
	// Altitude is the mission altitude for atmosphere lookup. Default 0.
	Altitude unit.Quantity
	// ReservePolicy picks the reserve requirement. Default faa-loiter.
	ReservePolicy ReservePolicy
	// LoiterDuration applies under faa-loiter. Default 45 min, the night
	// VFR requirement.
	LoiterDuration unit.Quantity
	// DivertDistance applies under uber-divert. Default 2 nmi.
	DivertDistance unit.Quantity
	// PassengerCount is the number of paying passengers. Default 1.
	PassengerCount int
	// PassengerWeight defaults to 200 lbf.
	PassengerWeight unit.Quantity
	// RotorPerf bounds every hover segment's rotor operating condition.
	RotorPerf RotorPerfConfig
}

func (c SizingMissionConfig) withDefaults() SizingMissionConfig {
	if c.HoverDuration.Value() == 0 {
		c.HoverDuration = unit.New(120, unit.Second)
	}
	if c.Altitude.Value() == 0 {
		c.Altitude = unit.New(0, unit.Foot)
	}
	if c.ReservePolicy == "" {
		c.ReservePolicy = ReserveFAALoiter
	}
	if c.LoiterSpeed.Value() == 0 {
		c.LoiterSpeed = unit.New(100, unit.MPH)
	}
	if c.LoiterDuration.Value() == 0 {
		c.LoiterDuration = unit.New(45, unit.Minute)
	}
	if c.DivertDistance.Value() == 0 {
		c.DivertDistance = unit.New(2, unit.NauticalMile)
	}
	if c.PassengerCount == 0 {
		c.PassengerCount = 1
	}
	return c
}

func (c SizingMissionConfig) validate() error {
	if c.Range.Value() <= 0 {
		return fmt.Errorf("sizing mission range must be positive, got %s", c.Range)
	}
	if c.CruiseSpeed.Value() <= 0 {
		return fmt.Errorf("cruise speed must be positive, got %s", c.CruiseSpeed)
	}
	if c.LoiterSpeed.Value() <= 0 {
		return fmt.Errorf("loiter speed must be positive, got %s", c.LoiterSpeed)
	}
	switch c.ReservePolicy {
	case ReserveFAALoiter, ReserveUberDivert:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownReservePolicy, c.ReservePolicy)
	}
	return nil
}

// SizingMission is the design mission: four hovers, a cruise, and a reserve,
// flown at maximum takeoff weight. Its energy chain drives battery sizing and
// its hover segments drive rotor sizing.
type SizingMission struct {
	*model.Node
	Weight     *gp.Variable
	SoundRatio *gp.Variable

	Passengers  *Passengers
	FlightState *FlightState
	Takeoff     *Hover
	Cruise      *LevelFlight
	Landing     *Hover
	Takeoff2    *Hover
	Reserve     *LevelFlight
	Landing2    *Hover

	segments []EnergySegment
	hovers   []*Hover
}

// NewSizingMission builds the design mission against an aircraft.
func NewSizingMission(path string, ac *Aircraft, cfg SizingMissionConfig) (*SizingMission, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := model.NewBuilder(path)
	m := &SizingMission{
		Weight:     b.Var("W_mission", unit.Lbf, "Vehicle weight flown on the sizing mission"),
		SoundRatio: b.Var("p_ratio", unit.Dimensionless, "Worst-case hover sound pressure ratio"),
	}
	missionRange := b.Const("mission_range", cfg.Range, "Cruise distance of the sizing mission")

	var err error
	if m.Passengers, err = NewPassengers(model.JoinPath(path, "passengers"), cfg.PassengerCount, cfg.PassengerWeight); err != nil {
		return nil, err
	}
	if m.FlightState, err = NewFlightState(model.JoinPath(path, "flight-state"), cfg.Altitude); err != nil {
		return nil, err
	}
	b.Child(m.Passengers)
	b.Child(m.FlightState)

	hover := func(name string) (*Hover, error) {
		return NewHover(model.JoinPath(path, name), ac, m.FlightState, m.Weight, cfg.HoverDuration, cfg.RotorPerf)
	}
	if m.Takeoff, err = hover("takeoff"); err != nil {
		return nil, err
	}
	if m.Cruise, err = NewLevelFlight(model.JoinPath(path, "cruise"), ac, m.Weight, cfg.CruiseSpeed); err != nil {
		return nil, err
	}
	if m.Landing, err = hover("landing"); err != nil {
		return nil, err
	}
	if m.Takeoff2, err = hover("takeoff-2"); err != nil {
		return nil, err
	}
	if m.Reserve, err = NewLevelFlight(model.JoinPath(path, "reserve"), ac, m.Weight, cfg.LoiterSpeed); err != nil {
		return nil, err
	}
	if m.Landing2, err = hover("landing-2"); err != nil {
		return nil, err
	}
	m.hovers = []*Hover{m.Takeoff, m.Landing, m.Takeoff2, m.Landing2}
	m.segments = []EnergySegment{m.Takeoff, m.Cruise, m.Landing, m.Takeoff2, m.Reserve, m.Landing2}
	for _, s := range m.segments {
		b.Child(s)
	}

	// The sizing mission is flown at maximum takeoff weight, with passengers.
	mtow := b.Resolve(ac, "MTOW")
	noPax := b.Resolve(ac, "W_noPassengers")
	b.Equal("mission weight", m.Weight.Mon(), mtow.Mon())
	b.GreaterEq("takeoff weight budget", mtow.Mon(),
		b.Sum(noPax.Mon(), m.Passengers.Weight.Mon()))

	b.Equal("cruise distance", m.Cruise.Range.Mon(), missionRange.Mon())

	switch cfg.ReservePolicy {
	case ReserveFAALoiter:
		loiter := b.Const("t_loiter", cfg.LoiterDuration, "Required loiter reserve duration")
		b.Equal("loiter reserve", m.Reserve.Time.Mon(), loiter.Mon())
	case ReserveUberDivert:
		divert := b.Const("R_divert", cfg.DivertDistance, "Required diversion reserve distance")
		b.Equal("divert reserve", m.Reserve.Range.Mon(), divert.Mon())
	}

	// The battery must cover the whole mission, reserve included.
	b.Add(ChainEnergy("mission energy", b.Resolve(ac, "C_eff"), m.segments...))

	// Noise is judged against the loudest hover.
	for _, h := range m.hovers {
		b.GreaterEq("worst-case noise", m.SoundRatio.Mon(), h.Rotor.SoundRatio.Mon().Posy())
	}

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	m.Node = node
	return m, nil
}

// DiskLoadingSubstitutions pins every hover segment's disk loading, the usual
// sweep variable of a sizing study.
func (m *SizingMission) DiskLoadingSubstitutions(ta unit.Quantity) gp.Substitutions {
	subs := gp.Substitutions{}
	for _, h := range m.hovers {
		subs.Set(h.Rotor.DiskLoading.Key(), ta)
	}
	return subs
}
