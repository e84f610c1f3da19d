package aircraft

import (
	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// EnergySegment is any mission segment that draws battery energy over time.
type EnergySegment interface {
	model.Constrainable
	EnergyVar() *gp.Variable
	TimeVar() *gp.Variable
}

// ChainEnergy builds capacity >= sum of every segment's energy draw.
func ChainEnergy(label string, capacity *gp.Variable, segs ...EnergySegment) (gp.Constraint, error) {
	terms := make([]gp.Monomial, len(segs))
	for i, s := range segs {
		terms[i] = s.EnergyVar().Mon()
	}
	total, err := gp.Sum(terms...)
	if err != nil {
		return gp.Constraint{}, err
	}
	return gp.GreaterEq(label, capacity.Mon(), total)
}

// ChainTime builds total >= sum of every segment's duration.
func ChainTime(label string, total *gp.Variable, segs ...EnergySegment) (gp.Constraint, error) {
	terms := make([]gp.Monomial, len(segs))
	for i, s := range segs {
		terms[i] = s.TimeVar().Mon()
	}
	sum, err := gp.Sum(terms...)
	if err != nil {
		return gp.Constraint{}, err
	}
	return gp.GreaterEq(label, total.Mon(), sum)
}

// Hover is a fixed-duration hover segment. The rotor, battery, and electrical
// performance models are instantiated fresh under this segment's path; the
// segment weight is borrowed from the mission that owns it.
type Hover struct {
	*model.Node
	Time   *gp.Variable
	Energy *gp.Variable

	Rotor   *RotorPerformance
	Battery *BatteryPerformance
	Power   *PowerSystemPerformance
}

// NewHover builds a hover segment of the given duration.
func NewHover(path string, ac *Aircraft, fs *FlightState, weight *gp.Variable, duration unit.Quantity, rotorCfg RotorPerfConfig) (*Hover, error) {
	b := model.NewBuilder(path)
	h := &Hover{
		Time:   b.Const("t", duration, "Hover duration"),
		Energy: b.Var("E", unit.KilowattHour, "Electrical energy used"),
	}

	var err error
	if h.Rotor, err = ac.Rotors.Performance(model.JoinPath(path, "rotor"), fs, rotorCfg); err != nil {
		return nil, err
	}
	if h.Battery, err = ac.Battery.Performance(model.JoinPath(path, "battery")); err != nil {
		return nil, err
	}
	if h.Power, err = ac.PowerSystem.Performance(model.JoinPath(path, "power-system")); err != nil {
		return nil, err
	}
	b.Child(h.Rotor)
	b.Child(h.Battery)
	b.Child(h.Power)

	b.Equal("thrust balance", h.Rotor.Thrust.Mon(), weight.Mon())
	b.Equal("shaft power", h.Power.PowerOut.Mon(), h.Rotor.Power.Mon())
	b.Equal("battery draw", h.Battery.Power.Mon(), h.Power.PowerIn.Mon())
	b.Equal("battery time", h.Battery.Time.Mon(), h.Time.Mon())
	b.Equal("segment energy", h.Energy.Mon(), h.Battery.Energy.Mon())

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	h.Node = node
	return h, nil
}

func (h *Hover) EnergyVar() *gp.Variable { return h.Energy }
func (h *Hover) TimeVar() *gp.Variable   { return h.Time }

// LevelFlight is a constant-speed cruise or loiter segment. Both duration and
// distance are left free; the owning mission pins one of them.
type LevelFlight struct {
	*model.Node
	Time   *gp.Variable
	Range  *gp.Variable
	Energy *gp.Variable

	Battery *BatteryPerformance
	Power   *PowerSystemPerformance
}

// NewLevelFlight builds a level-flight segment at the given speed. Drag comes
// from the aircraft's lift-to-drag ratio; shaft power from drag, speed, and
// the cruise propulsive efficiency.
func NewLevelFlight(path string, ac *Aircraft, weight *gp.Variable, speed unit.Quantity) (*LevelFlight, error) {
	b := model.NewBuilder(path)
	lf := &LevelFlight{
		Time:   b.Var("t", unit.Second, "Segment duration"),
		Range:  b.Var("segment_range", unit.NauticalMile, "Segment distance flown"),
		Energy: b.Var("E", unit.KilowattHour, "Electrical energy used"),
	}
	drag := b.Var("D", unit.Lbf, "Drag in level flight")
	velocity := b.Const("V", speed, "Flight speed")

	var err error
	if lf.Battery, err = ac.Battery.Performance(model.JoinPath(path, "battery")); err != nil {
		return nil, err
	}
	if lf.Power, err = ac.PowerSystem.Performance(model.JoinPath(path, "power-system")); err != nil {
		return nil, err
	}
	b.Child(lf.Battery)
	b.Child(lf.Power)

	liftToDrag := b.Resolve(ac, "L_D")
	cruiseEff := b.Resolve(ac, "eta_cruise")

	b.Equal("drag", drag.Mon(), weight.Mon().Div(liftToDrag.Mon()))
	b.Equal("shaft power", lf.Power.PowerOut.Mon(),
		drag.Mon().Mul(velocity.Mon()).Div(cruiseEff.Mon()))
	b.Equal("distance", lf.Range.Mon(), velocity.Mon().Mul(lf.Time.Mon()))
	b.Equal("battery draw", lf.Battery.Power.Mon(), lf.Power.PowerIn.Mon())
	b.Equal("battery time", lf.Battery.Time.Mon(), lf.Time.Mon())
	b.Equal("segment energy", lf.Energy.Mon(), lf.Battery.Energy.Mon())

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	lf.Node = node
	return lf, nil
}

func (lf *LevelFlight) EnergyVar() *gp.Variable { return lf.Energy }
func (lf *LevelFlight) TimeVar() *gp.Variable   { return lf.Time }
