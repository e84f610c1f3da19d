package aircraft

import (
	"fmt"
	"math"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Rotors is the persistent rotor-geometry design model.
type Rotors struct {
	*model.Node
	Radius    *gp.Variable
	Diameter  *gp.Variable
	Area      *gp.Variable
	TotalArea *gp.Variable
	Count     *gp.Variable
	Solidity  *gp.Variable
}

// NewRotors builds the rotor geometry model for count rotors of the given
// solidity.
func NewRotors(path string, count int, solidity float64) (*Rotors, error) {
	if count < 1 {
		return nil, fmt.Errorf("rotor count must be at least 1, got %d", count)
	}
	if solidity <= 0 || solidity >= 1 {
		return nil, fmt.Errorf("rotor solidity must be in (0, 1), got %g", solidity)
	}

	b := model.NewBuilder(path)
	r := &Rotors{
		Radius:    b.Var("R", unit.Foot, "Rotor radius"),
		Diameter:  b.Var("D", unit.Foot, "Rotor diameter"),
		Area:      b.Var("A", unit.SquareFoot, "Area of one rotor disk"),
		TotalArea: b.Var("A_total", unit.SquareFoot, "Combined area of all rotor disks"),
		Count:     b.Lit("N", float64(count), unit.Dimensionless, "Number of rotors"),
		Solidity:  b.Lit("s", solidity, unit.Dimensionless, "Rotor solidity"),
	}
	b.Equal("disk area", r.Area.Mon(), r.Radius.Pow(2).Scale(math.Pi))
	b.Equal("diameter", r.Diameter.Mon(), r.Radius.Mon().Scale(2))
	b.Equal("total disk area", r.TotalArea.Mon(), r.Count.Mon().Mul(r.Area.Mon()))

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	r.Node = node
	return r, nil
}

// RotorPerfConfig bounds one rotor operating condition.
type RotorPerfConfig struct {
	// MaxTipMach is the tip-Mach ceiling. Default 0.9.
	MaxTipMach float64
	// MaxMeanLift is the mean-lift-coefficient ceiling. Default 1.0.
	MaxMeanLift float64
	// MaxSoundPressureDB is the allowed sound pressure level at the observer
	// distance, in dB. Default 100.
	MaxSoundPressureDB float64
	// ObserverDistance is where the noise requirement applies. Default 500 ft.
	ObserverDistance unit.Quantity
	// InducedPowerFactor scales ideal induced power. Default 1.1.
	InducedPowerFactor float64
	// ProfileDragCoeff is the blade zero-lift drag coefficient. Default 0.01.
	ProfileDragCoeff float64
}

func (c RotorPerfConfig) withDefaults() RotorPerfConfig {
	if c.MaxTipMach == 0 {
		c.MaxTipMach = 0.9
	}
	if c.MaxMeanLift == 0 {
		c.MaxMeanLift = 1.0
	}
	if c.MaxSoundPressureDB == 0 {
		c.MaxSoundPressureDB = 100
	}
	if c.ObserverDistance.Value() == 0 {
		c.ObserverDistance = unit.New(500, unit.Foot)
	}
	if c.InducedPowerFactor == 0 {
		c.InducedPowerFactor = 1.1
	}
	if c.ProfileDragCoeff == 0 {
		c.ProfileDragCoeff = 0.01
	}
	return c
}

// RotorPerformance is the per-condition rotor aero model: transient, created
// fresh for each segment, relating segment thrust and power to the parent
// rotor geometry by reference.
type RotorPerformance struct {
	*model.Node
	Thrust      *gp.Variable
	Power       *gp.Variable
	DiskLoading *gp.Variable
	TipSpeed    *gp.Variable
	FigureMerit *gp.Variable
	SoundRatio  *gp.Variable
}

// Performance instantiates the rotor aero model for one flight condition.
func (r *Rotors) Performance(path string, fs *FlightState, cfg RotorPerfConfig) (*RotorPerformance, error) {
	cfg = cfg.withDefaults()

	b := model.NewBuilder(path)
	p := &RotorPerformance{
		Thrust:      b.Var("T", unit.Lbf, "Total thrust"),
		Power:       b.Var("P", unit.Kilowatt, "Total power"),
		DiskLoading: b.Var("T_A", unit.LbfPerSquareFoot, "Disk loading"),
		TipSpeed:    b.Var("VT", unit.FootPerSecond, "Rotor tip speed"),
		FigureMerit: b.Var("FOM", unit.Dimensionless, "Figure of merit"),
		SoundRatio:  b.Var("p_ratio", unit.Dimensionless, "Sound pressure ratio (p/p_ref)"),
	}
	tPerRotor := b.Var("T_perRotor", unit.Lbf, "Thrust per rotor")
	pPerRotor := b.Var("P_perRotor", unit.Kilowatt, "Power per rotor")
	omega := b.Var("omega", unit.RPM, "Rotor angular velocity")
	tipMach := b.Var("MT", unit.Dimensionless, "Tip Mach number")
	ct := b.Var("CT", unit.Dimensionless, "Thrust coefficient")
	cp := b.Var("CP", unit.Dimensionless, "Power coefficient")
	cpi := b.Var("CPi", unit.Dimensionless, "Induced (ideal) power coefficient")
	cpp := b.Var("CPp", unit.Dimensionless, "Profile power coefficient")
	clMean := b.Var("CL_mean", unit.Dimensionless, "Mean lift coefficient")

	tipMachMax := b.Lit("MT_max", cfg.MaxTipMach, unit.Dimensionless, "Maximum tip Mach number")
	clMeanMax := b.Lit("CL_mean_max", cfg.MaxMeanLift, unit.Dimensionless, "Maximum mean lift coefficient")
	ki := b.Lit("ki", cfg.InducedPowerFactor, unit.Dimensionless, "Induced power factor")
	cd0 := b.Lit("Cd0", cfg.ProfileDragCoeff, unit.Dimensionless, "Blade zero-lift drag coefficient")
	soundMax := b.Lit("p_ratio_max", math.Pow(10, cfg.MaxSoundPressureDB/20), unit.Dimensionless, "Maximum sound pressure ratio")
	observer := b.Const("x", cfg.ObserverDistance, "Observer distance for the noise requirement")
	k3 := b.Lit("k3", 6.804e-3, unit.CubicSecondPerCubicFoot, "Sound pressure constant")

	// Borrowed design and flight-state variables.
	radius := b.Resolve(r, "R")
	area := b.Resolve(r, "A")
	totalArea := b.Resolve(r, "A_total")
	count := b.Resolve(r, "N")
	solidity := b.Resolve(r, "s")
	rho := b.Resolve(fs, "rho")
	speedOfSound := b.Resolve(fs, "a")

	b.Equal("thrust sum", p.Thrust.Mon(), count.Mon().Mul(tPerRotor.Mon()))
	b.Equal("power sum", p.Power.Mon(), count.Mon().Mul(pPerRotor.Mon()))
	b.Equal("thrust coefficient", tPerRotor.Mon(),
		gp.Mon(0.5, rho, area).Mul(p.TipSpeed.Pow(2)).Mul(ct.Mon()))
	b.Equal("power coefficient", pPerRotor.Mon(),
		gp.Mon(0.5, rho, area).Mul(p.TipSpeed.Pow(3)).Mul(cp.Mon()))
	b.Equal("disk loading", p.DiskLoading.Mon(), p.Thrust.Mon().Div(totalArea.Mon()))

	b.Equal("induced power", cpi.Mon(), ct.Pow(1.5).Scale(0.5))
	b.Equal("profile power", cpp.Mon(), gp.Mon(0.25, solidity, cd0))
	b.GreaterEq("power budget", cp.Mon(), b.Sum(ki.Mon().Mul(cpi.Mon()), cpp.Mon()))
	b.Equal("figure of merit", p.FigureMerit.Mon(), cpi.Mon().Div(cp.Mon()))

	b.Equal("tip speed", p.TipSpeed.Mon(), radius.Mon().Mul(omega.Mon()))
	b.Equal("tip Mach", p.TipSpeed.Mon(), tipMach.Mon().Mul(speedOfSound.Mon()))
	b.LessEq("tip Mach limit", tipMach.Mon().Posy(), tipMachMax.Mon())

	b.Equal("mean lift", clMean.Mon(), ct.Mon().Div(solidity.Mon()).Scale(3))
	b.LessEq("mean lift limit", clMean.Mon().Posy(), clMeanMax.Mon())

	b.Equal("sound pressure", p.SoundRatio.Mon(),
		k3.Mon().Mul(p.Thrust.Mon()).Mul(omega.Mon()).
			Div(rho.Mon().Mul(observer.Mon())).
			Mul(count.Mon().Mul(solidity.Mon()).Pow(-0.5)))
	b.LessEq("sound pressure limit", p.SoundRatio.Mon().Posy(), soundMax.Mon())

	node, err := b.Node()
	if err != nil {
		return nil, err
	}
	p.Node = node
	return p, nil
}
