package aircraft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/solver"
	"github.com/skystack-labs/skygp/pkg/solver/descent"
	"github.com/skystack-labs/skygp/pkg/unit"
)

func testStudyConfig() StudyConfig {
	return StudyConfig{
		Vehicle: Config{
			RotorCount:         8,
			LiftToDrag:         10,
			CruiseEfficiency:   0.85,
			StructuralFraction: 0.35,
			Battery: BatteryConfig{
				EnergyDensity: unit.New(400, unit.WattHourPerKilogram),
			},
		},
		Sizing: SizingMissionConfig{
			Range:          unit.New(50, unit.NauticalMile),
			CruiseSpeed:    unit.New(135, unit.MPH),
			PassengerCount: 3,
		},
		Typical: TypicalMissionConfig{
			Range:          unit.New(25, unit.NauticalMile),
			CruiseSpeed:    unit.New(135, unit.MPH),
			PassengerCount: 2,
		},
	}
}

func TestStudyBuildsAndFlattens(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)
	require.NotNil(t, study.System)

	for _, k := range []gp.Key{
		{Path: "aircraft", Symbol: "MTOW"},
		{Path: "aircraft/battery", Symbol: "C"},
		{Path: "sizing-mission", Symbol: "W_mission"},
		{Path: "sizing-mission/cruise", Symbol: "segment_range"},
		{Path: "typical-mission", Symbol: "cptpp"},
		{Path: "typical-mission", Symbol: "c_maintenance"},
	} {
		_, ok := study.System.Var(k)
		assert.True(t, ok, "missing %s", k)
	}

	obj := study.Problem(nil).Objective
	require.Len(t, obj.Factors, 1)
	assert.Equal(t, study.Typical.CostPerSeat.Key(), obj.Factors[0].Var.Key())
}

func TestStudySolvesEndToEnd(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	sol, err := descent.New().Solve(context.Background(), study.Problem(nil))
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	mtow, ok := sol.Value(study.Aircraft.MTOW.Key())
	require.True(t, ok)
	assert.Greater(t, mtow.Value(), 0.0)
	assert.Greater(t, sol.Objective.Value(), 0.0)

	// The sizing mission flies at MTOW exactly.
	w, ok := sol.Value(study.Sizing.Weight.Key())
	require.True(t, ok)
	assert.InEpsilon(t, mtow.Value(), w.Value(), 1e-4)
}

func TestTypicalMissionCappedAtTakeoffWeight(t *testing.T) {
	// More revenue passengers than sizing passengers: without a takeoff
	// weight limit the typical mission would fly heavier than MTOW.
	cfg := testStudyConfig()
	cfg.Sizing.PassengerCount = 1
	cfg.Typical.PassengerCount = 6
	study, err := NewStudy(cfg)
	require.NoError(t, err)

	found := false
	for _, c := range study.Typical.Constraints() {
		if c.Label == "takeoff weight limit" {
			found = true
			assert.Equal(t, gp.RelLessEq, c.Op)
		}
	}
	require.True(t, found)

	sol, err := descent.New().Solve(context.Background(), study.Problem(nil))
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	mtow, ok := sol.Value(study.Aircraft.MTOW.Key())
	require.True(t, ok)
	w, ok := sol.Value(study.Typical.Weight.Key())
	require.True(t, ok)
	assert.LessOrEqual(t, w.Value(), mtow.Value()*(1+1e-4))
}

func TestHoverInstancesDoNotCollide(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	m := study.Sizing
	keys := map[gp.Key]struct{}{}
	for _, h := range []*Hover{m.Takeoff, m.Landing, m.Takeoff2, m.Landing2} {
		k := h.Rotor.Thrust.Key()
		_, dup := keys[k]
		assert.False(t, dup, "duplicate key %s", k)
		keys[k] = struct{}{}
		_, ok := study.System.Var(k)
		assert.True(t, ok, "missing %s", k)
	}
	assert.Len(t, keys, 4)
}

func TestChainEnergySumsEverySegment(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	var chain gp.Constraint
	found := false
	for _, c := range study.Sizing.Constraints() {
		if c.Label == "mission energy" {
			chain, found = c, true
		}
	}
	require.True(t, found)
	require.Equal(t, gp.RelGreaterEq, chain.Op)

	got := map[gp.Key]struct{}{}
	for _, m := range chain.RHS.Monos {
		require.Len(t, m.Factors, 1)
		got[m.Factors[0].Var.Key()] = struct{}{}
	}
	segs := []EnergySegment{
		study.Sizing.Takeoff, study.Sizing.Cruise, study.Sizing.Landing,
		study.Sizing.Takeoff2, study.Sizing.Reserve, study.Sizing.Landing2,
	}
	require.Len(t, got, len(segs))
	for _, s := range segs {
		_, ok := got[s.EnergyVar().Key()]
		assert.True(t, ok, "segment %s missing from energy chain", s.Path())
	}
}

func reserveLabels(m *SizingMission) (loiter, divert bool) {
	for _, c := range m.Constraints() {
		switch c.Label {
		case "loiter reserve":
			loiter = true
		case "divert reserve":
			divert = true
		}
	}
	return loiter, divert
}

func TestReservePolicyExclusive(t *testing.T) {
	cfg := testStudyConfig()
	ac, err := New("aircraft", cfg.Vehicle)
	require.NoError(t, err)

	faa := cfg.Sizing
	faa.ReservePolicy = ReserveFAALoiter
	m, err := NewSizingMission("sizing-mission", ac, faa)
	require.NoError(t, err)
	loiter, divert := reserveLabels(m)
	assert.True(t, loiter)
	assert.False(t, divert)

	uber := cfg.Sizing
	uber.ReservePolicy = ReserveUberDivert
	m, err = NewSizingMission("sizing-mission-2", ac, uber)
	require.NoError(t, err)
	loiter, divert = reserveLabels(m)
	assert.False(t, loiter)
	assert.True(t, divert)
}

func TestReserveSegmentFliesAtLoiterSpeed(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	v, ok := study.Sizing.Reserve.Lookup("V")
	require.True(t, ok)
	q, fixed := v.Fixed()
	require.True(t, fixed)
	assert.Equal(t, unit.New(100, unit.MPH), q)

	cruiseV, ok := study.Sizing.Cruise.Lookup("V")
	require.True(t, ok)
	q, fixed = cruiseV.Fixed()
	require.True(t, fixed)
	assert.Equal(t, unit.New(135, unit.MPH), q)

	cfg := testStudyConfig()
	cfg.Sizing.LoiterSpeed = unit.New(90, unit.MPH)
	study, err = NewStudy(cfg)
	require.NoError(t, err)
	v, ok = study.Sizing.Reserve.Lookup("V")
	require.True(t, ok)
	q, fixed = v.Fixed()
	require.True(t, fixed)
	assert.Equal(t, unit.New(90, unit.MPH), q)
}

func TestReserveDefaults(t *testing.T) {
	cfg := testStudyConfig().Sizing.withDefaults()
	assert.Equal(t, unit.New(100, unit.MPH), cfg.LoiterSpeed)
	assert.Equal(t, unit.New(45, unit.Minute), cfg.LoiterDuration)
	assert.Equal(t, unit.New(2, unit.NauticalMile), cfg.DivertDistance)
}

func TestTypicalMissionBoundsHoverNoise(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	_, ok := study.System.Var(study.Typical.SoundRatio.Key())
	assert.True(t, ok)

	count := 0
	for _, c := range study.Typical.Constraints() {
		if c.Label == "worst-case noise" {
			count++
			assert.Equal(t, gp.RelGreaterEq, c.Op)
		}
	}
	assert.Equal(t, 2, count)
}

func TestUnknownReservePolicyFails(t *testing.T) {
	cfg := testStudyConfig()
	cfg.Sizing.ReservePolicy = "hold-short"
	_, err := NewStudy(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownReservePolicy)
}

func TestDiskLoadingSubstitutions(t *testing.T) {
	study, err := NewStudy(testStudyConfig())
	require.NoError(t, err)

	ta := unit.New(5, unit.LbfPerSquareFoot)
	subs := study.Sizing.DiskLoadingSubstitutions(ta)
	require.Len(t, subs, 4)
	for k, q := range subs {
		assert.Equal(t, "T_A", k.Symbol)
		assert.Equal(t, ta, q)
	}
}

func TestConfigValidation(t *testing.T) {
	cfg := testStudyConfig()
	cfg.Vehicle.LiftToDrag = -1
	_, err := NewStudy(cfg)
	assert.Error(t, err)

	cfg = testStudyConfig()
	cfg.Vehicle.Battery.EnergyDensity = unit.New(400, unit.WattPerKilogram)
	_, err = NewStudy(cfg)
	assert.Error(t, err)

	cfg = testStudyConfig()
	cfg.Sizing.Range = unit.Quantity{}
	_, err = NewStudy(cfg)
	assert.Error(t, err)
}
