// Package config loads CLI configuration and study definitions. A single
// YAML file carries both: tool settings at the top level and the study under
// the study key. Scalar parameters encode their unit in the key name
// (range_nmi, hover_duration_s) and are converted to typed quantities when
// the study is built.
package config

import (
	"github.com/skystack-labs/skygp/pkg/aircraft"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string    `koanf:"state_path"`
	Verbose      bool      `koanf:"verbose"`
	OutputFormat string    `koanf:"output"`
	Study        StudyFile `koanf:"study"`
}

// StudyFile is the YAML shape of one design study.
type StudyFile struct {
	Vehicle        VehicleFile `koanf:"vehicle"`
	SizingMission  SizingFile  `koanf:"sizing_mission"`
	TypicalMission TypicalFile `koanf:"typical_mission"`
	// DiskLoadingLbfFt2 pins hover disk loading for the solve. Zero leaves
	// it free.
	DiskLoadingLbfFt2 float64 `koanf:"disk_loading_lbf_ft2"`
}

// VehicleFile is the YAML shape of the vehicle design parameters.
type VehicleFile struct {
	RotorCount           int         `koanf:"rotor_count"`
	RotorSolidity        float64     `koanf:"rotor_solidity"`
	LiftToDrag           float64     `koanf:"lift_to_drag"`
	CruiseEfficiency     float64     `koanf:"cruise_efficiency"`
	ElectricalEfficiency float64     `koanf:"electrical_efficiency"`
	StructuralFraction   float64     `koanf:"structural_fraction"`
	Battery              BatteryFile `koanf:"battery"`
	CrewCount            int         `koanf:"crew_count"`
	CrewMemberWeightLbf  float64     `koanf:"crew_member_weight_lbf"`
}

// BatteryFile is the YAML shape of the battery parameters.
type BatteryFile struct {
	EnergyDensityWhKg float64 `koanf:"energy_density_wh_kg"`
	PowerDensityWKg   float64 `koanf:"power_density_w_kg"`
	UsableFraction    float64 `koanf:"usable_fraction"`
	DischargeExponent float64 `koanf:"discharge_exponent"`
}

// RotorLimitsFile is the YAML shape of per-mission rotor operating limits.
type RotorLimitsFile struct {
	MaxTipMach         float64 `koanf:"max_tip_mach"`
	MaxMeanLift        float64 `koanf:"max_mean_lift"`
	MaxSoundPressureDB float64 `koanf:"max_sound_pressure_db"`
	ObserverDistanceFt float64 `koanf:"observer_distance_ft"`
	InducedPowerFactor float64 `koanf:"induced_power_factor"`
	ProfileDragCoeff   float64 `koanf:"profile_drag_coeff"`
}

// SizingFile is the YAML shape of the sizing mission.
type SizingFile struct {
	RangeNmi           float64         `koanf:"range_nmi"`
	CruiseSpeedMph     float64         `koanf:"cruise_speed_mph"`
	LoiterSpeedMph     float64         `koanf:"loiter_speed_mph"`
	HoverDurationS     float64         `koanf:"hover_duration_s"`
	AltitudeFt         float64         `koanf:"altitude_ft"`
	ReservePolicy      string          `koanf:"reserve_policy"`
	LoiterDurationMin  float64         `koanf:"loiter_duration_min"`
	DivertDistanceNmi  float64         `koanf:"divert_distance_nmi"`
	PassengerCount     int             `koanf:"passenger_count"`
	PassengerWeightLbf float64         `koanf:"passenger_weight_lbf"`
	RotorLimits        RotorLimitsFile `koanf:"rotor_limits"`
}

// TypicalFile is the YAML shape of the typical (revenue) mission.
type TypicalFile struct {
	RangeNmi           float64         `koanf:"range_nmi"`
	CruiseSpeedMph     float64         `koanf:"cruise_speed_mph"`
	HoverDurationS     float64         `koanf:"hover_duration_s"`
	AltitudeFt         float64         `koanf:"altitude_ft"`
	PassengerCount     int             `koanf:"passenger_count"`
	PassengerWeightLbf float64         `koanf:"passenger_weight_lbf"`
	RotorLimits        RotorLimitsFile `koanf:"rotor_limits"`
	Cost               CostFile        `koanf:"cost"`
}

// CostFile is the YAML shape of the operating-economics parameters.
type CostFile struct {
	VehicleLifeHr          float64 `koanf:"vehicle_life_hr"`
	CostPerWeightUSDLbf    float64 `koanf:"cost_per_weight_usd_lbf"`
	CostPerEnergyUSDKwh    float64 `koanf:"cost_per_energy_usd_kwh"`
	PilotWrapRateUSDHr     float64 `koanf:"pilot_wrap_rate_usd_hr"`
	MechanicWrapRateUSDHr  float64 `koanf:"mechanic_wrap_rate_usd_hr"`
	MechanicCount          int     `koanf:"mechanic_count"`
	OverhaulTimeHr         float64 `koanf:"overhaul_time_hr"`
	TimeBetweenOverhaulsHr float64 `koanf:"time_between_overhauls_hr"`
}

// quantity converts a magnitude to a typed quantity, leaving zero values as
// the zero quantity so downstream defaults apply.
func quantity(v float64, u unit.Unit) unit.Quantity {
	if v == 0 {
		return unit.Quantity{}
	}
	return unit.New(v, u)
}

func (r RotorLimitsFile) toConfig() aircraft.RotorPerfConfig {
	return aircraft.RotorPerfConfig{
		MaxTipMach:         r.MaxTipMach,
		MaxMeanLift:        r.MaxMeanLift,
		MaxSoundPressureDB: r.MaxSoundPressureDB,
		ObserverDistance:   quantity(r.ObserverDistanceFt, unit.Foot),
		InducedPowerFactor: r.InducedPowerFactor,
		ProfileDragCoeff:   r.ProfileDragCoeff,
	}
}

// ToStudyConfig maps the YAML shape to typed study parameters.
func (s StudyFile) ToStudyConfig() aircraft.StudyConfig {
	return aircraft.StudyConfig{
		Vehicle: aircraft.Config{
			RotorCount:           s.Vehicle.RotorCount,
			RotorSolidity:        s.Vehicle.RotorSolidity,
			LiftToDrag:           s.Vehicle.LiftToDrag,
			CruiseEfficiency:     s.Vehicle.CruiseEfficiency,
			ElectricalEfficiency: s.Vehicle.ElectricalEfficiency,
			StructuralFraction:   s.Vehicle.StructuralFraction,
			Battery: aircraft.BatteryConfig{
				EnergyDensity:     quantity(s.Vehicle.Battery.EnergyDensityWhKg, unit.WattHourPerKilogram),
				PowerDensity:      quantity(s.Vehicle.Battery.PowerDensityWKg, unit.WattPerKilogram),
				UsableFraction:    s.Vehicle.Battery.UsableFraction,
				DischargeExponent: s.Vehicle.Battery.DischargeExponent,
			},
			CrewCount:        s.Vehicle.CrewCount,
			CrewMemberWeight: quantity(s.Vehicle.CrewMemberWeightLbf, unit.Lbf),
		},
		Sizing: aircraft.SizingMissionConfig{
			Range:           quantity(s.SizingMission.RangeNmi, unit.NauticalMile),
			CruiseSpeed:     quantity(s.SizingMission.CruiseSpeedMph, unit.MPH),
			LoiterSpeed:     quantity(s.SizingMission.LoiterSpeedMph, unit.MPH),
			HoverDuration:   quantity(s.SizingMission.HoverDurationS, unit.Second),
			Altitude:        quantity(s.SizingMission.AltitudeFt, unit.Foot),
			ReservePolicy:   aircraft.ReservePolicy(s.SizingMission.ReservePolicy),
			LoiterDuration:  quantity(s.SizingMission.LoiterDurationMin, unit.Minute),
			DivertDistance:  quantity(s.SizingMission.DivertDistanceNmi, unit.NauticalMile),
			PassengerCount:  s.SizingMission.PassengerCount,
			PassengerWeight: quantity(s.SizingMission.PassengerWeightLbf, unit.Lbf),
			RotorPerf:       s.SizingMission.RotorLimits.toConfig(),
		},
		Typical: aircraft.TypicalMissionConfig{
			Range:           quantity(s.TypicalMission.RangeNmi, unit.NauticalMile),
			CruiseSpeed:     quantity(s.TypicalMission.CruiseSpeedMph, unit.MPH),
			HoverDuration:   quantity(s.TypicalMission.HoverDurationS, unit.Second),
			Altitude:        quantity(s.TypicalMission.AltitudeFt, unit.Foot),
			PassengerCount:  s.TypicalMission.PassengerCount,
			PassengerWeight: quantity(s.TypicalMission.PassengerWeightLbf, unit.Lbf),
			RotorPerf:       s.TypicalMission.RotorLimits.toConfig(),
			Cost: aircraft.CostConfig{
				VehicleLife:          quantity(s.TypicalMission.Cost.VehicleLifeHr, unit.Hour),
				CostPerWeight:        quantity(s.TypicalMission.Cost.CostPerWeightUSDLbf, unit.PerLbf),
				CostPerEnergy:        quantity(s.TypicalMission.Cost.CostPerEnergyUSDKwh, unit.PerKWh),
				PilotWrapRate:        quantity(s.TypicalMission.Cost.PilotWrapRateUSDHr, unit.PerHour),
				MechanicWrapRate:     quantity(s.TypicalMission.Cost.MechanicWrapRateUSDHr, unit.PerHour),
				MechanicCount:        s.TypicalMission.Cost.MechanicCount,
				OverhaulTime:         quantity(s.TypicalMission.Cost.OverhaulTimeHr, unit.Hour),
				TimeBetweenOverhauls: quantity(s.TypicalMission.Cost.TimeBetweenOverhaulsHr, unit.Hour),
			},
		},
	}
}

// DiskLoading returns the pinned disk loading, if the study sets one.
func (s StudyFile) DiskLoading() (unit.Quantity, bool) {
	if s.DiskLoadingLbfFt2 <= 0 {
		return unit.Quantity{}, false
	}
	return unit.New(s.DiskLoadingLbfFt2, unit.LbfPerSquareFoot), true
}

// Default configuration values.
const (
	DefaultStateFile = ".skygp/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
