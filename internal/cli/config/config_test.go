package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skystack-labs/skygp/pkg/aircraft"
	"github.com/skystack-labs/skygp/pkg/unit"
)

const testStudyYAML = `
state_path: runs.db
output: json

study:
  vehicle:
    rotor_count: 8
    lift_to_drag: 10
    cruise_efficiency: 0.85
    structural_fraction: 0.35
    battery:
      energy_density_wh_kg: 400
  sizing_mission:
    range_nmi: 50
    cruise_speed_mph: 135
    loiter_speed_mph: 110
    reserve_policy: uber-divert
    passenger_count: 3
  typical_mission:
    range_nmi: 25
    cruise_speed_mph: 135
    passenger_count: 2
    cost:
      cost_per_energy_usd_kwh: 0.2
  disk_loading_lbf_ft2: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skygp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()
	cfg, err := LoadConfig(writeConfig(t, testStudyYAML), nil)
	require.NoError(t, err)

	assert.Equal(t, "runs.db", cfg.StatePath)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Study.Vehicle.RotorCount)
	assert.Equal(t, "uber-divert", cfg.Study.SizingMission.ReservePolicy)
}

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWD) })

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	ResetConfig()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	ResetConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("state", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Set("state", "override.db"))
	require.NoError(t, flags.Set("output", "markdown"))

	cfg, err := LoadConfig(writeConfig(t, testStudyYAML), flags)
	require.NoError(t, err)
	assert.Equal(t, "override.db", cfg.StatePath)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestValidateRejectsBadOutput(t *testing.T) {
	cfg := &Config{OutputFormat: "yaml"}
	assert.Error(t, Validate(cfg))
}

func TestValidateRejectsUnknownReservePolicy(t *testing.T) {
	cfg := &Config{OutputFormat: "auto"}
	cfg.Study.SizingMission.ReservePolicy = "hold-short"
	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, aircraft.ErrUnknownReservePolicy)
}

func TestToStudyConfig(t *testing.T) {
	ResetConfig()
	cfg, err := LoadConfig(writeConfig(t, testStudyYAML), nil)
	require.NoError(t, err)

	sc := cfg.Study.ToStudyConfig()
	assert.Equal(t, 8, sc.Vehicle.RotorCount)
	assert.Equal(t, unit.New(400, unit.WattHourPerKilogram), sc.Vehicle.Battery.EnergyDensity)
	assert.Equal(t, unit.New(50, unit.NauticalMile), sc.Sizing.Range)
	assert.Equal(t, unit.New(110, unit.MPH), sc.Sizing.LoiterSpeed)
	assert.Equal(t, aircraft.ReserveUberDivert, sc.Sizing.ReservePolicy)
	// Unset scalars stay zero so builder defaults apply.
	assert.Zero(t, sc.Vehicle.Battery.PowerDensity.Value())

	ta, ok := cfg.Study.DiskLoading()
	require.True(t, ok)
	assert.Equal(t, unit.New(5, unit.LbfPerSquareFoot), ta)

	// The loaded study must build end to end.
	_, err = aircraft.NewStudy(sc)
	require.NoError(t, err)
}
