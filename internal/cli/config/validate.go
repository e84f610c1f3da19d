package config

import (
	"fmt"

	"github.com/skystack-labs/skygp/pkg/aircraft"
)

var validOutputs = map[string]struct{}{
	"auto": {}, "text": {}, "markdown": {}, "json": {},
}

// Validate checks CLI-level settings. Study parameters are validated by the
// model builders, which know the physical bounds; this only rejects what
// would fail later with a worse message.
func Validate(cfg *Config) error {
	if _, ok := validOutputs[cfg.OutputFormat]; !ok {
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", cfg.OutputFormat)
	}
	if p := cfg.Study.SizingMission.ReservePolicy; p != "" {
		switch aircraft.ReservePolicy(p) {
		case aircraft.ReserveFAALoiter, aircraft.ReserveUberDivert:
		default:
			return fmt.Errorf("%w: %q", aircraft.ErrUnknownReservePolicy, p)
		}
	}
	if cfg.Study.DiskLoadingLbfFt2 < 0 {
		return fmt.Errorf("disk_loading_lbf_ft2 must be positive, got %g", cfg.Study.DiskLoadingLbfFt2)
	}
	return nil
}
