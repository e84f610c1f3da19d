package aircraft

import (
	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/model"
	"github.com/skystack-labs/skygp/pkg/solver"
)

// StudyConfig bundles the vehicle and both missions of a combined design
// study.
type StudyConfig struct {
	Vehicle Config
	Sizing  SizingMissionConfig
	Typical TypicalMissionConfig
}

// Study is the combined sizing-and-economics problem: one vehicle designed
// against the sizing mission and costed against the typical mission, with
// cost per seat as the objective.
type Study struct {
	Aircraft *Aircraft
	Sizing   *SizingMission
	Typical  *TypicalMission
	System   *model.System
}

// NewStudy builds and flattens the full design study.
func NewStudy(cfg StudyConfig) (*Study, error) {
	ac, err := New("aircraft", cfg.Vehicle)
	if err != nil {
		return nil, err
	}
	sizing, err := NewSizingMission("sizing-mission", ac, cfg.Sizing)
	if err != nil {
		return nil, err
	}
	typical, err := NewTypicalMission("typical-mission", ac, cfg.Typical)
	if err != nil {
		return nil, err
	}
	sys, err := model.Flatten(ac, sizing, typical)
	if err != nil {
		return nil, err
	}
	return &Study{Aircraft: ac, Sizing: sizing, Typical: typical, System: sys}, nil
}

// Problem packages the study for the solver, minimizing cost per seat.
func (s *Study) Problem(subs gp.Substitutions) solver.Problem {
	return solver.Problem{
		Objective:     s.Typical.CostPerSeat.Mon(),
		System:        s.System,
		Substitutions: subs,
	}
}
