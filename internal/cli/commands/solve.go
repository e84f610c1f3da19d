package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skystack-labs/skygp/internal/cli/config"
	"github.com/skystack-labs/skygp/internal/cli/output"
	"github.com/skystack-labs/skygp/internal/state"
	"github.com/skystack-labs/skygp/internal/watch"
	"github.com/skystack-labs/skygp/pkg/aircraft"
	"github.com/skystack-labs/skygp/pkg/gp"
	"github.com/skystack-labs/skygp/pkg/solver"
	"github.com/skystack-labs/skygp/pkg/solver/descent"
	"github.com/skystack-labs/skygp/pkg/unit"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	var watchFlag bool
	var diskLoading float64

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the design study",
		Long: `Build the study from the config file, flatten it into a geometric
program, and solve for the minimum cost per seat. Every solve is recorded in
the state database.

Use --output to control the format: auto, text, markdown, json`,
		Example: `  # Solve the study in skygp.yaml
  skygp solve

  # Pin hover disk loading for a sweep point
  skygp solve --disk-loading 4.5

  # Re-solve whenever the study file changes
  skygp solve --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd, watchFlag, diskLoading)
		},
	}

	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-solve when the study file changes")
	cmd.Flags().Float64Var(&diskLoading, "disk-loading", 0,
		"Pin hover disk loading in lbf/ft^2 (overrides the study file)")
	return cmd
}

func runSolve(cmd *cobra.Command, watchFlag bool, diskLoading float64) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	solveOnce := func(cfg *config.Config) error {
		return solveStudy(cmd.Context(), cmdCtx, cfg, diskLoading)
	}

	if err := solveOnce(cmdCtx.Cfg); err != nil {
		if !watchFlag {
			return err
		}
		// In watch mode a broken study is reported and watched for a fix.
		cmdCtx.Renderer.Error(fmt.Sprintf("solve failed: %v", err))
	}
	if !watchFlag {
		return nil
	}

	studyFile := config.GetConfigFileUsed()
	if studyFile == "" {
		return fmt.Errorf("--watch requires a config file")
	}
	cmdCtx.Renderer.Println(fmt.Sprintf("Watching %s (ctrl-c to stop)", studyFile))

	return watch.File(cmd.Context(), studyFile, cmdCtx.Logger, func() {
		cfg, err := config.LoadConfig(studyFile, nil)
		if err != nil {
			cmdCtx.Renderer.Error(fmt.Sprintf("reload failed: %v", err))
			return
		}
		if err := solveOnce(cfg); err != nil {
			cmdCtx.Renderer.Error(fmt.Sprintf("solve failed: %v", err))
		}
	})
}

func solveStudy(ctx context.Context, cmdCtx *CommandContext, cfg *config.Config, diskLoading float64) error {
	study, err := aircraft.NewStudy(cfg.Study.ToStudyConfig())
	if err != nil {
		return fmt.Errorf("failed to build study: %w", err)
	}

	subs := gp.Substitutions{}
	if ta, ok := cfg.Study.DiskLoading(); ok {
		subs.Merge(study.Sizing.DiskLoadingSubstitutions(ta))
	}
	if diskLoading > 0 {
		subs.Merge(study.Sizing.DiskLoadingSubstitutions(
			unit.New(diskLoading, unit.LbfPerSquareFoot)))
	}

	run, err := cmdCtx.Store.CreateRun(config.GetConfigFileUsed())
	if err != nil {
		return err
	}

	sol, err := descent.New().Solve(ctx, study.Problem(subs))
	if err != nil {
		_ = cmdCtx.Store.FailRun(run.ID, err.Error())
		return err
	}

	status := state.RunStatusOptimal
	if sol.Status == solver.StatusInfeasible {
		status = state.RunStatusInfeasible
	}
	if err := cmdCtx.Store.CompleteRun(run.ID, status, sol.Objective.Value()); err != nil {
		cmdCtx.Logger.Error("failed to record run", "error", err)
	}
	if sol.Status == solver.StatusOptimal {
		if err := cmdCtx.Store.SaveValues(run.ID, solutionValues(sol)); err != nil {
			cmdCtx.Logger.Error("failed to record values", "error", err)
		}
	}

	return renderSolution(cmdCtx, study, sol, run.ID)
}

func solutionValues(sol *solver.Solution) []state.Value {
	values := make([]state.Value, 0, len(sol.Variables)+len(sol.Constants))
	for k, q := range sol.Variables {
		values = append(values, state.Value{Key: k.String(), Value: q.Value(), Unit: q.Unit().Name})
	}
	for k, q := range sol.Constants {
		values = append(values, state.Value{Key: k.String(), Value: q.Value(), Unit: q.Unit().Name, Pinned: true})
	}
	return values
}

func buildSolutionOutput(study *aircraft.Study, sol *solver.Solution, runID string) output.SolutionOutput {
	out := output.SolutionOutput{
		Status:    sol.Status.String(),
		RunID:     runID,
		Variables: []output.VariableInfo{},
		Constants: []output.VariableInfo{},
	}
	if sol.Status != solver.StatusOptimal {
		return out
	}

	out.Objective = &output.QuantityInfo{
		Value: sol.Objective.Value(),
		Unit:  sol.Objective.Unit().Name,
	}
	out.Variables = variableInfos(study, sol.Variables, false)
	out.Constants = variableInfos(study, sol.Constants, true)

	if len(sol.Sensitivities) > 0 {
		out.Sensitivities = make(map[string]float64, len(sol.Sensitivities))
		for i, s := range sol.Sensitivities {
			if i >= 0 && i < len(study.System.Constraints) {
				out.Sensitivities[study.System.Constraints[i].Label] = s
			}
		}
	}
	return out
}

func variableInfos(study *aircraft.Study, values map[gp.Key]unit.Quantity, pinned bool) []output.VariableInfo {
	infos := make([]output.VariableInfo, 0, len(values))
	for k, q := range values {
		info := output.VariableInfo{
			Key:    k.String(),
			Value:  q.Value(),
			Unit:   q.Unit().Name,
			Pinned: pinned,
		}
		if v, ok := study.System.Var(k); ok {
			info.Description = v.Desc()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

func renderSolution(cmdCtx *CommandContext, study *aircraft.Study, sol *solver.Solution, runID string) error {
	r := cmdCtx.Renderer
	out := buildSolutionOutput(study, sol, runID)

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if sol.Status == solver.StatusInfeasible {
		r.Error("Design study is infeasible: the constraint set cannot be satisfied.")
		r.Error("Relax the mission requirements or the rotor operating limits and re-solve.")
		return nil
	}

	r.Header(1, "Design study solved")
	r.Println(fmt.Sprintf("Cost per seat: $%.2f  (run %s)", out.Objective.Value, runID))
	r.Println("")

	rows := make([][]string, 0, len(out.Variables))
	for _, v := range out.Variables {
		rows = append(rows, []string{v.Key, fmt.Sprintf("%.4g", v.Value), v.Unit, v.Description})
	}
	r.Table([]string{"Variable", "Value", "Unit", "Description"}, rows)

	if cmdCtx.Cfg.Verbose && len(out.Constants) > 0 {
		r.Println("")
		r.Header(2, "Pinned parameters")
		rows = rows[:0]
		for _, v := range out.Constants {
			rows = append(rows, []string{v.Key, fmt.Sprintf("%.4g", v.Value), v.Unit, v.Description})
		}
		r.Table([]string{"Parameter", "Value", "Unit", "Description"}, rows)
	}
	return nil
}
