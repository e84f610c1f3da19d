package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skystack-labs/skygp/internal/cli/output"
	"github.com/skystack-labs/skygp/pkg/aircraft"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the study's variables and constraints",
		Long: `Build and flatten the study without solving, then list every qualified
variable and constraint of the resulting geometric program.

Use --output to control the format: auto, text, markdown, json`,
		Example: `  # Inspect the flattened system
  skygp list

  # As JSON, for scripts
  skygp list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	r := cmdCtx.Renderer

	study, err := aircraft.NewStudy(cmdCtx.Cfg.Study.ToStudyConfig())
	if err != nil {
		return fmt.Errorf("failed to build study: %w", err)
	}

	listOut := output.ListOutput{
		Variables:   []output.VariableInfo{},
		Constraints: []string{},
	}
	for _, v := range study.System.Variables {
		info := output.VariableInfo{
			Key:         v.Key().String(),
			Unit:        v.Unit().Name,
			Description: v.Desc(),
		}
		if q, fixed := v.Fixed(); fixed {
			info.Value = q.Value()
			info.Pinned = true
			listOut.Summary.PinnedVariables++
		} else {
			listOut.Summary.FreeVariables++
		}
		listOut.Variables = append(listOut.Variables, info)
	}
	for _, c := range study.System.Constraints {
		listOut.Constraints = append(listOut.Constraints, c.Label)
	}
	listOut.Summary.TotalVariables = len(listOut.Variables)
	listOut.Summary.TotalConstraints = len(listOut.Constraints)

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(listOut)
	}

	r.Header(1, fmt.Sprintf("Flattened system (%d variables, %d constraints)",
		listOut.Summary.TotalVariables, listOut.Summary.TotalConstraints))
	r.Println("")

	rows := make([][]string, 0, len(listOut.Variables))
	for _, v := range listOut.Variables {
		kind := "free"
		value := ""
		if v.Pinned {
			kind = "pinned"
			value = fmt.Sprintf("%.4g %s", v.Value, v.Unit)
		}
		rows = append(rows, []string{v.Key, kind, v.Unit, value, v.Description})
	}
	r.Table([]string{"Variable", "Kind", "Unit", "Value", "Description"}, rows)
	return nil
}
