package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skystack-labs/skygp/internal/cli/output"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent solve history",
		Long:  `List recorded solves from the state database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func runRuns(cmd *cobra.Command, limit int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	r := cmdCtx.Renderer

	runs, err := cmdCtx.Store.ListRuns(limit)
	if err != nil {
		return err
	}

	infos := make([]output.RunInfo, 0, len(runs))
	for _, run := range runs {
		info := output.RunInfo{
			ID:        run.ID,
			StudyFile: run.StudyFile,
			Status:    string(run.Status),
			Objective: run.Objective,
			Error:     run.Error,
			StartedAt: run.StartedAt.Format(time.RFC3339),
		}
		if run.CompletedAt != nil {
			info.CompletedAt = run.CompletedAt.Format(time.RFC3339)
		}
		infos = append(infos, info)
	}

	if r.EffectiveMode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	r.Header(1, fmt.Sprintf("Runs (%d)", len(infos)))
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		objective := ""
		if info.Objective != nil {
			objective = fmt.Sprintf("$%.2f", *info.Objective)
		}
		rows = append(rows, []string{info.ID, info.Status, objective, info.StartedAt})
	}
	r.Table([]string{"Run", "Status", "Cost/seat", "Started"}, rows)
	return nil
}
