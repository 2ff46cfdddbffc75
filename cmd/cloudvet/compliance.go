package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deepak-negi-devops/cloudvet/internal/compliance"
	"github.com/deepak-negi-devops/cloudvet/internal/config"
)

func newComplianceCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Summarise compliance results from exported CSV reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := compliance.LoadHistory(dir)
			if err != nil {
				return fmt.Errorf("load compliance history: %w", err)
			}
			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No compliance reports found in %s.\n", dir)
				return nil
			}

			rollups := compliance.Aggregate(historyToRows(rows))
			renderRollups(cmd.OutOrStdout(), rollups)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", config.Default().Output.Directory, "Directory containing exported compliance CSVs")
	return cmd
}

// historyToRows converts browsed history rows into aggregation rows.
// Historical CSVs carry no sub-requirement column, so every row aggregates
// at the requirement level.
func historyToRows(rows []compliance.HistoryRow) []compliance.Row {
	out := make([]compliance.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, compliance.Row{
			CheckID:       r.CheckID,
			Status:        r.Status,
			Region:        r.Region,
			AccountID:     r.AccountID,
			ResourceID:    r.ResourceID,
			RequirementID: r.RequirementID,
			AssessmentDay: r.AssessmentAt.UTC().Format("2006-01-02"),
		})
	}
	return out
}

// renderRollups writes the per-requirement pass/fail table to w, with
// sub-requirement rows indented under their requirement.
func renderRollups(w io.Writer, rollups []compliance.RequirementRollup) {
	fmt.Fprintf(w, "%-50s  %6s  %6s\n", "REQUIREMENT", "PASS", "FAIL")
	for _, r := range rollups {
		fmt.Fprintf(w, "%-50s  %6d  %6d\n", r.RequirementID, r.Counts.Pass, r.Counts.Fail)
		for _, sub := range r.Sub {
			if sub.SubRequirement == "" {
				continue
			}
			fmt.Fprintf(w, "  %-48s  %6d  %6d\n", sub.SubRequirement, sub.Counts.Pass, sub.Counts.Fail)
		}
	}
}
