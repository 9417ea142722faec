package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	var out string
	var year int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF progress report for one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			ctx := context.Background()
			now := a.now()

			req := app.OverviewRequest{Now: &now}
			if cmd.Flags().Changed("year") {
				req.Year = &year
			}
			overview, err := a.Dashboard.SupervisorOverview(ctx, req)
			if err != nil {
				return err
			}
			roster, err := a.Dashboard.WorkerRoster(ctx, app.RosterRequest{})
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating report: %w", err)
			}
			defer func() {
				if cerr := f.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("closing report: %w", cerr)
				}
			}()

			if err := report.Write(f, report.Report{
				Title:       fmt.Sprintf("Plan progress %d", overview.Year),
				GeneratedAt: now,
				Overview:    overview,
				Roster:      roster,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "plantrack-report.pdf", "Output PDF path")
	cmd.Flags().IntVar(&year, "year", 0, "Year to report (default: current year)")

	return cmd
}
