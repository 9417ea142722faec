package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/alexanderramin/plantrack/internal/progress"
	"github.com/spf13/cobra"
)

func newWorkersCmd(a *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "workers",
		Short: "Worker progress across all plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			resp, err := a.Dashboard.WorkerRoster(context.Background(), app.RosterRequest{Search: search})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter workers by name")

	return cmd
}

func newWorkerCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Inspect one worker",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show WORKER",
		Short: "Show a worker's plans and completions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			workerID, err := parseWorkerID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Dashboard.WorkerDetail(context.Background(), app.WorkerPlansRequest{WorkerID: workerID})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkerPlans(resp.Worker.Worker.Name, resp))
			return nil
		},
	})
	return cmd
}

func newMineCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Show your plans and completions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireWorker(a)
			if err != nil {
				return err
			}
			resp, err := a.Dashboard.WorkerDashboard(context.Background(), app.WorkerPlansRequest{WorkerID: u.ID})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkerPlans("My plans", resp))
			return nil
		},
	}
}

func newCompleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete PLAN ACTIVITY FILE",
		Short: "Mark one of your activities completed with a PDF as evidence",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireWorker(a)
			if err != nil {
				return err
			}
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			actID, err := parseActivityID(args[1])
			if err != nil {
				return err
			}
			if err := validateEvidenceFile(args[2]); err != nil {
				return err
			}

			ctx := context.Background()
			p, err := a.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			if act, ok := p.Activity(actID); ok {
				if c, tracked := act.CompletionFor(u.ID); tracked && !c.IsCompleted() && !progress.CanUpload(c, *p, a.now()) {
					return fmt.Errorf("the deadline for %q has passed", p.Name)
				}
			}

			p, err = a.Plans.RecordCompletion(ctx, app.RecordCompletionRequest{
				PlanID: planID, ActivityID: actID, WorkerID: u.ID, EvidenceFile: strings.TrimSpace(args[2]),
			})
			if err != nil {
				return err
			}
			act, _ := p.Activity(actID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("✔"), act.Name, formatter.Dim("("+strings.TrimSpace(args[2])+")"))
			return nil
		},
	}
}
