package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plans",
	}

	cmd.AddCommand(
		newPlanListCmd(a),
		newPlanShowCmd(a),
		newPlanAddCmd(a),
		newPlanEditCmd(a),
		newPlanRemoveCmd(a),
	)

	return cmd
}

func newPlanListCmd(a *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one year's plans grouped by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			req := app.OverviewRequest{}
			if cmd.Flags().Changed("year") {
				req.Year = &year
			}
			resp, err := a.Dashboard.SupervisorOverview(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year to show (default: current year)")

	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "show PLAN",
		Short: "Show a plan's activities and worker progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Dashboard.PlanDetail(context.Background(), app.PlanDetailRequest{
				PlanID: planID, WorkerSearch: search,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanDetail(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter workers by name")

	return cmd
}

func newPlanAddCmd(a *App) *cobra.Command {
	var name, deadline string
	var activities []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a plan; every activity is assigned to all current workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			d, err := parseDeadline(a, deadline)
			if err != nil {
				return err
			}
			p, err := a.Plans.Create(context.Background(), app.CreatePlanRequest{
				Name: name, Deadline: d, Activities: activities,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s %s with %d activities (%s)\n",
				formatter.Bold(p.Name), formatter.Dim(fmt.Sprintf("#%d", p.ID)), len(p.Activities), p.Month)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&activities, "activity", nil, "Activity name (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}

func newPlanEditCmd(a *App) *cobra.Command {
	var name, deadline string
	var extra []string

	cmd := &cobra.Command{
		Use:   "edit PLAN",
		Short: "Rename a plan, move its deadline, or append activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			ctx := context.Background()
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			current, err := a.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			req := app.EditPlanRequest{
				PlanID:          planID,
				Name:            current.Name,
				Deadline:        current.Deadline,
				ExtraActivities: extra,
			}
			if cmd.Flags().Changed("name") {
				req.Name = name
			}
			if cmd.Flags().Changed("deadline") {
				if req.Deadline, err = parseDeadline(a, deadline); err != nil {
					return err
				}
			}

			p, err := a.Plans.Edit(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated plan %s %s: %s, %d activities\n",
				formatter.Bold(p.Name), formatter.Dim(fmt.Sprintf("#%d", p.ID)),
				formatter.FormatDate(p.Deadline), len(p.Activities))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New plan name")
	cmd.Flags().StringVar(&deadline, "deadline", "", "New deadline date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&extra, "add-activity", nil, "Activity to append (repeatable)")

	return cmd
}

func newPlanRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN",
		Short: "Delete a plan with all its activities and completions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			remaining, err := a.Plans.Delete(context.Background(), planID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan #%d %s\n", planID,
				formatter.Dim(fmt.Sprintf("(%d remaining)", len(remaining))))
			return nil
		},
	}
}
