package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/plantrack/internal/app"
	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage a plan's activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityRenameCmd(app),
		newActivityRemoveCmd(app),
		newActivityShowCmd(app),
	)

	return cmd
}

func newActivityAddCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PLAN NAME [NAME...]",
		Short: "Append activities, assigned to the current workers",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
				return err
			}
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			p, err := a.Plans.AddActivities(context.Background(), planID, args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d activities to %s %s\n",
				len(args)-1, formatter.Bold(p.Name), formatter.Dim(fmt.Sprintf("(%d total)", len(p.Activities))))
			return nil
		},
	}
}

func newActivityRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename PLAN ACTIVITY NAME...",
		Short: "Rename an activity",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
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
			name := strings.Join(args[2:], " ")
			if _, err := a.Plans.RenameActivity(context.Background(), planID, actID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed activity #%d to %s\n", actID, formatter.Bold(strings.TrimSpace(name)))
			return nil
		},
	}
}

func newActivityRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAN ACTIVITY",
		Short: "Delete an activity and its completions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
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
			p, err := a.Plans.DeleteActivity(context.Background(), planID, actID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity #%d from %s\n", actID, formatter.Bold(p.Name))
			return nil
		},
	}
}

func newActivityShowCmd(a *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "show PLAN ACTIVITY",
		Short: "Show each worker's completion of an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSupervisor(a); err != nil {
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
			resp, err := a.Dashboard.ActivityDetail(context.Background(), app.ActivityDetailRequest{
				PlanID: planID, ActivityID: actID, WorkerSearch: search,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityDetail(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter workers by name")

	return cmd
}
