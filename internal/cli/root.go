package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/plantrack/internal/domain"
	"github.com/alexanderramin/plantrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and session used by CLI commands. One App backs
// every command tree built during a shell session, so Session survives
// between commands.
type App struct {
	Plans     service.PlanService
	Directory service.DirectoryService
	Dashboard service.DashboardService

	// Clock defaults to time.Now.
	Clock func() time.Time
	// Location interprets date-only deadlines.
	Location *time.Location

	// Session is the signed-in user, nil when nobody is.
	Session *domain.User

	// HistoryPath is where the shell keeps command history; empty disables it.
	HistoryPath string
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// NewRootCmd creates the top-level "plantrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var as string

	root := &cobra.Command{
		Use:   "plantrack",
		Short: "Monthly activity plans and worker progress",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if as == "" {
				return nil
			}
			u, err := app.Directory.Login(context.Background(), as)
			if err != nil {
				return err
			}
			app.Session = u
			return nil
		},
	}
	root.PersistentFlags().StringVar(&as, "as", "", "Run the command signed in as this username")

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newPlanCmd(app),
		newActivityCmd(app),
		newWorkersCmd(app),
		newWorkerCmd(app),
		newMineCmd(app),
		newCompleteCmd(app),
		newReportCmd(app),
		newShellCmd(app),
	)

	return root
}
