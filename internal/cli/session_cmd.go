package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login USERNAME",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Directory.Login(context.Background(), args[0])
			if err != nil {
				return err
			}
			app.Session = u
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s %s\n",
				formatter.Bold(u.Name), formatter.Dim("("+string(u.Role)+")"))
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in."))
				return nil
			}
			name := app.Session.Name
			app.Session = nil
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", name)
			return nil
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := requireSession(app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.Bold(u.Name), formatter.Dim("@"+u.Username), formatter.Dim("("+string(u.Role)+")"))
			return nil
		},
	}
}
