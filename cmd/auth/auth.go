package auth

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/internal/session"
)

const passwordEnv = "CLINIC_PASSWORD"

func NewAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, register and sign out",
	}

	cmd.AddCommand(newLoginCommand())
	cmd.AddCommand(newRegisterCommand())
	cmd.AddCommand(newLogoutCommand())
	cmd.AddCommand(newStatusCommand())

	return cmd
}

// credentials fills in anything not given by flag: the password from
// $CLINIC_PASSWORD, then interactively.
func credentials(env *cmdutil.Env, email, password string) (string, string, error) {
	var err error
	if email == "" {
		if email, err = env.ReadLine("Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if password == "" {
		if password, err = env.ReadLine("Password: "); err != nil {
			return "", "", err
		}
	}
	return email, password, nil
}

func report(env *cmdutil.Env, res session.Result, success string) error {
	if res.Success {
		env.Notifier.Success(success)
		return nil
	}
	env.Notifier.Error(res.Message)
	return cmdutil.Reported(errors.New(res.Message))
}

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				email, password, err := credentials(env, email, password)
				if err != nil {
					return err
				}
				return report(env, env.Session.Login(ctx, email, password), "Signed in as "+email)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or set "+passwordEnv+")")

	return cmd
}

func newRegisterCommand() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				var err error
				if firstName == "" {
					if firstName, err = env.ReadLine("First name: "); err != nil {
						return err
					}
				}
				if lastName == "" {
					if lastName, err = env.ReadLine("Last name: "); err != nil {
						return err
					}
				}
				email, password, err := credentials(env, email, password)
				if err != nil {
					return err
				}
				return report(env, env.Session.Register(ctx, email, password, firstName, lastName), "Account created for "+email)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or set "+passwordEnv+")")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				if !env.Session.Authenticated() {
					env.Printer.Line("Not signed in.")
				}
				env.Session.Logout(ctx)
				return nil
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.Run(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				if !env.Session.Authenticated() {
					env.Printer.Line("Not signed in.")
					return nil
				}
				env.Printer.Line("Signed in against %s.", env.API.BaseURL())
				return nil
			})
		},
	}
}
