package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/fleet-maintenance/internal/credential"
	"github.com/nhle/fleet-maintenance/internal/model"
)

// openRing opens the keyring, keeping its file fallback next to the
// database.
func openRing(cfg *model.AppConfig) (*credential.Ring, error) {
	return credential.Open(filepath.Join(filepath.Dir(cfg.Storage.Path), "credentials"))
}

// promptCredentials asks for whichever of email and password is missing.
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("email is required")
				}
				return nil
			}))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// rememberedPassword returns the keyring password for email, or "" when
// none is stored. Keyring failures are logged and treated as no password.
func rememberedPassword(open func() (*credential.Ring, error), email string, log *slog.Logger) string {
	ring, err := open()
	if err != nil {
		log.Warn("opening keyring", "error", err)
		return ""
	}
	pw, err := ring.Password(email)
	if err != nil {
		if !errors.Is(err, credential.ErrNotFound) {
			log.Warn("reading remembered password", "email", email, "error", err)
		}
		return ""
	}
	return pw
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		remember, _ := cmd.Flags().GetBool("remember")

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		// A remembered password stands in for the prompt.
		if email != "" && password == "" {
			password = rememberedPassword(func() (*credential.Ring, error) {
				return openRing(a.Config())
			}, email, a.Logger())
		}
		if err := promptCredentials(&email, &password); err != nil {
			return fmt.Errorf("reading credentials: %w", err)
		}

		user, err := a.Auth.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.New("invalid credentials")
		}
		a.Logger().Info("signed in", "user", user.Email)

		if remember {
			ring, err := openRing(a.Config())
			if err != nil {
				return err
			}
			if err := ring.Remember(email, password); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Name, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		forget, _ := cmd.Flags().GetBool("forget")

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		if err := a.Auth.Logout(ctx); err != nil {
			return err
		}
		if forget && user != nil {
			ring, err := openRing(a.Config())
			if err != nil {
				return err
			}
			if err := ring.Forget(user.Email); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Auth.CurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		if user == nil {
			return errNotLoggedIn
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", user.Name, user.Email, user.Role)
		return nil
	},
}
