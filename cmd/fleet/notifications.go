package main

import (
	"fmt"

	"github.com/emersion/go-message/mail"
	"github.com/spf13/cobra"

	"github.com/nhle/fleet-maintenance/internal/digest"
	"github.com/nhle/fleet-maintenance/internal/ui/render"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notes"},
	Short:   "Read and manage the notification feed",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		notes := a.Notes.List()
		if unread, _ := cmd.Flags().GetBool("unread"); unread {
			notes = a.Notes.Unread()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n\n", a.Notes.UnreadCount())
		fmt.Fprintln(cmd.OutOrStdout(), render.Notifications(notes))
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Notes.MarkAsRead(cmd.Context(), args[0])
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Notes.MarkAllAsRead(cmd.Context())
	},
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <notification-id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Notes.Delete(cmd.Context(), args[0])
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every notification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newSessionApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Notes.ClearAll(cmd.Context())
	},
}

var notificationsDigestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Write unread notifications to stdout as an email message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		flags := cmd.Flags()

		from, _ := flags.GetString("from")
		sender, err := mail.ParseAddress(from)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}

		a, err := newSessionApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		toFlag, _ := flags.GetStringSlice("to")
		if len(toFlag) == 0 {
			user, err := a.Auth.CurrentUser(ctx)
			if err != nil {
				return err
			}
			toFlag = []string{(&mail.Address{Name: user.Name, Address: user.Email}).String()}
		}
		var to []mail.Address
		for _, s := range toFlag {
			addr, err := mail.ParseAddress(s)
			if err != nil {
				return fmt.Errorf("parsing --to %q: %w", s, err)
			}
			to = append(to, *addr)
		}

		n, err := a.Digest(cmd.OutOrStdout(), digest.Options{From: *sender, To: to})
		if err != nil {
			return err
		}
		a.Logger().Info("digest written", "notifications", n)

		if markRead, _ := flags.GetBool("mark-read"); markRead && n > 0 {
			return a.Notes.MarkAllAsRead(ctx)
		}
		return nil
	},
}
