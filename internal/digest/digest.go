// Package digest renders unread notifications as an RFC 5322 email so they
// can be handed to any mail client or MTA.
package digest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/nhle/fleet-maintenance/internal/model"
)

// Options addresses the digest message.
type Options struct {
	From mail.Address
	To   []mail.Address
	Date time.Time
}

// Subject returns the digest subject line for n notifications.
func Subject(n int) string {
	if n == 1 {
		return "Fleet maintenance: 1 unread notification"
	}
	return fmt.Sprintf("Fleet maintenance: %d unread notifications", n)
}

// Write renders notes as a single text/plain message.
func Write(w io.Writer, notes []model.Notification, opts Options) error {
	var h mail.Header
	h.SetDate(opts.Date)
	h.SetAddressList("From", []*mail.Address{&opts.From})
	to := make([]*mail.Address, len(opts.To))
	for i := range opts.To {
		to[i] = &opts.To[i]
	}
	h.SetAddressList("To", to)
	h.SetSubject(Subject(len(notes)))
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	body, err := mail.CreateSingleInlineWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating digest message: %w", err)
	}
	if _, err := io.WriteString(body, Body(notes)); err != nil {
		body.Close()
		return fmt.Errorf("writing digest body: %w", err)
	}
	if err := body.Close(); err != nil {
		return fmt.Errorf("closing digest message: %w", err)
	}
	return nil
}

// Body lists notes newest first, one block per notification.
func Body(notes []model.Notification) string {
	if len(notes) == 0 {
		return "No unread notifications.\n"
	}

	var b strings.Builder
	for _, n := range notes {
		fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(string(n.Type)), n.Title)
		fmt.Fprintf(&b, "%s\n", n.Message)
		fmt.Fprintf(&b, "%s\n\n", n.CreatedAt.Format("Jan 02, 2006 15:04"))
	}
	return b.String()
}
