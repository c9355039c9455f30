package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/NordCoder/Bloggerus/internal/services/contact-notifier/repo"
)

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Handler turns a contact-received event into an email to the site operator.
type Handler struct {
	Contacts repo.ContactReader
	Out      EmailSender
	Operator string
}

func (h *Handler) HandleContactReceived(ctx context.Context, contactID int64) error {
	c, err := h.Contacts.GetByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("get contact: %w", err)
	}

	subject := fmt.Sprintf("New contact message: %s", c.Subject)
	body := fmt.Sprintf(
		"New message via the contact form.\n\nFrom: %s <%s>\nReceived: %s\n\n%s\n",
		c.Name, c.Email, c.CreatedAt.UTC().Format(time.RFC3339), c.Message,
	)

	if err := h.Out.Send(ctx, h.Operator, subject, body); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
