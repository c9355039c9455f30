package contact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NordCoder/Bloggerus/internal/domain/contact"
	"github.com/NordCoder/Bloggerus/internal/domain/kafka"
	"github.com/NordCoder/Bloggerus/internal/domain/outbox"
)

type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Usecase struct {
	tx       TxRunner
	contacts contact.Repo
	outbox   outbox.Repository
}

func New(tx TxRunner, contacts contact.Repo, ob outbox.Repository) *Usecase {
	return &Usecase{tx: tx, contacts: contacts, outbox: ob}
}

// Submit stores the contact message and enqueues the notification event in
// the same transaction, so a stored message is always eventually delivered.
func (u *Usecase) Submit(ctx context.Context, c *contact.Contact) error {
	return u.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := u.contacts.Create(ctx, c); err != nil {
			return err
		}
		data, err := json.Marshal(kafka.ContactReceivedEvent{ContactID: c.ID})
		if err != nil {
			return fmt.Errorf("marshal contact event: %w", err)
		}
		key := fmt.Sprintf("contact-%d", c.ID)
		return u.outbox.Enqueue(ctx, key, outbox.KindContactReceived, data)
	})
}
