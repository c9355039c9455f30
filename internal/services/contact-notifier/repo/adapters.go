package repo

import (
	"context"

	"github.com/NordCoder/Bloggerus/internal/domain/contact"
)

type ContactReader struct{ R contact.Repo }

func (a ContactReader) GetByID(ctx context.Context, id int64) (*contact.Contact, error) {
	c, err := a.R.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &contact.Contact{
		ID: c.ID, Name: c.Name, Email: c.Email,
		Subject: c.Subject, Message: c.Message, CreatedAt: c.CreatedAt,
	}, nil
}
