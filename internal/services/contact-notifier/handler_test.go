package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/NordCoder/Bloggerus/internal/domain/contact"
	"github.com/NordCoder/Bloggerus/internal/services/contact-notifier/repo"
)

type fakeContactRepo struct {
	rows map[int64]*contact.Contact
}

func (r *fakeContactRepo) Create(context.Context, *contact.Contact) error { return nil }

func (r *fakeContactRepo) GetByID(_ context.Context, id int64) (*contact.Contact, error) {
	c, ok := r.rows[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *c
	return &cp, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (s *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestHandleContactReceived(t *testing.T) {
	contacts := &fakeContactRepo{rows: map[int64]*contact.Contact{
		7: {
			ID: 7, Name: "Bob", Email: "bob@example.com",
			Subject: "Broken link", Message: "The about page 404s.",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	out := &fakeSender{}
	h := &Handler{
		Contacts: repo.ContactReader{R: contacts},
		Out:      out,
		Operator: "ops@example.com",
	}

	require.NoError(t, h.HandleContactReceived(context.Background(), 7))
	require.Len(t, out.sent, 1)

	m := out.sent[0]
	require.Equal(t, "ops@example.com", m.to)
	require.Contains(t, m.subject, "Broken link")
	require.Contains(t, m.body, "Bob")
	require.Contains(t, m.body, "bob@example.com")
	require.Contains(t, m.body, "The about page 404s.")
}

func TestHandleContactReceived_UnknownContact(t *testing.T) {
	h := &Handler{
		Contacts: repo.ContactReader{R: &fakeContactRepo{rows: map[int64]*contact.Contact{}}},
		Out:      &fakeSender{},
		Operator: "ops@example.com",
	}
	require.Error(t, h.HandleContactReceived(context.Background(), 1))
}

func TestHandleContactReceived_SendFailure(t *testing.T) {
	contacts := &fakeContactRepo{rows: map[int64]*contact.Contact{
		1: {ID: 1, Name: "Bob", Subject: "hi", Message: "hello"},
	}}
	h := &Handler{
		Contacts: repo.ContactReader{R: contacts},
		Out:      &fakeSender{err: errors.New("smtp down")},
		Operator: "ops@example.com",
	}
	require.Error(t, h.HandleContactReceived(context.Background(), 1))
}
