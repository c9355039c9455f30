package kafka

import "context"

type ContactEvents interface {
	PublishContactReceived(ctx context.Context, contactID int64) error
}
