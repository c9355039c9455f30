package notifier

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	domainkafka "github.com/NordCoder/Bloggerus/internal/domain/kafka"
	kafkax "github.com/NordCoder/Bloggerus/internal/repository/kafka"
)

type Controller struct {
	Log *zap.Logger
	Sub *kafkax.Consumer
	UC  *Handler

	mConsumed prometheus.Counter
	mSent     prometheus.Counter
	mErrors   prometheus.Counter
}

func NewController(log *zap.Logger, sub *kafkax.Consumer, uc *Handler) *Controller {
	return &Controller{
		Log: log, Sub: sub, UC: uc,
		mConsumed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_notifier_messages_consumed_total",
			Help: "Contact-received events consumed",
		}),
		mSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_notifier_emails_sent_total",
			Help: "Emails sent",
		}),
		mErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_notifier_errors_total",
			Help: "Errors",
		}),
	}
}

func (c *Controller) Run(ctx context.Context) error {
	handler := kafkax.JSONHandler(
		func(ctx context.Context, _ []byte, ev *domainkafka.ContactReceivedEvent) error {
			c.mConsumed.Inc()
			if ev.ContactID <= 0 {
				c.Log.Warn("contact-received: invalid contact_id", zap.Int64("contact_id", ev.ContactID))
				return nil
			}
			if err := c.UC.HandleContactReceived(ctx, ev.ContactID); err != nil {
				c.mErrors.Inc()
				return err
			}
			c.mSent.Inc()
			return nil
		},
	)

	if err := c.Sub.Consume(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		c.mErrors.Inc()
		c.Log.Warn("kafka consume", zap.Error(err))
		return err
	}
	return ctx.Err()
}
