package listener

import (
	"context"

	"lacque/internal/operator/feed"
	"lacque/pkg/kafka"
	"lacque/pkg/logger"
	"lacque/pkg/model"
)

// Listener consumes booking events and appends them to the activity feed.
type Listener struct {
	feed *feed.ActivityFeed
	log  *logger.Logger
}

func New(activityFeed *feed.ActivityFeed, log *logger.Logger) *Listener {
	return &Listener{
		feed: activityFeed,
		log:  log,
	}
}

// Handle implements kafka.MessageHandler. An undecodable payload is a
// permanent failure and goes straight to the DLQ.
func (l *Listener) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("invalid booking event payload", err)
	}

	l.feed.Add(event)

	l.log.Info("Booking event recorded",
		"event_id", event.ID,
		"event_type", event.Type,
		"merchant_id", event.MerchantID,
		"staff_id", event.StaffID,
		"date", event.Date,
		"time", event.Time,
	)
	return nil
}
