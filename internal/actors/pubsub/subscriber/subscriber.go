package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"

	log "github.com/sirupsen/logrus"
)

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription
	Subscription *pubsub.Subscription

	// NotificationHandler handles the decoded events.
	NotificationHandler ports.NotificationHandler
}

// Subscriber is a pubsub async subscriber
type Subscriber struct {
	subscription        *pubsub.Subscription
	notificationHandler ports.NotificationHandler
}

// NewSubscriber creates a subscriber
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription:        args.Subscription,
		notificationHandler: args.NotificationHandler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be started in it's own go-routine.
// The way to terminate the method is to cancel the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {

		event, err := decodeMsgIntoNotificationEvent(msg)
		if err != nil {
			log.WithError(err).Error("error decoding message into notification event")
			msg.Nack()
			return
		}

		if err := s.notificationHandler.Handle(ctx, *event); err != nil {
			log.WithError(err).Error("error in notification event handler")
			msg.Nack()
		} else {
			msg.Ack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

func decodeMsgIntoNotificationEvent(msg *pubsub.Message) (*model.NotificationEvent, error) {
	if msg == nil {
		return nil, errors.New("cannot decode nil pubsub msg")
	}
	event := new(model.NotificationEvent)
	if err := json.Unmarshal(msg.Data, event); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if event.ID == "" {
		event.ID = msg.ID
	}
	return event, nil
}
