package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// NewNotifier builds a new notifier.
func NewNotifier(sender ports.Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notifier adapts raw notification events to deliverable ones and forwards
// them to the outbound deliveries topic. Mail rendering and delivery happen
// downstream.
type Notifier struct {
	sender ports.Sender
}

func (n *Notifier) Handle(ctx context.Context, event model.NotificationEvent) error {

	// 1. events without an addressable recipient cannot be delivered; drop
	// them instead of failing the subscription
	if strings.TrimSpace(event.RecipientEmail) == "" {
		log.WithField("event-id", event.ID).Debug("dropping notification event without recipient email")
		return nil
	}

	// 2. unknown kinds are dropped as well; a consumer ahead of this version
	// of the worker should not wedge the subscription
	if event.Kind != model.NotificationMessageCreated && event.Kind != model.NotificationRecommendationCreated {
		log.WithField("kind", event.Kind).Debug("dropping notification event of unknown kind")
		return nil
	}

	if event.Subject == "" {
		event.Subject = defaultSubject(event)
	}

	if err := n.sender.Send(ctx, event); err != nil {
		return fmt.Errorf("error sending notification event ID [%s]: %w", event.ID, err)
	}

	return nil
}

func defaultSubject(event model.NotificationEvent) string {
	switch event.Kind {
	case model.NotificationMessageCreated:
		return fmt.Sprintf("New message from %s", event.ActorName)
	case model.NotificationRecommendationCreated:
		return fmt.Sprintf("%s wrote you a recommendation", event.ActorName)
	}
	return "Notification"
}
