package ports

import (
	"context"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// Sender is the port for publishing outbound notification events.
type Sender interface {
	// Send sends a notification event.
	Send(ctx context.Context, event model.NotificationEvent) error
}
