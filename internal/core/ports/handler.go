package ports

import (
	"context"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// NotificationHandler handles incoming notification events on the worker side.
type NotificationHandler interface {
	// Handle will receive an incoming notification event and handle it.
	Handle(ctx context.Context, event model.NotificationEvent) error
}
