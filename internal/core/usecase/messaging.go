package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// previewLength caps the denormalized last-message preview on a conversation.
const previewLength = 120

// PairKey builds the canonical conversation key for an unordered pair of
// participant ids. Symmetric: PairKey(a, b) == PairKey(b, a).
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// MessagingServiceArgs contain the mandatory arguments for the MessagingService.
type MessagingServiceArgs struct {
	// Conversations is the conversation repository.
	Conversations ports.ConversationRepository

	// Watcher is the live-query port for conversation lists.
	Watcher ports.ConversationWatcher

	// Sender publishes message notifications. May be nil; notifications are
	// best-effort.
	Sender ports.Sender
}

// MessagingServiceOptArgs are the optional arguments for building a MessagingService.
type MessagingServiceOptArgs = func(*MessagingService)

// WithMessagingNowFunc can be used to override the nowFunc. Useful for testing.
func WithMessagingNowFunc(nowFunc func() time.Time) MessagingServiceOptArgs {
	return func(m *MessagingService) {
		m.nowFunc = nowFunc
	}
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(args MessagingServiceArgs, optArgs ...MessagingServiceOptArgs) *MessagingService {
	m := &MessagingService{
		conversations: args.Conversations,
		watcher:       args.Watcher,
		sender:        args.Sender,
		nowFunc:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(m)
	}
	return m
}

// MessagingService gathers the functionality around two-party conversations
// and unread tracking.
type MessagingService struct {
	conversations ports.ConversationRepository
	watcher       ports.ConversationWatcher
	sender        ports.Sender
	nowFunc       func() time.Time
}

// FindExistingConversation returns the conversation between the two users, or
// model.ErrNotFound when the pair never talked. Symmetric in its arguments.
func (m *MessagingService) FindExistingConversation(ctx context.Context, userA, userB string) (*model.Conversation, error) {
	conv, err := m.conversations.FindByPairKey(ctx, PairKey(userA, userB))
	if err != nil {
		return nil, fmt.Errorf("error finding conversation by pair key: %w", err)
	}
	return conv, nil
}

// SendMessage appends a message to the conversation between sender and
// counterpart, lazily creating the conversation on the first message of the
// pair. The recipient is marked unread in the same store update that records
// the last-message preview.
func (m *MessagingService) SendMessage(ctx context.Context, args model.SendMessageArgs) (*model.SendMessageResponse, error) {
	if args.Sender.Status == model.StatusPending {
		return nil, model.ErrAccountPending
	}
	text := strings.TrimSpace(args.Text)
	if text == "" {
		return nil, model.NewValidationError("text", "message text must not be empty")
	}
	if args.Counterpart.ID == "" {
		return nil, model.NewValidationError("counterpart", "counterpart id is required")
	}
	if args.Counterpart.ID == args.Sender.UserID {
		return nil, model.NewValidationError("counterpart", "cannot message yourself")
	}

	now := m.nowFunc()
	created := false
	conv, err := m.conversations.FindByPairKey(ctx, PairKey(args.Sender.UserID, args.Counterpart.ID))
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("error finding conversation by pair key: %w", err)
		}
		conv = &model.Conversation{
			PairKey: PairKey(args.Sender.UserID, args.Counterpart.ID),
			Participants: []model.Participant{
				{
					ID:         args.Sender.UserID,
					Name:       args.Sender.Name,
					Role:       args.Sender.Role,
					Email:      args.Sender.Email,
					PictureURL: args.Sender.PictureURL,
				},
				args.Counterpart,
			},
			Subject:   args.Subject,
			CreatedAt: now,
		}
		switch err := m.conversations.SaveConversation(ctx, conv); {
		case err == nil:
			created = true
		case errors.Is(err, model.ErrAlreadyExists):
			// a concurrent first message won the insert; reuse its thread
			conv, err = m.conversations.FindByPairKey(ctx, PairKey(args.Sender.UserID, args.Counterpart.ID))
			if err != nil {
				return nil, fmt.Errorf("error finding conversation by pair key: %w", err)
			}
		default:
			return nil, fmt.Errorf("error creating conversation: %w", err)
		}
	}

	recipient, ok := conv.Counterpart(args.Sender.UserID)
	if !ok {
		return nil, model.ErrUnauthorized
	}

	msg := &model.Message{
		ConversationID:   conv.ID,
		SenderID:         args.Sender.UserID,
		SenderName:       args.Sender.Name,
		SenderRole:       args.Sender.Role,
		SenderPictureURL: args.Sender.PictureURL,
		Text:             text,
		Read:             false,
		CreatedAt:        now,
	}
	if err := m.conversations.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("error appending message: %w", err)
	}

	preview := text
	if len(preview) > previewLength {
		// back off to a rune boundary so the preview stays valid UTF-8
		cut := previewLength
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}
	updated, err := m.conversations.RecordIncoming(ctx, conv.ID, recipient.ID, preview, now)
	if err != nil {
		return nil, fmt.Errorf("error recording message on conversation: %w", err)
	}

	if m.sender != nil {
		event := model.NotificationEvent{
			Kind:           model.NotificationMessageCreated,
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			ActorName:      args.Sender.Name,
			Subject:        updated.Subject,
			Text:           preview,
			CreatedAt:      now,
		}
		if err := m.sender.Send(ctx, event); err != nil {
			// notifications are best-effort; the message is already stored
			log.WithError(err).Warn("could not publish message notification")
		}
	}

	return &model.SendMessageResponse{Conversation: *updated, Message: *msg, Created: created}, nil
}

// MarkConversationAsRead removes the viewer from the conversation's unread
// set. Idempotent: repeating the call changes nothing.
func (m *MessagingService) MarkConversationAsRead(ctx context.Context, conversationID, viewerID string) error {
	if err := m.conversations.MarkRead(ctx, conversationID, viewerID); err != nil {
		return fmt.Errorf("error marking conversation as read: %w", err)
	}
	return nil
}

// ListConversations lists the user's conversations, most recent first.
func (m *MessagingService) ListConversations(ctx context.Context, args model.ListConversationsArgs) (*model.ListConversationsResponse, error) {
	convs, err := m.conversations.ListConversations(ctx, args.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	return &model.ListConversationsResponse{Conversations: convs}, nil
}

// ListMessages lists the messages of one conversation, oldest first. The
// viewer must be a participant; viewing also clears the viewer's unread flag.
func (m *MessagingService) ListMessages(ctx context.Context, args model.ListMessagesArgs) (*model.ListMessagesResponse, error) {
	conv, err := m.conversations.GetConversation(ctx, args.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("error fetching conversation: %w", err)
	}
	if _, ok := conv.Counterpart(args.ViewerID); !ok {
		return nil, model.ErrUnauthorized
	}

	msgs, err := m.conversations.ListMessages(ctx, args.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	// store returns ascending order already; keep a stable sort as the
	// contract, not an assumption
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })

	if conv.IsUnreadBy(args.ViewerID) {
		if err := m.conversations.MarkRead(ctx, args.ConversationID, args.ViewerID); err != nil {
			return nil, fmt.Errorf("error marking conversation as read: %w", err)
		}
		kept := conv.UnreadBy[:0]
		for _, id := range conv.UnreadBy {
			if id != args.ViewerID {
				kept = append(kept, id)
			}
		}
		conv.UnreadBy = kept
	}

	return &model.ListMessagesResponse{Conversation: *conv, Messages: msgs}, nil
}

// WatchConversations starts a live subscription on the user's conversation
// list. The callback receives the full current snapshot on every change. The
// returned function cancels the subscription and must be invoked when the
// client goes away.
func (m *MessagingService) WatchConversations(ctx context.Context, userID string, fn func([]model.Conversation)) (func(), error) {
	cancel, err := m.watcher.WatchConversations(ctx, userID, fn)
	if err != nil {
		return nil, fmt.Errorf("error starting conversation watch: %w", err)
	}
	return cancel, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
