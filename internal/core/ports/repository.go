package ports

import (
	"context"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// ArtistRepository is the persistence port for artist profiles.
type ArtistRepository interface {
	// SaveArtist durably saves the profile.
	SaveArtist(ctx context.Context, artist *model.ArtistProfile) error

	// UpdateArtist updates the profile. All non-zero fields are updated.
	// Returns model.ErrNotFound if the id does not exist.
	UpdateArtist(ctx context.Context, artist *model.ArtistProfile) error

	// SetArtistPublished writes the published flag unconditionally, so a
	// false value takes the profile off the public listing.
	// Returns model.ErrNotFound if the id does not exist.
	SetArtistPublished(ctx context.Context, id string, published bool) error

	// GetArtist fetches one profile by id. Returns model.ErrNotFound if absent.
	GetArtist(ctx context.Context, id string) (*model.ArtistProfile, error)

	// ListArtists lists profiles matching the server-side predicates,
	// ordered by id ascending.
	ListArtists(ctx context.Context, query ListArtistsQuery) (*ListArtistsResult, error)
}

// ListArtistsQuery gathers the server-side predicates of the artist query.
// Every further narrowing happens client-side in the filter package.
type ListArtistsQuery struct {
	// Published restricts to published profiles. Search always sets it.
	Published bool

	// Gender narrows by gender code. Zero-value will be ignored as filter.
	Gender string
}

// ListArtistsResult gathers the artists matching the query parameters.
type ListArtistsResult struct {
	Artists []model.ArtistProfile
}

// ProgrammerRepository is the persistence port for programmer profiles.
type ProgrammerRepository interface {
	// SaveProgrammer durably saves the profile.
	SaveProgrammer(ctx context.Context, programmer *model.ProgrammerProfile) error

	// GetProgrammer fetches one profile by id. Returns model.ErrNotFound if absent.
	GetProgrammer(ctx context.Context, id string) (*model.ProgrammerProfile, error)

	// UpdateProgrammerStatus sets the account status. Returns model.ErrNotFound
	// if the id does not exist.
	UpdateProgrammerStatus(ctx context.Context, id string, status model.ProgrammerStatus) error
}

// ConversationRepository is the persistence port for conversations and their
// message sub-collection.
type ConversationRepository interface {
	// SaveConversation durably saves a new conversation. Returns
	// model.ErrAlreadyExists when a conversation with the same pair key
	// was already created.
	SaveConversation(ctx context.Context, conversation *model.Conversation) error

	// GetConversation fetches one conversation by id. Returns model.ErrNotFound if absent.
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)

	// FindByPairKey fetches the conversation for a canonical participant pair
	// key. Returns model.ErrNotFound when the pair never talked.
	FindByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error)

	// ListConversations lists all conversations the user participates in,
	// ordered by last-message time descending.
	ListConversations(ctx context.Context, userID string) ([]model.Conversation, error)

	// AppendMessage appends a message to the conversation's sub-collection.
	AppendMessage(ctx context.Context, message *model.Message) error

	// ListMessages lists a conversation's messages ordered by creation ascending.
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)

	// RecordIncoming updates the denormalized last-message fields and adds the
	// recipient to the unread set in a single atomic update.
	// Returns model.ErrNotFound if the conversation does not exist.
	RecordIncoming(ctx context.Context, conversationID, recipientID, preview string, at time.Time) (*model.Conversation, error)

	// MarkRead removes the viewer from the unread set. No-op when absent.
	MarkRead(ctx context.Context, conversationID, viewerID string) error
}

// ConversationWatcher is the push-based live-query port. Implementations
// deliver the full current conversation list of the user on every change.
type ConversationWatcher interface {
	// WatchConversations starts a subscription for the user. The callback is
	// invoked once with the initial snapshot and again after every change.
	// The returned function cancels the subscription; callers must invoke it
	// or the watcher goroutine lives for the remainder of the context.
	WatchConversations(ctx context.Context, userID string, fn func([]model.Conversation)) (func(), error)
}

// RecommendationRepository is the persistence port for recommendations.
type RecommendationRepository interface {
	// SaveRecommendation durably saves the recommendation.
	SaveRecommendation(ctx context.Context, recommendation *model.Recommendation) error

	// GetRecommendation fetches one recommendation by id. Returns model.ErrNotFound if absent.
	GetRecommendation(ctx context.Context, id string) (*model.Recommendation, error)

	// ListRecommendations lists approved recommendations for an artist,
	// ordered by creation descending.
	ListRecommendations(ctx context.Context, artistID string) ([]model.Recommendation, error)

	// DeleteRecommendation removes the recommendation by id.
	DeleteRecommendation(ctx context.Context, id string) error
}
