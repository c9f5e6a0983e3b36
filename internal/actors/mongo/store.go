package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	artistsCollection         = "artists"
	programmersCollection     = "programmers"
	conversationsCollection   = "conversations"
	messagesCollection        = "messages"
	recommendationsCollection = "recommendations"
)

// Store is a mongo adapter for persistence. It implements the repository and
// watcher ports of the core.
type Store struct {
	artists         *mongo.Collection
	programmers     *mongo.Collection
	conversations   *mongo.Collection
	messages        *mongo.Collection
	recommendations *mongo.Collection
	nowFunc         func() time.Time
}

// StoreArgs are the mandatory arguments for the creation of a Store.
type StoreArgs struct {
	// Database is the mongo database holding all collections.
	Database *mongo.Database
}

// StoreOptArgs are the optional arguments for building a Store.
type StoreOptArgs = func(*Store)

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) StoreOptArgs {
	return func(s *Store) {
		s.nowFunc = nowFunc
	}
}

// NewStore creates a new Store.
func NewStore(args StoreArgs, optArgs ...StoreOptArgs) (*Store, error) {
	if args.Database == nil {
		return nil, errors.New("nil database passed to store")
	}
	s := &Store{
		artists:         args.Database.Collection(artistsCollection),
		programmers:     args.Database.Collection(programmersCollection),
		conversations:   args.Database.Collection(conversationsCollection),
		messages:        args.Database.Collection(messagesCollection),
		recommendations: args.Database.Collection(recommendationsCollection),
		nowFunc:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(s)
	}
	return s, nil
}

// EnsureIndexes creates the indexes the queries rely on. Idempotent; called
// once at server startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.artists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "published", Value: 1}, {Key: "gender", Value: 1}},
	}); err != nil {
		return err
	}
	unique := options.Index().SetUnique(true)
	if _, err := s.conversations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pair_key", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}
	if _, err := s.conversations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "participants.id", Value: 1}, {Key: "last_message_at", Value: -1}},
	}); err != nil {
		return err
	}
	if _, err := s.messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}},
	}); err != nil {
		return err
	}
	if _, err := s.recommendations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "artist_id", Value: 1}, {Key: "is_approved", Value: 1}, {Key: "created_at", Value: -1}},
	}); err != nil {
		return err
	}
	return nil
}
