package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	log "github.com/sirupsen/logrus"
)

// SaveConversation will save a new conversation in the database.
func (s *Store) SaveConversation(ctx context.Context, conversation *model.Conversation) error {
	if conversation == nil {
		return errors.New("nil conversation passed to save method")
	}

	dbConv := new(conversationDB)
	if len(conversation.ID) == 0 {
		dbConv.ID = primitive.NewObjectID()
	} else {
		var err error
		dbConv.ID, err = primitive.ObjectIDFromHex(conversation.ID)
		if err != nil {
			return err
		}
	}
	dbConv.PairKey = conversation.PairKey
	dbConv.Subject = conversation.Subject
	dbConv.UnreadBy = conversation.UnreadBy
	dbConv.Participants = make([]participantDB, len(conversation.Participants))
	for i, p := range conversation.Participants {
		dbConv.Participants[i] = participantDB{
			ID:         p.ID,
			Name:       p.Name,
			Role:       p.Role,
			Email:      p.Email,
			PictureURL: p.PictureURL,
		}
	}
	if !conversation.CreatedAt.IsZero() {
		dbConv.CreatedAt = conversation.CreatedAt
	} else {
		dbConv.CreatedAt = s.nowFunc()
	}

	if _, err := s.conversations.InsertOne(ctx, dbConv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("conversation for pair key %q: %w", conversation.PairKey, model.ErrAlreadyExists)
		}
		return err
	}

	conversation.ID = dbConv.ID.Hex()
	conversation.CreatedAt = dbConv.CreatedAt
	return nil
}

// GetConversation fetches one conversation by id.
func (s *Store) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	dbConv := new(conversationDB)
	if err := s.conversations.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(dbConv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	conv := conversationToModel(*dbConv)
	return &conv, nil
}

// FindByPairKey fetches the conversation for a canonical participant pair key.
func (s *Store) FindByPairKey(ctx context.Context, pairKey string) (*model.Conversation, error) {
	dbConv := new(conversationDB)
	if err := s.conversations.FindOne(ctx, bson.D{{Key: "pair_key", Value: pairKey}}).Decode(dbConv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	conv := conversationToModel(*dbConv)
	return &conv, nil
}

// ListConversations lists all conversations the user participates in, most
// recently active first.
func (s *Store) ListConversations(ctx context.Context, userID string) ([]model.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := s.conversations.Find(ctx, bson.M{"participants.id": userID}, opts)
	if err != nil {
		return nil, err
	}
	var dbConvs []conversationDB
	if err := cursor.All(ctx, &dbConvs); err != nil {
		return nil, err
	}
	convs := make([]model.Conversation, len(dbConvs))
	for i, c := range dbConvs {
		convs[i] = conversationToModel(c)
	}
	return convs, nil
}

// AppendMessage appends a message to the conversation's sub-collection.
func (s *Store) AppendMessage(ctx context.Context, message *model.Message) error {
	if message == nil {
		return errors.New("nil message passed to append method")
	}
	conversationID, err := primitive.ObjectIDFromHex(message.ConversationID)
	if err != nil {
		return err
	}

	dbMsg := &messageDB{
		ID:               primitive.NewObjectID(),
		ConversationID:   conversationID,
		SenderID:         message.SenderID,
		SenderName:       message.SenderName,
		SenderRole:       message.SenderRole,
		SenderPictureURL: message.SenderPictureURL,
		Text:             message.Text,
		Read:             message.Read,
		CreatedAt:        message.CreatedAt,
	}
	if dbMsg.CreatedAt.IsZero() {
		dbMsg.CreatedAt = s.nowFunc()
	}
	if _, err := s.messages.InsertOne(ctx, dbMsg); err != nil {
		return err
	}

	message.ID = dbMsg.ID.Hex()
	message.CreatedAt = dbMsg.CreatedAt
	return nil
}

// ListMessages lists a conversation's messages ordered by creation ascending.
func (s *Store) ListMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, model.ErrNotFound
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.messages.Find(ctx, bson.M{"conversation_id": objectID}, opts)
	if err != nil {
		return nil, err
	}
	var dbMsgs []messageDB
	if err := cursor.All(ctx, &dbMsgs); err != nil {
		return nil, err
	}
	msgs := make([]model.Message, len(dbMsgs))
	for i, m := range dbMsgs {
		msgs[i] = messageToModel(m)
	}
	return msgs, nil
}

// RecordIncoming updates the denormalized last-message fields and adds the
// recipient to the unread set in one update, so concurrent senders cannot
// overwrite each other's unread state.
func (s *Store) RecordIncoming(ctx context.Context, conversationID, recipientID, preview string, at time.Time) (*model.Conversation, error) {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, model.ErrNotFound
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "last_message_text", Value: preview},
			{Key: "last_message_at", Value: at},
		}},
		{Key: "$addToSet", Value: bson.D{{Key: "unread_by", Value: recipientID}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	dbConv := new(conversationDB)
	if err := s.conversations.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: objectID}}, update, opts).Decode(dbConv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	conv := conversationToModel(*dbConv)
	return &conv, nil
}

// MarkRead removes the viewer from the unread set. A viewer that is not in
// the set is a no-op, which makes the call idempotent.
func (s *Store) MarkRead(ctx context.Context, conversationID, viewerID string) error {
	objectID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return model.ErrNotFound
	}
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "unread_by", Value: viewerID}}}}
	res, err := s.conversations.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return model.ErrNotFound
	}
	return nil
}

// WatchConversations opens a change stream on the conversations collection
// filtered to the user's threads and delivers the full current list on every
// change, starting with an initial snapshot. The returned function cancels
// the subscription.
func (s *Store) WatchConversations(ctx context.Context, userID string, fn func([]model.Conversation)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{
		{Key: "fullDocument.participants.id", Value: userID},
	}}}}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.conversations.Watch(ctx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		defer stream.Close(context.Background())

		s.deliverSnapshot(ctx, userID, fn)
		for stream.Next(ctx) {
			// the change event itself is discarded; subscribers always get
			// the full re-derived list, not a diff
			s.deliverSnapshot(ctx, userID, fn)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.WithError(err).WithField("user-id", userID).Error("conversation change stream terminated")
		}
	}()

	return cancel, nil
}

func (s *Store) deliverSnapshot(ctx context.Context, userID string, fn func([]model.Conversation)) {
	convs, err := s.ListConversations(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).WithField("user-id", userID).Error("could not list conversations for watch snapshot")
		}
		return
	}
	fn(convs)
}

func conversationToModel(dbConv conversationDB) model.Conversation {
	conv := model.Conversation{
		ID:              dbConv.ID.Hex(),
		PairKey:         dbConv.PairKey,
		Subject:         dbConv.Subject,
		LastMessageText: dbConv.LastMessageText,
		LastMessageAt:   dbConv.LastMessageAt,
		UnreadBy:        dbConv.UnreadBy,
		CreatedAt:       dbConv.CreatedAt,
	}
	conv.Participants = make([]model.Participant, len(dbConv.Participants))
	for i, p := range dbConv.Participants {
		conv.Participants[i] = model.Participant{
			ID:         p.ID,
			Name:       p.Name,
			Role:       p.Role,
			Email:      p.Email,
			PictureURL: p.PictureURL,
		}
	}
	return conv
}

func messageToModel(dbMsg messageDB) model.Message {
	return model.Message{
		ID:               dbMsg.ID.Hex(),
		ConversationID:   dbMsg.ConversationID.Hex(),
		SenderID:         dbMsg.SenderID,
		SenderName:       dbMsg.SenderName,
		SenderRole:       dbMsg.SenderRole,
		SenderPictureURL: dbMsg.SenderPictureURL,
		Text:             dbMsg.Text,
		Read:             dbMsg.Read,
		CreatedAt:        dbMsg.CreatedAt,
	}
}

type conversationDB struct {
	// ID unique identifier of the conversation.
	ID primitive.ObjectID `bson:"_id"`

	// PairKey is the canonical sorted join of the two participant ids.
	// A unique index keeps one conversation per pair.
	PairKey string `bson:"pair_key"`

	Participants []participantDB `bson:"participants"`

	Subject string `bson:"subject,omitempty"`

	LastMessageText string    `bson:"last_message_text,omitempty"`
	LastMessageAt   time.Time `bson:"last_message_at,omitempty"`

	UnreadBy []string `bson:"unread_by,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

type participantDB struct {
	ID         string `bson:"id"`
	Name       string `bson:"name"`
	Role       string `bson:"role"`
	Email      string `bson:"email,omitempty"`
	PictureURL string `bson:"picture_url,omitempty"`
}

type messageDB struct {
	// ID unique identifier of the message.
	ID primitive.ObjectID `bson:"_id"`

	ConversationID primitive.ObjectID `bson:"conversation_id"`

	SenderID         string `bson:"sender_id"`
	SenderName       string `bson:"sender_name"`
	SenderRole       string `bson:"sender_role,omitempty"`
	SenderPictureURL string `bson:"sender_picture_url,omitempty"`

	Text string `bson:"text"`

	// Read is written false on creation and never read back.
	Read bool `bson:"read"`

	CreatedAt time.Time `bson:"created_at"`
}
