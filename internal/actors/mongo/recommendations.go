package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveRecommendation will save the recommendation in the database.
func (s *Store) SaveRecommendation(ctx context.Context, recommendation *model.Recommendation) error {
	if recommendation == nil {
		return errors.New("nil recommendation passed to save method")
	}

	dbRec := new(recommendationDB)
	if len(recommendation.ID) == 0 {
		dbRec.ID = primitive.NewObjectID()
	} else {
		var err error
		dbRec.ID, err = primitive.ObjectIDFromHex(recommendation.ID)
		if err != nil {
			return err
		}
	}
	dbRec.ArtistID = recommendation.ArtistID
	dbRec.ArtistName = recommendation.ArtistName
	dbRec.ProgrammerID = recommendation.ProgrammerID
	dbRec.ProgrammerName = recommendation.ProgrammerName
	dbRec.ProgrammerOrganization = recommendation.ProgrammerOrganization
	dbRec.Text = recommendation.Text
	dbRec.IsApproved = recommendation.IsApproved
	if !recommendation.CreatedAt.IsZero() {
		dbRec.CreatedAt = recommendation.CreatedAt
	} else {
		dbRec.CreatedAt = s.nowFunc()
	}

	if _, err := s.recommendations.InsertOne(ctx, dbRec); err != nil {
		return err
	}

	recommendation.ID = dbRec.ID.Hex()
	recommendation.CreatedAt = dbRec.CreatedAt
	return nil
}

// GetRecommendation fetches one recommendation by id.
func (s *Store) GetRecommendation(ctx context.Context, id string) (*model.Recommendation, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	dbRec := new(recommendationDB)
	if err := s.recommendations.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(dbRec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	rec := recommendationToModel(*dbRec)
	return &rec, nil
}

// ListRecommendations lists an artist's approved recommendations, most recent first.
func (s *Store) ListRecommendations(ctx context.Context, artistID string) ([]model.Recommendation, error) {
	filters := bson.M{
		"artist_id":   artistID,
		"is_approved": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.recommendations.Find(ctx, filters, opts)
	if err != nil {
		return nil, err
	}
	var dbRecs []recommendationDB
	if err := cursor.All(ctx, &dbRecs); err != nil {
		return nil, err
	}
	recs := make([]model.Recommendation, len(dbRecs))
	for i, r := range dbRecs {
		recs[i] = recommendationToModel(r)
	}
	return recs, nil
}

// DeleteRecommendation removes the recommendation by id.
func (s *Store) DeleteRecommendation(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}
	res, err := s.recommendations.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return err
	}
	if res.DeletedCount < 1 {
		return model.ErrNotFound
	}
	return nil
}

func recommendationToModel(dbRec recommendationDB) model.Recommendation {
	return model.Recommendation{
		ID:                     dbRec.ID.Hex(),
		ArtistID:               dbRec.ArtistID,
		ArtistName:             dbRec.ArtistName,
		ProgrammerID:           dbRec.ProgrammerID,
		ProgrammerName:         dbRec.ProgrammerName,
		ProgrammerOrganization: dbRec.ProgrammerOrganization,
		Text:                   dbRec.Text,
		IsApproved:             dbRec.IsApproved,
		CreatedAt:              dbRec.CreatedAt,
	}
}

type recommendationDB struct {
	// ID unique identifier of the recommendation.
	ID primitive.ObjectID `bson:"_id"`

	ArtistID   string `bson:"artist_id"`
	ArtistName string `bson:"artist_name,omitempty"`

	ProgrammerID           string `bson:"programmer_id"`
	ProgrammerName         string `bson:"programmer_name,omitempty"`
	ProgrammerOrganization string `bson:"programmer_organization,omitempty"`

	Text string `bson:"text"`

	// IsApproved is always written true; no code path ever sets it false.
	IsApproved bool `bson:"is_approved"`

	CreatedAt time.Time `bson:"created_at"`
}
