package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveProgrammer will save the programmer profile in the database.
func (s *Store) SaveProgrammer(ctx context.Context, programmer *model.ProgrammerProfile) error {
	if programmer == nil {
		return errors.New("nil programmer passed to save method")
	}

	dbProgrammer := new(programmerDB)
	if len(programmer.ID) == 0 {
		dbProgrammer.ID = primitive.NewObjectID()
	} else {
		var err error
		dbProgrammer.ID, err = primitive.ObjectIDFromHex(programmer.ID)
		if err != nil {
			return err
		}
	}
	dbProgrammer.FirstName = programmer.FirstName
	dbProgrammer.LastName = programmer.LastName
	dbProgrammer.Organization = programmer.Organization
	dbProgrammer.About = programmer.About
	dbProgrammer.Website = programmer.Website
	dbProgrammer.Phone = programmer.Phone
	dbProgrammer.Email = programmer.Email
	dbProgrammer.PasswordHash = programmer.PasswordHash
	dbProgrammer.Status = string(programmer.Status)
	if !programmer.CreatedAt.IsZero() {
		dbProgrammer.CreatedAt = programmer.CreatedAt
	} else {
		dbProgrammer.CreatedAt = s.nowFunc()
	}
	dbProgrammer.UpdatedAt = s.nowFunc()

	if _, err := s.programmers.InsertOne(ctx, dbProgrammer); err != nil {
		return err
	}

	programmer.ID = dbProgrammer.ID.Hex()
	programmer.CreatedAt = dbProgrammer.CreatedAt
	programmer.UpdatedAt = dbProgrammer.UpdatedAt
	return nil
}

// GetProgrammer fetches one profile by id.
func (s *Store) GetProgrammer(ctx context.Context, id string) (*model.ProgrammerProfile, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	dbProgrammer := new(programmerDB)
	if err := s.programmers.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(dbProgrammer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	programmer := programmerToModel(*dbProgrammer)
	return &programmer, nil
}

// UpdateProgrammerStatus sets the account status.
func (s *Store) UpdateProgrammerStatus(ctx context.Context, id string, status model.ProgrammerStatus) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(status)},
		{Key: "updated_at", Value: s.nowFunc()},
	}}}
	res, err := s.programmers.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return model.ErrNotFound
	}
	return nil
}

func programmerToModel(dbProgrammer programmerDB) model.ProgrammerProfile {
	return model.ProgrammerProfile{
		ID:           dbProgrammer.ID.Hex(),
		FirstName:    dbProgrammer.FirstName,
		LastName:     dbProgrammer.LastName,
		Organization: dbProgrammer.Organization,
		About:        dbProgrammer.About,
		Website:      dbProgrammer.Website,
		Phone:        dbProgrammer.Phone,
		Email:        dbProgrammer.Email,
		PasswordHash: dbProgrammer.PasswordHash,
		Status:       model.ProgrammerStatus(dbProgrammer.Status),
		CreatedAt:    dbProgrammer.CreatedAt,
		UpdatedAt:    dbProgrammer.UpdatedAt,
	}
}

type programmerDB struct {
	// ID unique identifier of the programmer.
	ID primitive.ObjectID `bson:"_id"`

	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name,omitempty"`
	Organization string `bson:"organization"`
	About        string `bson:"about,omitempty"`
	Website      string `bson:"website,omitempty"`
	Phone        string `bson:"phone,omitempty"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash,omitempty"`

	// Status is pending, trial or pro.
	Status string `bson:"status"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
