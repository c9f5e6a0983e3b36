package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveArtist will save the artist profile in the database.
func (s *Store) SaveArtist(ctx context.Context, artist *model.ArtistProfile) error {
	if artist == nil {
		return errors.New("nil artist passed to save method")
	}

	dbArtist, err := s.artistToDBModel(artist)
	if err != nil {
		return err
	}
	if _, err := s.artists.InsertOne(ctx, dbArtist); err != nil {
		return err
	}

	artist.ID = dbArtist.ID.Hex()
	artist.CreatedAt = dbArtist.CreatedAt
	artist.UpdatedAt = dbArtist.UpdatedAt
	return nil
}

// UpdateArtist will update the profile. All non-zero fields are updated.
// Returns model.ErrNotFound if the input artist does not exist.
func (s *Store) UpdateArtist(ctx context.Context, artist *model.ArtistProfile) error {
	if artist == nil {
		return errors.New("nil artist passed to update method")
	}
	objectID, err := primitive.ObjectIDFromHex(artist.ID)
	if err != nil {
		return err
	}

	res, err := s.artists.UpdateByID(ctx, objectID, s.artistUpdate(artist))
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return model.ErrNotFound
	}

	existing := new(artistDB)
	if err := s.artists.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(existing); err != nil {
		return err
	}
	*artist = artistToModel(*existing)
	return nil
}

// SetArtistPublished flips the published flag. Unlike UpdateArtist it writes
// the value unconditionally, so false takes a profile off the listing.
// Returns model.ErrNotFound if the artist does not exist.
func (s *Store) SetArtistPublished(ctx context.Context, id string, published bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "published", Value: published},
		{Key: "updated_at", Value: s.nowFunc()},
	}}}
	res, err := s.artists.UpdateByID(ctx, objectID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount < 1 {
		return model.ErrNotFound
	}
	return nil
}

// GetArtist fetches one profile by id.
func (s *Store) GetArtist(ctx context.Context, id string) (*model.ArtistProfile, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}
	dbArtist := new(artistDB)
	if err := s.artists.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(dbArtist); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	artist := artistToModel(*dbArtist)
	return &artist, nil
}

// ListArtists lists profiles matching the server-side predicates. Results are
// ordered by _id ascending so repeated queries are deterministic.
func (s *Store) ListArtists(ctx context.Context, query ports.ListArtistsQuery) (*ports.ListArtistsResult, error) {
	filters := bson.M{}
	if query.Published {
		filters["published"] = true
	}
	if query.Gender != "" {
		filters["gender"] = query.Gender
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.artists.Find(ctx, filters, opts)
	if err != nil {
		return nil, err
	}
	var dbArtists []artistDB
	if err := cursor.All(ctx, &dbArtists); err != nil {
		return nil, err
	}

	artists := make([]model.ArtistProfile, len(dbArtists))
	for i, a := range dbArtists {
		artists[i] = artistToModel(a)
	}
	return &ports.ListArtistsResult{Artists: artists}, nil
}

func (s *Store) artistToDBModel(artist *model.ArtistProfile) (*artistDB, error) {
	dbArtist := new(artistDB)
	if len(artist.ID) == 0 {
		dbArtist.ID = primitive.NewObjectID()
	} else {
		var err error
		dbArtist.ID, err = primitive.ObjectIDFromHex(artist.ID)
		if err != nil {
			return nil, err
		}
	}
	dbArtist.FirstName = artist.FirstName
	dbArtist.LastName = artist.LastName
	dbArtist.StageName = artist.StageName
	dbArtist.Phone = artist.Phone
	dbArtist.Email = artist.Email
	dbArtist.PasswordHash = artist.PasswordHash
	dbArtist.Location = artist.Location
	dbArtist.Gender = artist.Gender
	dbArtist.Genres = artist.Genres
	dbArtist.Languages = artist.Languages
	dbArtist.PaymentMethods = artist.PaymentMethods
	dbArtist.Bio = artist.Bio
	dbArtist.VideoURL = artist.VideoURL
	dbArtist.AudioURL = artist.AudioURL
	dbArtist.TextURL = artist.TextURL
	dbArtist.DocumentURL = artist.DocumentURL
	dbArtist.PictureURL = artist.PictureURL
	dbArtist.EnergyLevel = artist.EnergyLevel
	dbArtist.Keywords = artist.Keywords
	dbArtist.GalleryPhotos = artist.GalleryPhotos
	dbArtist.YoutubeVideos = artist.YoutubeVideos
	dbArtist.Published = artist.Published
	if !artist.DateOfBirth.IsZero() {
		dbArtist.DateOfBirth = &artist.DateOfBirth
	}
	if !artist.CreatedAt.IsZero() {
		dbArtist.CreatedAt = artist.CreatedAt
	} else {
		dbArtist.CreatedAt = s.nowFunc()
	}
	dbArtist.UpdatedAt = s.nowFunc()
	return dbArtist, nil
}

func (s *Store) artistUpdate(artist *model.ArtistProfile) bson.D {
	toUpdate := bson.D{}
	set := func(key string, value any) {
		toUpdate = append(toUpdate, bson.E{Key: key, Value: value})
	}
	if artist.FirstName != "" {
		set("first_name", artist.FirstName)
	}
	if artist.LastName != "" {
		set("last_name", artist.LastName)
	}
	if artist.StageName != "" {
		set("stage_name", artist.StageName)
	}
	if artist.Phone != "" {
		set("phone", artist.Phone)
	}
	if artist.Email != "" {
		set("email", artist.Email)
	}
	if artist.PasswordHash != "" {
		set("password_hash", artist.PasswordHash)
	}
	if artist.Location != "" {
		set("location", artist.Location)
	}
	if !artist.DateOfBirth.IsZero() {
		set("date_of_birth", artist.DateOfBirth)
	}
	if artist.Gender != "" {
		set("gender", artist.Gender)
	}
	if len(artist.Genres) > 0 {
		set("genres", artist.Genres)
	}
	if len(artist.Languages) > 0 {
		set("languages", artist.Languages)
	}
	if len(artist.PaymentMethods) > 0 {
		set("payment_methods", artist.PaymentMethods)
	}
	if artist.Bio != "" {
		set("bio", artist.Bio)
	}
	if artist.VideoURL != "" {
		set("video_url", artist.VideoURL)
	}
	if artist.AudioURL != "" {
		set("audio_url", artist.AudioURL)
	}
	if artist.TextURL != "" {
		set("text_url", artist.TextURL)
	}
	if artist.DocumentURL != "" {
		set("document_url", artist.DocumentURL)
	}
	if artist.PictureURL != "" {
		set("picture_url", artist.PictureURL)
	}
	if artist.EnergyLevel != "" {
		set("energy_level", artist.EnergyLevel)
	}
	if len(artist.Keywords) > 0 {
		set("keywords", artist.Keywords)
	}
	set("updated_at", s.nowFunc())

	update := bson.D{{Key: "$set", Value: toUpdate}}
	if len(artist.GalleryPhotos) > 0 {
		// gallery photos accumulate instead of replacing
		update = append(update, bson.E{Key: "$push", Value: bson.D{
			{Key: "gallery_photos", Value: bson.D{{Key: "$each", Value: artist.GalleryPhotos}}},
		}})
	}
	return update
}

func artistToModel(dbArtist artistDB) model.ArtistProfile {
	artist := model.ArtistProfile{
		ID:             dbArtist.ID.Hex(),
		FirstName:      dbArtist.FirstName,
		LastName:       dbArtist.LastName,
		StageName:      dbArtist.StageName,
		Phone:          dbArtist.Phone,
		Email:          dbArtist.Email,
		PasswordHash:   dbArtist.PasswordHash,
		Location:       dbArtist.Location,
		Gender:         dbArtist.Gender,
		Genres:         dbArtist.Genres,
		Languages:      dbArtist.Languages,
		PaymentMethods: dbArtist.PaymentMethods,
		Bio:            dbArtist.Bio,
		VideoURL:       dbArtist.VideoURL,
		AudioURL:       dbArtist.AudioURL,
		TextURL:        dbArtist.TextURL,
		DocumentURL:    dbArtist.DocumentURL,
		PictureURL:     dbArtist.PictureURL,
		EnergyLevel:    dbArtist.EnergyLevel,
		Keywords:       dbArtist.Keywords,
		GalleryPhotos:  dbArtist.GalleryPhotos,
		YoutubeVideos:  dbArtist.YoutubeVideos,
		Published:      dbArtist.Published,
		CreatedAt:      dbArtist.CreatedAt,
		UpdatedAt:      dbArtist.UpdatedAt,
	}
	if dbArtist.DateOfBirth != nil {
		artist.DateOfBirth = *dbArtist.DateOfBirth
	}
	return artist
}

type artistDB struct {
	// ID unique identifier of the artist.
	ID primitive.ObjectID `bson:"_id"`

	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name,omitempty"`
	StageName    string `bson:"stage_name,omitempty"`
	Phone        string `bson:"phone,omitempty"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash,omitempty"`
	Location     string `bson:"location,omitempty"`

	// DateOfBirth is a pointer because many documents lack the field entirely.
	DateOfBirth *time.Time `bson:"date_of_birth,omitempty"`

	Gender         string   `bson:"gender,omitempty"`
	Genres         []string `bson:"genres,omitempty"`
	Languages      []string `bson:"languages,omitempty"`
	PaymentMethods []string `bson:"payment_methods,omitempty"`
	Bio            string   `bson:"bio,omitempty"`

	VideoURL    string `bson:"video_url,omitempty"`
	AudioURL    string `bson:"audio_url,omitempty"`
	TextURL     string `bson:"text_url,omitempty"`
	DocumentURL string `bson:"document_url,omitempty"`
	PictureURL  string `bson:"picture_url,omitempty"`

	// Ad-hoc fields present only on some documents.
	EnergyLevel   string   `bson:"energy_level,omitempty"`
	Keywords      []string `bson:"keywords,omitempty"`
	GalleryPhotos []string `bson:"gallery_photos,omitempty"`
	YoutubeVideos []string `bson:"youtube_videos,omitempty"`

	Published bool `bson:"published"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
