package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
)

// ProfileServiceArgs contain the mandatory arguments for the ProfileService.
type ProfileServiceArgs struct {
	// Artists is the artist repository.
	Artists ports.ArtistRepository

	// Programmers is the programmer repository.
	Programmers ports.ProgrammerRepository

	// Identities holds the session tokens handed out at signup.
	Identities ports.IdentityStore

	// Media is the blob-storage collaborator. May be nil when uploads are disabled.
	Media ports.MediaStore
}

// ProfileServiceOptArgs are the optional arguments for building a ProfileService.
type ProfileServiceOptArgs = func(*ProfileService)

// WithProfileNowFunc can be used to override the nowFunc. Useful for testing.
func WithProfileNowFunc(nowFunc func() time.Time) ProfileServiceOptArgs {
	return func(p *ProfileService) {
		p.nowFunc = nowFunc
	}
}

// NewProfileService creates a new ProfileService.
func NewProfileService(args ProfileServiceArgs, optArgs ...ProfileServiceOptArgs) *ProfileService {
	p := &ProfileService{
		artists:     args.Artists,
		programmers: args.Programmers,
		identities:  args.Identities,
		media:       args.Media,
		nowFunc:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(p)
	}
	return p
}

// ProfileService gathers the functionality around the profile lifecycle:
// signup, owner-only mutation, media attachment and the operator-driven
// programmer approval.
type ProfileService struct {
	artists     ports.ArtistRepository
	programmers ports.ProgrammerRepository
	identities  ports.IdentityStore
	media       ports.MediaStore
	nowFunc     func() time.Time
}

// SignupArtist creates an artist profile and a session for it. The password
// is stored as an argon2id hash and never returned.
func (p *ProfileService) SignupArtist(ctx context.Context, args model.SignupArtistArgs) (*model.SignupArtistResponse, error) {
	if args.Email == "" {
		return nil, model.NewValidationError("email", "email is required")
	}
	hash, err := argon2id.CreateHash(args.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("error creating password hash: %w", err)
	}

	artist := &model.ArtistProfile{
		PasswordHash:   hash,
		FirstName:      args.FirstName,
		LastName:       args.LastName,
		StageName:      args.StageName,
		Phone:          args.Phone,
		Email:          args.Email,
		Location:       args.Location,
		DateOfBirth:    args.DateOfBirth,
		Gender:         args.Gender,
		Genres:         args.Genres,
		Languages:      args.Languages,
		PaymentMethods: args.PaymentMethods,
		Bio:            args.Bio,
		Published:      false,
	}
	if err := p.artists.SaveArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("error saving artist in repository: %w", err)
	}

	session := p.newSession(artist.ID, model.RoleArtist, "", artist.DisplayName(), artist.Email, artist.PictureURL)
	return &model.SignupArtistResponse{Artist: *artist, Session: session}, nil
}

// SignupProgrammer creates a programmer profile in pending state and a
// session for it. Approval happens out-of-band via the admin tool.
func (p *ProfileService) SignupProgrammer(ctx context.Context, args model.SignupProgrammerArgs) (*model.SignupProgrammerResponse, error) {
	if args.Email == "" {
		return nil, model.NewValidationError("email", "email is required")
	}
	hash, err := argon2id.CreateHash(args.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("error creating password hash: %w", err)
	}

	programmer := &model.ProgrammerProfile{
		PasswordHash: hash,
		FirstName:    args.FirstName,
		LastName:     args.LastName,
		Organization: args.Organization,
		About:        args.About,
		Website:      args.Website,
		Phone:        args.Phone,
		Email:        args.Email,
		Status:       model.StatusPending,
	}
	if err := p.programmers.SaveProgrammer(ctx, programmer); err != nil {
		return nil, fmt.Errorf("error saving programmer in repository: %w", err)
	}

	name := programmer.FirstName + " " + programmer.LastName
	session := p.newSession(programmer.ID, model.RoleProgrammer, programmer.Status, name, programmer.Email, "")
	return &model.SignupProgrammerResponse{Programmer: *programmer, Session: session}, nil
}

// UpdateArtist mutates an artist profile. Only the owner may mutate it; all
// non-zero fields are updated. Returns model.ErrNotFound for unknown ids.
func (p *ProfileService) UpdateArtist(ctx context.Context, args model.UpdateArtistArgs) (*model.UpdateArtistResponse, error) {
	if args.RequesterID != args.ID {
		return nil, model.ErrUnauthorized
	}
	artist := &model.ArtistProfile{
		ID:             args.ID,
		FirstName:      args.FirstName,
		LastName:       args.LastName,
		StageName:      args.StageName,
		Phone:          args.Phone,
		Location:       args.Location,
		DateOfBirth:    args.DateOfBirth,
		Gender:         args.Gender,
		Genres:         args.Genres,
		Languages:      args.Languages,
		PaymentMethods: args.PaymentMethods,
		Bio:            args.Bio,
		EnergyLevel:    args.EnergyLevel,
		Keywords:       args.Keywords,
	}
	if args.Published != nil {
		if err := p.artists.SetArtistPublished(ctx, args.ID, *args.Published); err != nil {
			return nil, fmt.Errorf("error updating published state: %w", err)
		}
	}
	if err := p.artists.UpdateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("error updating artist: %w", err)
	}
	return &model.UpdateArtistResponse{Artist: *artist}, nil
}

// ApproveProgrammer transitions a pending programmer account to trial. This
// is the only defined transition and is triggered by the admin tool, never
// in-app. Transition to pro is not implemented.
func (p *ProfileService) ApproveProgrammer(ctx context.Context, id string) error {
	programmer, err := p.programmers.GetProgrammer(ctx, id)
	if err != nil {
		return fmt.Errorf("error fetching programmer: %w", err)
	}
	if programmer.Status != model.StatusPending {
		return model.NewValidationError("status", fmt.Sprintf("cannot approve account in status %q", programmer.Status))
	}
	if err := p.programmers.UpdateProgrammerStatus(ctx, id, model.StatusTrial); err != nil {
		return fmt.Errorf("error updating programmer status: %w", err)
	}
	return nil
}

// AttachArtistMedia uploads a media file to blob storage and stores the
// resulting URL on the owner's profile under the requested kind.
func (p *ProfileService) AttachArtistMedia(ctx context.Context, args model.AttachArtistMediaArgs) (*model.AttachArtistMediaResponse, error) {
	if args.RequesterID != args.ArtistID {
		return nil, model.ErrUnauthorized
	}
	if p.media == nil {
		return nil, model.NewValidationError("media", "media uploads are not configured")
	}

	objectPath := path.Join("artists", args.ArtistID, uuid.NewString()+"-"+path.Base(args.Filename))
	url, err := p.media.Upload(ctx, objectPath, args.Body, args.Size, args.ContentType)
	if err != nil {
		return nil, fmt.Errorf("error uploading media: %w", err)
	}

	artist := &model.ArtistProfile{ID: args.ArtistID}
	switch args.Kind {
	case model.MediaVideo:
		artist.VideoURL = url
	case model.MediaAudio:
		artist.AudioURL = url
	case model.MediaText:
		artist.TextURL = url
	case model.MediaDocument:
		artist.DocumentURL = url
	case model.MediaPicture:
		artist.PictureURL = url
	case model.MediaGallery:
		artist.GalleryPhotos = []string{url}
	default:
		return nil, model.NewValidationError("kind", fmt.Sprintf("unknown media kind %q", args.Kind))
	}
	if err := p.artists.UpdateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("error storing media url on profile: %w", err)
	}

	return &model.AttachArtistMediaResponse{URL: url}, nil
}

// GetProgrammer returns a programmer profile by id. Returns
// model.ErrNotFound for unknown ids.
func (p *ProfileService) GetProgrammer(ctx context.Context, id string) (*model.ProgrammerProfile, error) {
	programmer, err := p.programmers.GetProgrammer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching programmer: %w", err)
	}
	return programmer, nil
}

// GetArtist returns the full, unredacted artist profile by id. Callers that
// serve profiles to other users must go through the search service, which
// redacts contact details.
func (p *ProfileService) GetArtist(ctx context.Context, id string) (*model.ArtistProfile, error) {
	artist, err := p.artists.GetArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching artist: %w", err)
	}
	return artist, nil
}

func (p *ProfileService) newSession(userID, role string, status model.ProgrammerStatus, name, email, pictureURL string) model.Session {
	session := model.Session{
		Token:      uuid.NewString(),
		UserID:     userID,
		Role:       role,
		Status:     status,
		Name:       name,
		Email:      email,
		PictureURL: pictureURL,
	}
	p.identities.Set(session.Token, session)
	return session
}
