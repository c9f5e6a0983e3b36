package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/filter"
	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
)

// SearchServiceArgs contain the mandatory arguments for the SearchService.
type SearchServiceArgs struct {
	// Artists is the artist repository.
	Artists ports.ArtistRepository
}

// SearchServiceOptArgs are the optional arguments for building a SearchService.
type SearchServiceOptArgs = func(*SearchService)

// WithSearchNowFunc can be used to override the nowFunc. Useful for testing
// the age filter.
func WithSearchNowFunc(nowFunc func() time.Time) SearchServiceOptArgs {
	return func(s *SearchService) {
		s.nowFunc = nowFunc
	}
}

// NewSearchService creates a new SearchService.
func NewSearchService(args SearchServiceArgs, optArgs ...SearchServiceOptArgs) *SearchService {
	s := &SearchService{artists: args.Artists, nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(s)
	}
	return s
}

// SearchService gathers the functionality around finding artists.
type SearchService struct {
	artists ports.ArtistRepository
	nowFunc func() time.Time
}

// SearchArtists returns the published artists matching every filter. Only the
// published and gender predicates run on the store; the remaining predicates
// run client-side over the candidate set. The requester's own profile is
// excluded, and pending programmer accounts are rejected before any query.
func (s *SearchService) SearchArtists(ctx context.Context, args model.SearchArtistsArgs) (*model.SearchArtistsResponse, error) {
	if args.RequesterStatus == model.StatusPending {
		return nil, model.ErrAccountPending
	}

	res, err := s.artists.ListArtists(ctx, ports.ListArtistsQuery{
		Published: true,
		Gender:    args.Gender,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing artists on the repository: %w", err)
	}

	candidates := res.Artists
	if args.RequesterID != "" {
		kept := candidates[:0]
		for _, a := range candidates {
			if a.ID != args.RequesterID {
				kept = append(kept, a)
			}
		}
		candidates = kept
	}

	matched := filter.Apply(candidates, filter.Criteria{
		Name:           args.Name,
		Location:       args.Location,
		PaymentMethods: args.PaymentMethods,
		Genres:         args.Genres,
		Languages:      args.Languages,
		AgeMin:         args.AgeMin,
		AgeMax:         args.AgeMax,
	}, s.nowFunc())

	return &model.SearchArtistsResponse{Artists: matched}, nil
}

// GetArtist returns the detail view of one artist. Contact details are only
// revealed to pro programmer accounts.
func (s *SearchService) GetArtist(ctx context.Context, args model.GetArtistArgs) (*model.GetArtistResponse, error) {
	artist, err := s.artists.GetArtist(ctx, args.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching artist from repository: %w", err)
	}
	if args.RequesterStatus != model.StatusPro {
		artist.Phone = ""
		artist.Email = ""
	}
	return &model.GetArtistResponse{Artist: *artist}, nil
}
