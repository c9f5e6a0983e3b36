package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// minRecommendationLength is the minimum testimonial length in characters.
const minRecommendationLength = 10

// RecommendationServiceArgs contain the mandatory arguments for the RecommendationService.
type RecommendationServiceArgs struct {
	// Recommendations is the recommendation repository.
	Recommendations ports.RecommendationRepository

	// Sender publishes the notification fired after a submit. May be nil.
	Sender ports.Sender
}

// RecommendationServiceOptArgs are the optional arguments for building a RecommendationService.
type RecommendationServiceOptArgs = func(*RecommendationService)

// WithRecommendationNowFunc can be used to override the nowFunc. Useful for testing.
func WithRecommendationNowFunc(nowFunc func() time.Time) RecommendationServiceOptArgs {
	return func(r *RecommendationService) {
		r.nowFunc = nowFunc
	}
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(args RecommendationServiceArgs, optArgs ...RecommendationServiceOptArgs) *RecommendationService {
	r := &RecommendationService{
		recommendations: args.Recommendations,
		sender:          args.Sender,
		nowFunc:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range optArgs {
		opt(r)
	}
	return r
}

// RecommendationService gathers the functionality around testimonials written
// by programmers about artists.
type RecommendationService struct {
	recommendations ports.RecommendationRepository
	sender          ports.Sender
	nowFunc         func() time.Time
}

// SubmitRecommendation validates and stores a testimonial, then fires a
// best-effort notification to the artist. Recommendations are stored approved;
// no moderation workflow exists.
func (r *RecommendationService) SubmitRecommendation(ctx context.Context, args model.SubmitRecommendationArgs) (*model.SubmitRecommendationResponse, error) {
	text := strings.TrimSpace(args.Text)
	if utf8.RuneCountInString(text) < minRecommendationLength {
		return nil, model.NewValidationError("text", fmt.Sprintf("must be at least %d characters", minRecommendationLength))
	}
	if args.ArtistID == "" {
		return nil, model.NewValidationError("artist_id", "artist id is required")
	}
	if args.Programmer.ID == "" {
		return nil, model.NewValidationError("programmer", "programmer profile is required")
	}

	rec := &model.Recommendation{
		ArtistID:               args.ArtistID,
		ArtistName:             args.ArtistName,
		ProgrammerID:           args.Programmer.ID,
		ProgrammerName:         strings.TrimSpace(args.Programmer.FirstName + " " + args.Programmer.LastName),
		ProgrammerOrganization: args.Programmer.Organization,
		Text:                   text,
		IsApproved:             true,
		CreatedAt:              r.nowFunc(),
	}
	if err := r.recommendations.SaveRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("error saving recommendation in repository: %w", err)
	}

	if r.sender != nil {
		event := model.NotificationEvent{
			Kind:           model.NotificationRecommendationCreated,
			RecipientEmail: args.ArtistEmail,
			RecipientName:  args.ArtistName,
			ActorName:      rec.ProgrammerName,
			Subject:        "New recommendation",
			Text:           text,
			CreatedAt:      rec.CreatedAt,
		}
		if err := r.sender.Send(ctx, event); err != nil {
			// fire-and-forget: the recommendation is already stored
			log.WithError(err).Warn("could not publish recommendation notification")
		}
	}

	return &model.SubmitRecommendationResponse{Recommendation: *rec}, nil
}

// ListRecommendations lists an artist's approved recommendations, most recent first.
func (r *RecommendationService) ListRecommendations(ctx context.Context, args model.ListRecommendationsArgs) (*model.ListRecommendationsResponse, error) {
	recs, err := r.recommendations.ListRecommendations(ctx, args.ArtistID)
	if err != nil {
		return nil, fmt.Errorf("error listing recommendations: %w", err)
	}
	return &model.ListRecommendationsResponse{Recommendations: recs}, nil
}

// DeleteRecommendation removes a recommendation. Only its author may delete it.
func (r *RecommendationService) DeleteRecommendation(ctx context.Context, args model.DeleteRecommendationArgs) error {
	rec, err := r.recommendations.GetRecommendation(ctx, args.ID)
	if err != nil {
		return fmt.Errorf("error fetching recommendation: %w", err)
	}
	if rec.ProgrammerID != args.RequesterID {
		return model.ErrUnauthorized
	}
	if err := r.recommendations.DeleteRecommendation(ctx, args.ID); err != nil {
		return fmt.Errorf("error deleting recommendation: %w", err)
	}
	return nil
}
