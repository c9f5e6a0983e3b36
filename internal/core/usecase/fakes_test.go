package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/podiumlink/podiumlink/internal/core/ports"
)

// fakeArtistRepo is an in-memory ArtistRepository.
type fakeArtistRepo struct {
	artists []model.ArtistProfile
	listErr error
}

func (f *fakeArtistRepo) SaveArtist(_ context.Context, artist *model.ArtistProfile) error {
	if artist.ID == "" {
		artist.ID = fmt.Sprintf("artist-%d", len(f.artists)+1)
	}
	f.artists = append(f.artists, *artist)
	return nil
}

func (f *fakeArtistRepo) UpdateArtist(_ context.Context, artist *model.ArtistProfile) error {
	for i := range f.artists {
		if f.artists[i].ID == artist.ID {
			if artist.FirstName != "" {
				f.artists[i].FirstName = artist.FirstName
			}
			if artist.Location != "" {
				f.artists[i].Location = artist.Location
			}
			if artist.VideoURL != "" {
				f.artists[i].VideoURL = artist.VideoURL
			}
			*artist = f.artists[i]
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeArtistRepo) SetArtistPublished(_ context.Context, id string, published bool) error {
	for i := range f.artists {
		if f.artists[i].ID == id {
			f.artists[i].Published = published
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeArtistRepo) GetArtist(_ context.Context, id string) (*model.ArtistProfile, error) {
	for _, a := range f.artists {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeArtistRepo) ListArtists(_ context.Context, query ports.ListArtistsQuery) (*ports.ListArtistsResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.ArtistProfile
	for _, a := range f.artists {
		if query.Published && !a.Published {
			continue
		}
		if query.Gender != "" && a.Gender != query.Gender {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return &ports.ListArtistsResult{Artists: out}, nil
}

// fakeProgrammerRepo is an in-memory ProgrammerRepository.
type fakeProgrammerRepo struct {
	programmers []model.ProgrammerProfile
}

func (f *fakeProgrammerRepo) SaveProgrammer(_ context.Context, programmer *model.ProgrammerProfile) error {
	if programmer.ID == "" {
		programmer.ID = fmt.Sprintf("programmer-%d", len(f.programmers)+1)
	}
	f.programmers = append(f.programmers, *programmer)
	return nil
}

func (f *fakeProgrammerRepo) GetProgrammer(_ context.Context, id string) (*model.ProgrammerProfile, error) {
	for _, p := range f.programmers {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeProgrammerRepo) UpdateProgrammerStatus(_ context.Context, id string, status model.ProgrammerStatus) error {
	for i := range f.programmers {
		if f.programmers[i].ID == id {
			f.programmers[i].Status = status
			return nil
		}
	}
	return model.ErrNotFound
}

// fakeConversationRepo is an in-memory ConversationRepository with the same
// atomic-unread semantics the mongo adapter provides.
type fakeConversationRepo struct {
	conversations []model.Conversation
	messages      []model.Message
}

func (f *fakeConversationRepo) SaveConversation(_ context.Context, conversation *model.Conversation) error {
	for _, c := range f.conversations {
		if c.PairKey == conversation.PairKey {
			return model.ErrAlreadyExists
		}
	}
	if conversation.ID == "" {
		conversation.ID = fmt.Sprintf("conv-%d", len(f.conversations)+1)
	}
	f.conversations = append(f.conversations, *conversation)
	return nil
}

func (f *fakeConversationRepo) GetConversation(_ context.Context, id string) (*model.Conversation, error) {
	for _, c := range f.conversations {
		if c.ID == id {
			c := c
			c.UnreadBy = append([]string(nil), c.UnreadBy...)
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeConversationRepo) FindByPairKey(_ context.Context, pairKey string) (*model.Conversation, error) {
	for _, c := range f.conversations {
		if c.PairKey == pairKey {
			c := c
			c.UnreadBy = append([]string(nil), c.UnreadBy...)
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeConversationRepo) ListConversations(_ context.Context, userID string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, c := range f.conversations {
		for _, p := range c.Participants {
			if p.ID == userID {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.After(out[j].LastMessageAt) })
	return out, nil
}

func (f *fakeConversationRepo) AppendMessage(_ context.Context, message *model.Message) error {
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", len(f.messages)+1)
	}
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeConversationRepo) ListMessages(_ context.Context, conversationID string) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeConversationRepo) RecordIncoming(_ context.Context, conversationID, recipientID, preview string, at time.Time) (*model.Conversation, error) {
	for i := range f.conversations {
		if f.conversations[i].ID != conversationID {
			continue
		}
		c := &f.conversations[i]
		c.LastMessageText = preview
		c.LastMessageAt = at
		unread := false
		for _, id := range c.UnreadBy {
			if id == recipientID {
				unread = true
			}
		}
		if !unread {
			c.UnreadBy = append(c.UnreadBy, recipientID)
		}
		out := *c
		out.UnreadBy = append([]string(nil), c.UnreadBy...)
		return &out, nil
	}
	return nil, model.ErrNotFound
}

func (f *fakeConversationRepo) MarkRead(_ context.Context, conversationID, viewerID string) error {
	for i := range f.conversations {
		if f.conversations[i].ID != conversationID {
			continue
		}
		c := &f.conversations[i]
		kept := c.UnreadBy[:0]
		for _, id := range c.UnreadBy {
			if id != viewerID {
				kept = append(kept, id)
			}
		}
		c.UnreadBy = kept
		return nil
	}
	return model.ErrNotFound
}

// fakeRecommendationRepo is an in-memory RecommendationRepository.
type fakeRecommendationRepo struct {
	recommendations []model.Recommendation
}

func (f *fakeRecommendationRepo) SaveRecommendation(_ context.Context, recommendation *model.Recommendation) error {
	if recommendation.ID == "" {
		recommendation.ID = fmt.Sprintf("rec-%d", len(f.recommendations)+1)
	}
	f.recommendations = append(f.recommendations, *recommendation)
	return nil
}

func (f *fakeRecommendationRepo) GetRecommendation(_ context.Context, id string) (*model.Recommendation, error) {
	for _, r := range f.recommendations {
		if r.ID == id {
			r := r
			return &r, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeRecommendationRepo) ListRecommendations(_ context.Context, artistID string) ([]model.Recommendation, error) {
	var out []model.Recommendation
	for _, r := range f.recommendations {
		if r.ArtistID == artistID && r.IsApproved {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecommendationRepo) DeleteRecommendation(_ context.Context, id string) error {
	for i, r := range f.recommendations {
		if r.ID == id {
			f.recommendations = append(f.recommendations[:i], f.recommendations[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// fakeIdentityStore is an in-memory IdentityStore for tests.
type fakeIdentityStore struct {
	values map[string]any
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{values: map[string]any{}}
}

func (f *fakeIdentityStore) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeIdentityStore) Set(key string, value any) { f.values[key] = value }

func (f *fakeIdentityStore) Delete(key string) { delete(f.values, key) }
