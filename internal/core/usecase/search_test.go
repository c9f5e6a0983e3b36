package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArtists() *fakeArtistRepo {
	return &fakeArtistRepo{artists: []model.ArtistProfile{
		{
			ID:          "a1",
			FirstName:   "Emma",
			Location:    "Rotterdam",
			DateOfBirth: time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderFemale,
			Genres:      []string{"Slam Poetry"},
			Languages:   []string{"nl"},
			Published:   true,
			Phone:       "+31600000001",
			Email:       "emma@example.com",
		},
		{
			ID:        "a2",
			FirstName: "Youssef",
			Location:  "Utrecht",
			Gender:    model.GenderMale,
			Genres:    []string{"Jazz Poetry"},
			Languages: []string{"nl", "fr"},
			Published: true,
		},
		{
			ID:        "a3",
			FirstName: "Hidden",
			Genres:    []string{"Slam Poetry"},
			Published: false,
		},
	}}
}

func TestSearchArtists(t *testing.T) {
	now := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc := NewSearchService(SearchServiceArgs{Artists: seedArtists()}, WithSearchNowFunc(func() time.Time { return now }))

	tests := []struct {
		name    string
		args    model.SearchArtistsArgs
		wantIDs []string
		wantErr error
	}{
		{name: "no filters lists every published artist", args: model.SearchArtistsArgs{}, wantIDs: []string{"a1", "a2"}},
		{name: "unpublished never appears", args: model.SearchArtistsArgs{Name: "Hidden"}, wantIDs: []string{}},
		{name: "genre filter with separator variance", args: model.SearchArtistsArgs{Genres: []string{"slam-poetry"}}, wantIDs: []string{"a1"}},
		{name: "genre mismatch excludes", args: model.SearchArtistsArgs{Genres: []string{"Jazz Poetry"}}, wantIDs: []string{"a2"}},
		{name: "gender narrows server-side", args: model.SearchArtistsArgs{Gender: model.GenderFemale}, wantIDs: []string{"a1"}},
		{name: "own profile excluded", args: model.SearchArtistsArgs{RequesterID: "a1"}, wantIDs: []string{"a2"}},
		{name: "age range", args: model.SearchArtistsArgs{AgeMin: 25, AgeMax: 30}, wantIDs: []string{"a1"}},
		{name: "age filter excludes artists without dob", args: model.SearchArtistsArgs{AgeMax: 99}, wantIDs: []string{"a1"}},
		{name: "pending programmer blocked", args: model.SearchArtistsArgs{RequesterStatus: model.StatusPending}, wantErr: model.ErrAccountPending},
		{name: "trial programmer allowed", args: model.SearchArtistsArgs{RequesterStatus: model.StatusTrial}, wantIDs: []string{"a1", "a2"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := svc.SearchArtists(context.Background(), test.args)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			got := make([]string, 0, len(resp.Artists))
			for _, a := range resp.Artists {
				got = append(got, a.ID)
			}
			assert.Equal(t, test.wantIDs, got)
		})
	}
}

func TestSearchArtistsRepositoryError(t *testing.T) {
	repoErr := errors.New("query requires a composite index")
	svc := NewSearchService(SearchServiceArgs{Artists: &fakeArtistRepo{listErr: repoErr}})

	_, err := svc.SearchArtists(context.Background(), model.SearchArtistsArgs{})
	assert.ErrorIs(t, err, repoErr)
}

func TestGetArtistContactRedaction(t *testing.T) {
	svc := NewSearchService(SearchServiceArgs{Artists: seedArtists()})

	tests := []struct {
		name        string
		status      model.ProgrammerStatus
		wantContact bool
	}{
		{name: "pro sees contact details", status: model.StatusPro, wantContact: true},
		{name: "trial does not", status: model.StatusTrial, wantContact: false},
		{name: "artist requester does not", status: "", wantContact: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := svc.GetArtist(context.Background(), model.GetArtistArgs{ID: "a1", RequesterStatus: test.status})
			require.NoError(t, err)
			if test.wantContact {
				assert.Equal(t, "+31600000001", resp.Artist.Phone)
				assert.Equal(t, "emma@example.com", resp.Artist.Email)
			} else {
				assert.Empty(t, resp.Artist.Phone)
				assert.Empty(t, resp.Artist.Email)
			}
		})
	}
}

func TestGetArtistNotFound(t *testing.T) {
	svc := NewSearchService(SearchServiceArgs{Artists: seedArtists()})
	_, err := svc.GetArtist(context.Background(), model.GetArtistArgs{ID: "missing"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
