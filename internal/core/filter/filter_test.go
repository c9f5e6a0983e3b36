package filter

import (
	"testing"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Poetry", want: "poetry"},
		{name: "dashes become spaces", in: "Poetry-Slam", want: "poetry slam"},
		{name: "underscores become spaces", in: "poetry_slam", want: "poetry slam"},
		{name: "uppercase with spaces", in: "POETRY SLAM", want: "poetry slam"},
		{name: "runs collapse", in: "poetry--__  slam", want: "poetry slam"},
		{name: "trims", in: "  slam \t", want: "slam"},
		{name: "leading separators do not produce a space", in: "--slam", want: "slam"},
		{name: "empty", in: "", want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NormalizeTag(test.in)
			assert.Equal(t, test.want, got)
			// idempotence
			assert.Equal(t, got, NormalizeTag(got))
		})
	}
}

func TestNormalizeTagSeparatorInvariance(t *testing.T) {
	variants := []string{"Poetry-Slam", "poetry_slam", "POETRY SLAM", "poetry   slam"}
	for _, v := range variants {
		assert.Equal(t, "poetry slam", NormalizeTag(v), v)
	}
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday already passed this year", dob: time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC), want: 28},
		{name: "birthday later this year", dob: time.Date(1995, time.November, 2, 0, 0, 0, 0, time.UTC), want: 27},
		{name: "birthday today", dob: time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC), want: 28},
		{name: "birthday tomorrow", dob: time.Date(1995, time.June, 2, 0, 0, 0, 0, time.UTC), want: 27},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, AgeAt(test.dob, now))
		})
	}
}

func TestMatches(t *testing.T) {
	emma := model.ArtistProfile{
		ID:             "a1",
		FirstName:      "Emma",
		LastName:       "de Vries",
		Location:       "Rotterdam",
		DateOfBirth:    time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC),
		Genres:         []string{"Slam Poetry"},
		Languages:      []string{"nl", "en"},
		PaymentMethods: []string{"invoice", "cash"},
		Published:      true,
	}

	tests := []struct {
		name     string
		artist   model.ArtistProfile
		criteria Criteria
		want     bool
	}{
		{name: "empty criteria match everything", artist: emma, criteria: Criteria{}, want: true},
		{name: "genre matches through normalization", artist: emma, criteria: Criteria{Genres: []string{"slam-poetry"}}, want: true},
		{name: "genre mismatch excludes", artist: emma, criteria: Criteria{Genres: []string{"Jazz Poetry"}}, want: false},
		{name: "one overlapping genre suffices", artist: emma, criteria: Criteria{Genres: []string{"Jazz Poetry", "SLAM_POETRY"}}, want: true},
		{name: "name substring case-insensitive", artist: emma, criteria: Criteria{Name: "emma"}, want: true},
		{name: "name substring on last name", artist: emma, criteria: Criteria{Name: "vries"}, want: true},
		{name: "name mismatch", artist: emma, criteria: Criteria{Name: "fatima"}, want: false},
		{name: "stage name wins over legal name", artist: func() model.ArtistProfile {
			a := emma
			a.StageName = "MC Vonk"
			return a
		}(), criteria: Criteria{Name: "emma"}, want: false},
		{name: "location substring", artist: emma, criteria: Criteria{Location: "rotter"}, want: true},
		{name: "location mismatch", artist: emma, criteria: Criteria{Location: "utrecht"}, want: false},
		{name: "language overlap", artist: emma, criteria: Criteria{Languages: []string{"EN"}}, want: true},
		{name: "payment overlap", artist: emma, criteria: Criteria{PaymentMethods: []string{"Invoice"}}, want: true},
		{name: "payment mismatch", artist: emma, criteria: Criteria{PaymentMethods: []string{"bank-transfer"}}, want: false},
		{name: "age within range", artist: emma, criteria: Criteria{AgeMin: 25, AgeMax: 30}, want: true},
		{name: "age below min", artist: emma, criteria: Criteria{AgeMin: 30}, want: false},
		{name: "age above max", artist: emma, criteria: Criteria{AgeMax: 25}, want: false},
		{name: "no dob excluded when min set", artist: func() model.ArtistProfile {
			a := emma
			a.DateOfBirth = time.Time{}
			return a
		}(), criteria: Criteria{AgeMin: 18}, want: false},
		{name: "no dob excluded when max set", artist: func() model.ArtistProfile {
			a := emma
			a.DateOfBirth = time.Time{}
			return a
		}(), criteria: Criteria{AgeMax: 60}, want: false},
		{name: "no dob included without age filter", artist: func() model.ArtistProfile {
			a := emma
			a.DateOfBirth = time.Time{}
			return a
		}(), criteria: Criteria{Genres: []string{"slam poetry"}}, want: true},
		{name: "all criteria conjunctive", artist: emma, criteria: Criteria{
			Name:           "emma",
			Location:       "Rotterdam",
			Genres:         []string{"slam-poetry"},
			Languages:      []string{"nl"},
			PaymentMethods: []string{"cash"},
			AgeMin:         18,
			AgeMax:         35,
		}, want: true},
		{name: "one failing criterion excludes", artist: emma, criteria: Criteria{
			Name:   "emma",
			Genres: []string{"jazz poetry"},
		}, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Matches(test.artist, test.criteria, now))
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	artists := []model.ArtistProfile{
		{ID: "1", FirstName: "Ada", Genres: []string{"slam poetry"}},
		{ID: "2", FirstName: "Bo", Genres: []string{"jazz poetry"}},
		{ID: "3", FirstName: "Cem", Genres: []string{"Slam-Poetry"}},
	}
	got := Apply(artists, Criteria{Genres: []string{"SLAM POETRY"}}, now)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}
