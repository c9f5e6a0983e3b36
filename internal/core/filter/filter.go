// Package filter holds the client-side artist filter chain. It is pure: the
// server-side query narrows on published (and optionally gender), everything
// here is plain set filtering over the candidate slice.
package filter

import (
	"strings"
	"time"

	"github.com/podiumlink/podiumlink/internal/core/model"
)

// Criteria are the client-side predicates applied after the server query.
// Zero values are ignored as filters. All predicates are conjunctive.
type Criteria struct {
	// Name is a case-insensitive substring match against the display name.
	Name string

	// Location is a case-insensitive substring match against the location.
	Location string

	// PaymentMethods, Genres and Languages each match when at least one
	// normalized tag overlaps (OR within a set).
	PaymentMethods []string
	Genres         []string
	Languages      []string

	// AgeMin and AgeMax bound the age in whole years. Zero-value bounds are
	// ignored. When either bound is set, artists without a date of birth are
	// excluded.
	AgeMin int
	AgeMax int
}

// Apply returns the candidates matching every criterion, preserving input
// order. now anchors the age computation.
func Apply(candidates []model.ArtistProfile, c Criteria, now time.Time) []model.ArtistProfile {
	out := make([]model.ArtistProfile, 0, len(candidates))
	for _, a := range candidates {
		if Matches(a, c, now) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a single artist passes every criterion.
func Matches(a model.ArtistProfile, c Criteria, now time.Time) bool {
	if c.Name != "" && !containsFold(a.DisplayName(), c.Name) {
		return false
	}
	if c.Location != "" && !containsFold(a.Location, c.Location) {
		return false
	}
	if len(c.PaymentMethods) > 0 && !anyTagMatch(a.PaymentMethods, c.PaymentMethods) {
		return false
	}
	if len(c.Genres) > 0 && !anyTagMatch(a.Genres, c.Genres) {
		return false
	}
	if len(c.Languages) > 0 && !anyTagMatch(a.Languages, c.Languages) {
		return false
	}
	if c.AgeMin > 0 || c.AgeMax > 0 {
		if a.DateOfBirth.IsZero() {
			// no date of birth means no age claim; excluded while an age
			// filter is active
			return false
		}
		age := AgeAt(a.DateOfBirth, now)
		if c.AgeMin > 0 && age < c.AgeMin {
			return false
		}
		if c.AgeMax > 0 && age > c.AgeMax {
			return false
		}
	}
	return true
}

// NormalizeTag canonicalizes a free-form tag for comparison: lower-case,
// trimmed, runs of dashes/underscores mapped to a single space, whitespace
// runs collapsed. Idempotent, so it can be applied to stored values and
// filter inputs alike. It must be applied to both or matches silently fail.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var b strings.Builder
	b.Grow(len(tag))
	space := false
	for _, r := range tag {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AgeAt computes the age in whole years at the reference time: calendar-year
// difference, minus one when the birthday has not yet occurred that year.
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

func anyTagMatch(candidate, wanted []string) bool {
	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		set[NormalizeTag(w)] = struct{}{}
	}
	for _, c := range candidate {
		if _, ok := set[NormalizeTag(c)]; ok {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
