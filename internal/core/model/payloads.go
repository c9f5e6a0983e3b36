package model

import (
	"io"
	"time"
)

// SearchArtistsArgs contain the arguments for the SearchArtists use-case.
// All filter fields are optional; zero values are ignored as filters.
type SearchArtistsArgs struct {
	// RequesterID is the id of the user performing the search. An artist's own
	// profile is excluded from the results.
	RequesterID string

	// RequesterStatus is the programmer status of the requester. Empty for
	// artist requesters.
	RequesterStatus ProgrammerStatus

	// Name is a case-insensitive substring match on the display name.
	Name string

	// Location is a case-insensitive substring match on the location.
	Location string

	// Gender narrows the server-side query. Empty means any.
	Gender string

	// Genres, Languages and PaymentMethods each require at least one tag
	// overlap (OR within the set, AND across the sets).
	Genres         []string
	Languages      []string
	PaymentMethods []string

	// AgeMin and AgeMax bound the artist's age in whole years. Zero-value
	// bounds are ignored. Artists without a date of birth are excluded
	// whenever either bound is set.
	AgeMin int
	AgeMax int
}

// SearchArtistsResponse contains the artists matching the search.
type SearchArtistsResponse struct {
	// Artists are the published artists matching every filter, ordered by id.
	Artists []ArtistProfile
}

// GetArtistArgs contain the arguments for the artist detail view.
type GetArtistArgs struct {
	// ID is the artist to fetch.
	ID string

	// RequesterStatus decides whether contact details are revealed.
	// Only StatusPro sees phone and email.
	RequesterStatus ProgrammerStatus
}

// GetArtistResponse contains the (possibly redacted) artist profile.
type GetArtistResponse struct {
	// Artist is the requested profile.
	Artist ArtistProfile
}

// SignupArtistArgs contain the arguments for creating an artist profile.
type SignupArtistArgs struct {
	FirstName      string
	LastName       string
	StageName      string
	Phone          string
	Email          string
	Password       string
	Location       string
	DateOfBirth    time.Time
	Gender         string
	Genres         []string
	Languages      []string
	PaymentMethods []string
	Bio            string
}

// SignupArtistResponse contains the created profile and its session.
type SignupArtistResponse struct {
	Artist  ArtistProfile
	Session Session
}

// SignupProgrammerArgs contain the arguments for creating a programmer profile.
// The profile always starts in StatusPending.
type SignupProgrammerArgs struct {
	FirstName    string
	LastName     string
	Organization string
	About        string
	Website      string
	Phone        string
	Email        string
	Password     string
}

// SignupProgrammerResponse contains the created profile and its session.
type SignupProgrammerResponse struct {
	Programmer ProgrammerProfile
	Session    Session
}

// UpdateArtistArgs contain the arguments of the UpdateArtist method.
// All non-zero fields will be updated.
type UpdateArtistArgs struct {
	// ID is the id of the artist to be updated.
	ID string

	// RequesterID must equal ID; only the owner mutates a profile.
	RequesterID string

	FirstName      string
	LastName       string
	StageName      string
	Phone          string
	Location       string
	DateOfBirth    time.Time
	Gender         string
	Genres         []string
	Languages      []string
	PaymentMethods []string
	Bio            string
	EnergyLevel    string
	Keywords       []string

	// Published is a pointer so that "leave unchanged" and "set false" are
	// distinguishable.
	Published *bool
}

// UpdateArtistResponse contains the updated profile.
type UpdateArtistResponse struct {
	Artist ArtistProfile
}

// Media kinds accepted by AttachArtistMedia.
const (
	MediaVideo    = "video"
	MediaAudio    = "audio"
	MediaText     = "text"
	MediaDocument = "document"
	MediaPicture  = "picture"
	MediaGallery  = "gallery"
)

// AttachArtistMediaArgs contain the arguments for uploading a media file and
// attaching its URL to an artist profile.
type AttachArtistMediaArgs struct {
	// ArtistID is the profile to attach to. RequesterID must match.
	ArtistID    string
	RequesterID string

	// Kind is one of the Media* constants.
	Kind string

	// Filename is the client-supplied file name, used in the object path.
	Filename string

	// ContentType of the uploaded bytes.
	ContentType string

	// Body streams the bytes to upload. Size must match.
	Body io.Reader
	Size int64
}

// AttachArtistMediaResponse contains the stored URL.
type AttachArtistMediaResponse struct {
	URL string
}

// SendMessageArgs contain the arguments of the SendMessage method.
type SendMessageArgs struct {
	// Sender is the authenticated identity sending the message.
	Sender Session

	// Counterpart is the other party. Snapshotted into the conversation when
	// the thread does not exist yet.
	Counterpart Participant

	// Subject is used only when a new conversation is created.
	Subject string

	// Text is the message body.
	Text string
}

// SendMessageResponse contains the (possibly newly created) conversation and
// the appended message.
type SendMessageResponse struct {
	Conversation Conversation
	Message      Message
	Created      bool
}

// ListConversationsArgs contain the arguments of the ListConversations method.
type ListConversationsArgs struct {
	// UserID is the participant whose conversations to list.
	UserID string
}

// ListConversationsResponse contains the conversations, most recent first.
type ListConversationsResponse struct {
	Conversations []Conversation
}

// ListMessagesArgs contain the arguments of the ListMessages method.
type ListMessagesArgs struct {
	// ConversationID is the thread to read.
	ConversationID string

	// ViewerID is the participant reading the thread. Must be a participant.
	ViewerID string
}

// ListMessagesResponse contains the messages ordered by creation ascending.
type ListMessagesResponse struct {
	Conversation Conversation
	Messages     []Message
}

// SubmitRecommendationArgs contain the arguments of the SubmitRecommendation method.
type SubmitRecommendationArgs struct {
	// Artist is the subject. ArtistEmail addresses the notification.
	ArtistID    string
	ArtistName  string
	ArtistEmail string

	// Programmer is the author.
	Programmer ProgrammerProfile

	// Text is the testimonial body, at least 10 characters after trimming.
	Text string
}

// SubmitRecommendationResponse contains the stored recommendation.
type SubmitRecommendationResponse struct {
	Recommendation Recommendation
}

// ListRecommendationsArgs contain the arguments of the ListRecommendations method.
type ListRecommendationsArgs struct {
	// ArtistID is the subject whose testimonials to list.
	ArtistID string
}

// ListRecommendationsResponse contains approved recommendations, most recent first.
type ListRecommendationsResponse struct {
	Recommendations []Recommendation
}

// DeleteRecommendationArgs contain the arguments of the DeleteRecommendation method.
type DeleteRecommendationArgs struct {
	// ID is the recommendation to delete.
	ID string

	// RequesterID must be the author of the recommendation.
	RequesterID string
}
