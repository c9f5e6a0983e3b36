package model

import (
	"time"
)

// Gender codes used on artist profiles and as a search predicate.
const (
	GenderFemale = "f"
	GenderMale   = "m"
	GenderOther  = "x"
)

// Roles a participant can have in a conversation.
const (
	RoleArtist     = "artist"
	RoleProgrammer = "programmer"
)

// ProgrammerStatus is the account status of a programmer (booker).
type ProgrammerStatus string

const (
	// StatusPending blocks all search and messaging actions until an operator approves the account.
	StatusPending ProgrammerStatus = "pending"

	// StatusTrial permits search and messaging but keeps artist contact details hidden.
	StatusTrial ProgrammerStatus = "trial"

	// StatusPro additionally reveals artist contact details in the detail view.
	StatusPro ProgrammerStatus = "pro"
)

// ArtistProfile is the public profile of a spoken-word performer.
//
// Several fields are optional and only present on some documents; every
// consumer must tolerate their zero value.
type ArtistProfile struct {
	// ID unique identifier of the artist.
	ID string `json:"id"`

	// FirstName is the artist first name.
	FirstName string `json:"first_name"`

	// LastName is the artist last name.
	LastName string `json:"last_name"`

	// StageName is the name the artist performs under.
	StageName string `json:"stage_name,omitempty"`

	// Phone is the artist phone number. Redacted for non-pro requesters.
	Phone string `json:"phone,omitempty"`

	// Email is the artist email. Redacted for non-pro requesters.
	Email string `json:"email,omitempty"`

	// PasswordHash contains the password hash. Never serialized.
	PasswordHash string `json:"-"`

	// Location is a free-text place of residence.
	Location string `json:"location,omitempty"`

	// DateOfBirth is optional. Zero-valued when the artist did not provide it.
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`

	// Gender is one of the gender codes, or empty.
	Gender string `json:"gender,omitempty"`

	// Genres are free-form genre tags, compared case- and separator-insensitively.
	Genres []string `json:"genres,omitempty"`

	// Languages are free-form language codes.
	Languages []string `json:"languages,omitempty"`

	// PaymentMethods are free-form payment-method tags.
	PaymentMethods []string `json:"payment_methods,omitempty"`

	// Bio is the free-text pitch of the artist.
	Bio string `json:"bio,omitempty"`

	// VideoURL, AudioURL, TextURL and DocumentURL point to uploaded media. Opaque strings.
	VideoURL    string `json:"video_url,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
	TextURL     string `json:"text_url,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`

	// PictureURL is the profile picture.
	PictureURL string `json:"picture_url,omitempty"`

	// EnergyLevel, Keywords, GalleryPhotos and YoutubeVideos were added ad hoc
	// over time and only exist on some documents.
	EnergyLevel   string   `json:"energy_level,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	GalleryPhotos []string `json:"gallery_photos,omitempty"`
	YoutubeVideos []string `json:"youtube_videos,omitempty"`

	// Published must be true for the artist to appear in search results.
	Published bool `json:"published"`

	// CreatedAt is the time at which the profile was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time at which the profile was last updated.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DisplayName is the name shown on result cards: the stage name when present,
// otherwise first and last name.
func (a ArtistProfile) DisplayName() string {
	if a.StageName != "" {
		return a.StageName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// ProgrammerProfile is the profile of an organization/booker.
type ProgrammerProfile struct {
	// ID unique identifier of the programmer.
	ID string `json:"id"`

	// FirstName is the programmer first name.
	FirstName string `json:"first_name"`

	// LastName is the programmer last name.
	LastName string `json:"last_name"`

	// Organization is the name of the organization the programmer books for.
	Organization string `json:"organization"`

	// About is a free-text description of the organization.
	About string `json:"about,omitempty"`

	// Website is the organization website.
	Website string `json:"website,omitempty"`

	// Phone is the programmer phone number.
	Phone string `json:"phone,omitempty"`

	// Email is the programmer email.
	Email string `json:"email"`

	// PasswordHash contains the password hash. Never serialized.
	PasswordHash string `json:"-"`

	// Status gates search, messaging and contact visibility.
	Status ProgrammerStatus `json:"status"`

	// CreatedAt is the time at which the profile was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time at which the profile was last updated.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Participant is the denormalized snapshot of one side of a conversation,
// taken at conversation-creation time. It is never refreshed when the
// underlying profile changes.
type Participant struct {
	// ID is the profile id of the participant.
	ID string `json:"id"`

	// Name is the display name at snapshot time.
	Name string `json:"name"`

	// Role is RoleArtist or RoleProgrammer.
	Role string `json:"role"`

	// Email at snapshot time.
	Email string `json:"email"`

	// PictureURL at snapshot time.
	PictureURL string `json:"picture_url,omitempty"`
}

// Conversation is a two-party message thread.
type Conversation struct {
	// ID unique identifier of the conversation.
	ID string `json:"id"`

	// PairKey is the canonical sorted join of the two participant ids.
	// There is at most one conversation per pair key.
	PairKey string `json:"pair_key"`

	// Participants holds exactly two entries.
	Participants []Participant `json:"participants"`

	// Subject is the subject line chosen when the thread was started.
	Subject string `json:"subject"`

	// LastMessageText is a denormalized preview of the most recent message.
	LastMessageText string `json:"last_message_text,omitempty"`

	// LastMessageAt is the time of the most recent message.
	LastMessageAt time.Time `json:"last_message_at,omitempty"`

	// UnreadBy holds the ids of participants with unread messages.
	// Always a subset of the participant ids.
	UnreadBy []string `json:"unread_by,omitempty"`

	// CreatedAt is the time at which the conversation was created.
	CreatedAt time.Time `json:"created_at"`
}

// Counterpart returns the participant that is not the given user.
// The second return is false when the user is not a participant.
func (c Conversation) Counterpart(userID string) (Participant, bool) {
	member := false
	var other Participant
	for _, p := range c.Participants {
		if p.ID == userID {
			member = true
		} else {
			other = p
		}
	}
	if !member || other.ID == "" {
		return Participant{}, false
	}
	return other, true
}

// IsUnreadBy reports whether the user has unread messages in the conversation.
func (c Conversation) IsUnreadBy(userID string) bool {
	for _, id := range c.UnreadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Message is one immutable entry in a conversation thread.
type Message struct {
	// ID unique identifier of the message.
	ID string `json:"id"`

	// ConversationID is the id of the thread the message belongs to.
	ConversationID string `json:"conversation_id"`

	// SenderID, SenderName, SenderRole and SenderPictureURL are snapshotted
	// from the sender at send time.
	SenderID         string `json:"sender_id"`
	SenderName       string `json:"sender_name"`
	SenderRole       string `json:"sender_role"`
	SenderPictureURL string `json:"sender_picture_url,omitempty"`

	// Text is the message body.
	Text string `json:"text"`

	// Read is written false at creation and never consulted afterwards.
	// Unread state lives on Conversation.UnreadBy. Kept for wire compatibility.
	Read bool `json:"read"`

	// CreatedAt orders messages within a conversation, ascending.
	CreatedAt time.Time `json:"created_at"`
}

// Recommendation is a testimonial written by a programmer about an artist.
type Recommendation struct {
	// ID unique identifier of the recommendation.
	ID string `json:"id"`

	// ArtistID and ArtistName identify the subject of the testimonial.
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`

	// ProgrammerID, ProgrammerName and ProgrammerOrganization identify the author.
	ProgrammerID           string `json:"programmer_id"`
	ProgrammerName         string `json:"programmer_name"`
	ProgrammerOrganization string `json:"programmer_organization,omitempty"`

	// Text is the testimonial body. At least 10 characters.
	Text string `json:"text"`

	// IsApproved is always true at creation. No moderation workflow exists.
	IsApproved bool `json:"is_approved"`

	// CreatedAt is the time at which the recommendation was written.
	CreatedAt time.Time `json:"created_at"`
}

// Notification event kinds.
const (
	NotificationRecommendationCreated = "recommendation.created"
	NotificationMessageCreated        = "message.created"
)

// NotificationEvent is an outbound event emitted when something happened that
// a user should be told about out-of-band. Mail delivery is handled by a
// downstream consumer of the deliveries topic.
type NotificationEvent struct {
	// ID is the event id.
	ID string `json:"id"`

	// Kind is one of the Notification* constants.
	Kind string `json:"kind"`

	// RecipientEmail and RecipientName address the notification.
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	// ActorName is the display name of the user that triggered the event.
	ActorName string `json:"actor_name"`

	// Subject is a short human-readable subject line.
	Subject string `json:"subject"`

	// Text is the body of the notification.
	Text string `json:"text"`

	// CreatedAt is the time at which the event was emitted.
	CreatedAt time.Time `json:"created_at"`
}

// Session is the authenticated identity held in the in-memory identity store.
// It is not persisted and disappears on restart.
type Session struct {
	// Token is the opaque session token handed to the client.
	Token string `json:"token"`

	// UserID is the profile id of the authenticated user.
	UserID string `json:"user_id"`

	// Role is RoleArtist or RoleProgrammer.
	Role string `json:"role"`

	// Status is only set for programmers.
	Status ProgrammerStatus `json:"status,omitempty"`

	// Name, Email and PictureURL mirror the profile at signup time and are
	// used to snapshot conversation participants.
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"picture_url,omitempty"`
}
