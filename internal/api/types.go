package api

import (
	"time"

	"github.com/joestump/wisaw-links/internal/identity"
)

// --- Link types ---

// ParseLinkRequest is the request body for POST /api/v1/links/parse.
type ParseLinkRequest struct {
	URL string `json:"url" validate:"required"`
}

// BuildLinkRequest is the request body for POST /api/v1/links/build.
type BuildLinkRequest struct {
	Kind           string `json:"kind" validate:"required,oneof=photo friend friendshipNameUpdate"`
	PhotoID        string `json:"photoId,omitempty"`
	FriendshipUUID string `json:"friendshipUuid,omitempty"`
	FriendName     string `json:"friendName,omitempty"`
	Timestamp      int64  `json:"timestamp,omitempty"`
}

// BuildLinkResponse carries both link forms for an intent.
type BuildLinkResponse struct {
	AppURL       string `json:"appUrl"`
	UniversalURL string `json:"universalUrl"`
}

// --- Friendship types ---

// ShareRequest is the request body for POST /api/v1/friendships/share.
type ShareRequest struct {
	FriendshipUUID string `json:"friendshipUuid" validate:"required"`
	FriendName     string `json:"friendName"`
}

// ShareResponse is the share link handed to the QR renderer and share sheet.
type ShareResponse struct {
	URL            string `json:"url"`
	Token          string `json:"token"`
	FriendshipUUID string `json:"friendshipUuid"`
	FriendName     string `json:"friendName"`
	Timestamp      int64  `json:"timestamp"`
}

// ApplyNameRequest is the request body for POST /api/v1/friendships/name.
type ApplyNameRequest struct {
	URL string `json:"url" validate:"required"`
}

// FriendNameResponse is the JSON representation of a stored friend name.
type FriendNameResponse struct {
	FriendshipUUID string    `json:"friendshipUuid"`
	FriendName     string    `json:"friendName"`
	Timestamp      int64     `json:"timestamp"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ApplyNameResponse reports the stored name after applying an update.
type ApplyNameResponse struct {
	FriendNameResponse
	Applied bool `json:"applied"`
}

// --- Identity types ---

// IdentityFormRequest is the identity form as typed by the user. Strength is
// the 0-4 score from the client's strength estimator.
type IdentityFormRequest struct {
	NickName      string `json:"nickName"`
	Secret        string `json:"secret"`
	SecretConfirm string `json:"secretConfirm"`
	Strength      int    `json:"strength" validate:"gte=0,lte=4"`
}

// ValidateIdentityResponse is the response for POST /api/v1/identity/validate.
type ValidateIdentityResponse struct {
	Errors    identity.Errors `json:"errors"`
	CanSubmit bool            `json:"canSubmit"`
}

// VerifyIdentityRequest is the request body for POST /api/v1/identity/verify.
type VerifyIdentityRequest struct {
	NickName string `json:"nickName" validate:"required"`
	Secret   string `json:"secret" validate:"required"`
}

// IdentityResponse is the public view of a stored identity.
type IdentityResponse struct {
	ID        string    `json:"id"`
	NickName  string    `json:"nickName"`
	CreatedAt time.Time `json:"createdAt"`
}

// IdentityErrorResponse is returned with 422 when the form is not submittable.
type IdentityErrorResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code"`
	Errors identity.Errors `json:"errors"`
}
