// Package friendship encodes and decodes the friendship-name payload carried
// by share links and QR codes.
package friendship

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
)

// ActionFriendshipName is the only action a share payload may carry.
const ActionFriendshipName = "friendshipName"

// UnknownFriendName is used when a payload is encoded without a friend name.
const UnknownFriendName = "Unknown Friend"

var (
	// ErrMalformedToken is returned when a token is not valid percent-encoded base64.
	ErrMalformedToken = errors.New("friendship token is not valid base64")

	// ErrMalformedJSON is returned when the decoded token is not a JSON object.
	ErrMalformedJSON = errors.New("friendship token does not contain valid JSON")

	// ErrIncompletePayload is returned when the payload has the wrong action or
	// is missing the friendship uuid or friend name.
	ErrIncompletePayload = errors.New("friendship payload is incomplete")
)

// Payload is the record shared between two devices to name a friendship.
type Payload struct {
	Action         string `json:"action"`
	FriendshipUUID string `json:"friendshipUuid"`
	FriendName     string `json:"friendName"`
	Timestamp      int64  `json:"timestamp"`
}

// Valid reports whether p names a friendship.
func (p Payload) Valid() bool {
	return p.Action == ActionFriendshipName && p.FriendshipUUID != "" && p.FriendName != ""
}

// EncodePayload serializes p into a URL-safe token: JSON, then standard
// base64, then percent-encoding.
func EncodePayload(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(raw)), nil
}

// Decode reverses EncodePayload. It returns a nil payload and an error for any
// malformed or incomplete token; callers that only need a yes/no answer can
// ignore the error.
func Decode(token string) (*Payload, error) {
	unescaped, err := url.PathUnescape(token)
	if err != nil {
		return nil, ErrMalformedToken
	}

	// A form decoder along the way may have turned '+' into ' '.
	unescaped = strings.ReplaceAll(strings.TrimSpace(unescaped), " ", "+")
	if unescaped == "" {
		return nil, ErrMalformedToken
	}

	raw, err := decodeBase64(unescaped)
	if err != nil {
		return nil, ErrMalformedToken
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrMalformedJSON
	}
	if !p.Valid() {
		return nil, ErrIncompletePayload
	}
	return &p, nil
}

// decodeBase64 accepts the standard alphabet, with or without padding, and
// the URL-safe alphabet some share targets rewrite tokens into.
func decodeBase64(s string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var err error
	for _, enc := range encodings {
		var b []byte
		if b, err = enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, err
}
