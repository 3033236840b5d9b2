// Package deeplink turns incoming app links into navigation intents and builds
// links for those intents.
package deeplink

import "encoding/json"

// Kind identifies what an Intent navigates to.
type Kind int

const (
	// KindNone means no actionable intent was recognized.
	KindNone Kind = iota
	KindPhoto
	KindFriend
	KindFriendshipNameUpdate
)

func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindFriend:
		return "friend"
	case KindFriendshipNameUpdate:
		return "friendshipNameUpdate"
	default:
		return "none"
	}
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Intent is the result of parsing a link. Only the fields belonging to Kind
// are set; use the constructors below rather than building one by hand.
type Intent struct {
	Kind           Kind
	PhotoID        string
	FriendshipUUID string
	FriendName     string
	Timestamp      int64
}

// None is the zero Intent.
var None = Intent{}

func Photo(photoID string) Intent {
	return Intent{Kind: KindPhoto, PhotoID: photoID}
}

func Friend(friendshipUUID string) Intent {
	return Intent{Kind: KindFriend, FriendshipUUID: friendshipUUID}
}

func FriendshipNameUpdate(friendshipUUID, friendName string, timestamp int64) Intent {
	return Intent{
		Kind:           KindFriendshipNameUpdate,
		FriendshipUUID: friendshipUUID,
		FriendName:     friendName,
		Timestamp:      timestamp,
	}
}

// IsNone reports whether the intent carries nothing to act on.
func (i Intent) IsNone() bool { return i.Kind == KindNone }

type intentJSON struct {
	Kind           Kind   `json:"kind"`
	PhotoID        string `json:"photoId,omitempty"`
	FriendshipUUID string `json:"friendshipUuid,omitempty"`
	FriendName     string `json:"friendName,omitempty"`
	Timestamp      int64  `json:"timestamp,omitempty"`
}

// MarshalJSON renders the intent as {"kind": ..., <fields of that kind>}.
func (i Intent) MarshalJSON() ([]byte, error) {
	return json.Marshal(intentJSON(i))
}
