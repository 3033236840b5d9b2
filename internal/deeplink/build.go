package deeplink

import (
	"fmt"

	"github.com/joestump/wisaw-links/internal/friendship"
)

// Links builds custom-scheme and universal links for intents. Every link it
// builds parses back to the intent it was built from.
type Links struct {
	Scheme string
	Host   string
}

// AppURL returns the custom-scheme link for i, e.g. wisaw://photos/123.
func (l Links) AppURL(i Intent) (string, error) {
	if i.Kind == KindFriendshipNameUpdate {
		p, err := payloadOf(i)
		if err != nil {
			return "", err
		}
		return friendship.NewCodec(l.Scheme).Link(p)
	}
	path, err := pathOf(i)
	if err != nil {
		return "", err
	}
	return l.Scheme + "://" + path, nil
}

// UniversalURL returns the HTTPS link for i, e.g.
// https://link.wisaw.com/photos/123.
func (l Links) UniversalURL(i Intent) (string, error) {
	if i.Kind == KindFriendshipNameUpdate {
		p, err := payloadOf(i)
		if err != nil {
			return "", err
		}
		token, err := friendship.EncodePayload(p)
		if err != nil {
			return "", fmt.Errorf("encode friendship payload: %w", err)
		}
		return "https://" + l.Host + "/friendships/name?data=" + token, nil
	}
	path, err := pathOf(i)
	if err != nil {
		return "", err
	}
	return "https://" + l.Host + "/" + path, nil
}

func pathOf(i Intent) (string, error) {
	switch i.Kind {
	case KindPhoto:
		if err := ValidateID(i.PhotoID); err != nil {
			return "", err
		}
		return "photos/" + i.PhotoID, nil
	case KindFriend:
		if err := ValidateID(i.FriendshipUUID); err != nil {
			return "", err
		}
		return "friends/" + i.FriendshipUUID, nil
	default:
		return "", ErrNotLinkable
	}
}

func payloadOf(i Intent) (friendship.Payload, error) {
	p := friendship.Payload{
		Action:         friendship.ActionFriendshipName,
		FriendshipUUID: i.FriendshipUUID,
		FriendName:     i.FriendName,
		Timestamp:      i.Timestamp,
	}
	if !p.Valid() {
		return p, ErrNotLinkable
	}
	return p, nil
}
