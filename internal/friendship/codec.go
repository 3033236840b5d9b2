package friendship

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultScheme is the app's custom URL scheme.
const DefaultScheme = "wisaw"

// shareHost is the authority of the custom-scheme share link.
const shareHost = "friendship"

// Codec builds share links for friendship payloads. The same link is used for
// the QR code and for the native share sheet.
type Codec struct {
	scheme string
	now    func() time.Time
}

// NewCodec returns a Codec that builds links on the given custom scheme.
// An empty scheme falls back to DefaultScheme.
func NewCodec(scheme string) *Codec {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &Codec{scheme: scheme, now: time.Now}
}

// WithClock returns a copy of c that stamps payloads using now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	cp := *c
	cp.now = now
	return &cp
}

// Scheme returns the custom scheme links are built on.
func (c *Codec) Scheme() string { return c.scheme }

// Payload builds the payload Encode would embed, stamped with the current time.
func (c *Codec) Payload(friendshipUUID, friendName string) Payload {
	if friendName == "" {
		friendName = UnknownFriendName
	}
	return Payload{
		Action:         ActionFriendshipName,
		FriendshipUUID: friendshipUUID,
		FriendName:     friendName,
		Timestamp:      c.now().UnixMilli(),
	}
}

// Encode returns the shareable link for a friendship, in the form
// <scheme>://friendship?type=friendship&data=<token>.
func (c *Codec) Encode(friendshipUUID, friendName string) (string, error) {
	return c.Link(c.Payload(friendshipUUID, friendName))
}

// Link embeds an already built payload in a share link.
func (c *Codec) Link(p Payload) (string, error) {
	token, err := EncodePayload(p)
	if err != nil {
		return "", fmt.Errorf("encode friendship payload: %w", err)
	}
	// token is already percent-encoded; url.Values would escape it twice.
	return c.scheme + "://" + shareHost + "?type=friendship&data=" + token, nil
}

// TokenFromURL extracts the still percent-encoded data parameter from a share
// link. It returns "" when the link has no data parameter.
func TokenFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == "data" {
			return value
		}
	}
	return ""
}
