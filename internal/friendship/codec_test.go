package friendship

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		uuid       string
		friendName string
	}{
		{name: "plain name", uuid: "uuid-555", friendName: "Sam Example"},
		{name: "unicode name", uuid: "8d1e3f2a-0000-4000-8000-000000000001", friendName: "Zoë Ångström"},
		{name: "name with url characters", uuid: "uuid-1", friendName: "a&b=c?d/e+f"},
		{name: "name that forces padding", uuid: "u", friendName: "Al"},
	}

	c := NewCodec("wisaw")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := c.Encode(tt.uuid, tt.friendName)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !strings.HasPrefix(link, "wisaw://friendship?type=friendship&data=") {
				t.Fatalf("link = %q, want custom-scheme share form", link)
			}

			p, err := Decode(TokenFromURL(link))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if p.FriendshipUUID != tt.uuid {
				t.Errorf("FriendshipUUID = %q, want %q", p.FriendshipUUID, tt.uuid)
			}
			if p.FriendName != tt.friendName {
				t.Errorf("FriendName = %q, want %q", p.FriendName, tt.friendName)
			}
			if p.Action != ActionFriendshipName {
				t.Errorf("Action = %q, want %q", p.Action, ActionFriendshipName)
			}
			if p.Timestamp <= 0 {
				t.Errorf("Timestamp = %d, want positive epoch ms", p.Timestamp)
			}
		})
	}
}

func TestEncodeStampsClock(t *testing.T) {
	c := NewCodec("").WithClock(fixedClock(1700000000123))
	if c.Scheme() != DefaultScheme {
		t.Errorf("Scheme() = %q, want %q", c.Scheme(), DefaultScheme)
	}

	link, err := c.Encode("uuid-1", "Pat")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p, err := Decode(TokenFromURL(link))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Timestamp != 1700000000123 {
		t.Errorf("Timestamp = %d, want 1700000000123", p.Timestamp)
	}
}

func TestEncodeDefaultsFriendName(t *testing.T) {
	p := NewCodec("wisaw").Payload("uuid-1", "")
	if p.FriendName != UnknownFriendName {
		t.Errorf("Payload(\"\").FriendName = %q, want %q", p.FriendName, UnknownFriendName)
	}
}

func TestEncodeKeepsWhitespaceFriendName(t *testing.T) {
	c := NewCodec("wisaw")
	link, err := c.Encode("uuid-1", "   ")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(TokenFromURL(link))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.FriendName != "   " {
		t.Errorf("FriendName = %q, want three spaces", got.FriendName)
	}
}

func TestTokenIsQueryEscaped(t *testing.T) {
	token, err := EncodePayload(Payload{
		Action:         ActionFriendshipName,
		FriendshipUUID: "uuid-1",
		FriendName:     "???>>>",
		Timestamp:      1,
	})
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q contains unescaped base64 characters", token)
	}
}

func TestDecodeRejects(t *testing.T) {
	b64 := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty token", token: "", wantErr: ErrMalformedToken},
		{name: "not base64", token: "not-base64!!!", wantErr: ErrMalformedToken},
		{name: "bad percent escape", token: "%zz", wantErr: ErrMalformedToken},
		{name: "not json", token: b64("not json"), wantErr: ErrMalformedJSON},
		{name: "json array", token: b64(`["friendshipName"]`), wantErr: ErrMalformedJSON},
		{name: "json null", token: b64(`null`), wantErr: ErrIncompletePayload},
		{name: "wrong action", token: b64(`{"action":"other","friendshipUuid":"u","friendName":"n"}`), wantErr: ErrIncompletePayload},
		{name: "missing action", token: b64(`{"friendshipUuid":"u","friendName":"n"}`), wantErr: ErrIncompletePayload},
		{name: "missing uuid", token: b64(`{"action":"friendshipName","friendName":"n"}`), wantErr: ErrIncompletePayload},
		{name: "missing name", token: b64(`{"action":"friendshipName","friendshipUuid":"u"}`), wantErr: ErrIncompletePayload},
		{name: "string timestamp", token: b64(`{"action":"friendshipName","friendshipUuid":"u","friendName":"n","timestamp":"x"}`), wantErr: ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.token)
			if p != nil {
				t.Errorf("Decode(%q) = %+v, want nil", tt.token, p)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode(%q) error = %v, want %v", tt.token, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeTolerantForms(t *testing.T) {
	raw := []byte(`{"action":"friendshipName","friendshipUuid":"uuid-9","friendName":"Kim","timestamp":42}`)
	std := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		token string
	}{
		{name: "percent-encoded", token: url.QueryEscape(std)},
		{name: "already decoded", token: std},
		{name: "plus turned into space", token: strings.ReplaceAll(std, "+", " ")},
		{name: "unpadded", token: strings.TrimRight(std, "=")},
		{name: "url alphabet", token: base64.URLEncoding.EncodeToString(raw)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode(tt.token)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if p.FriendshipUUID != "uuid-9" || p.FriendName != "Kim" || p.Timestamp != 42 {
				t.Errorf("Decode = %+v", p)
			}
		})
	}
}

func TestTokenFromURL(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{link: "wisaw://friendship?type=friendship&data=abc%3D", want: "abc%3D"},
		{link: "https://link.wisaw.com/friendships/name?data=xyz", want: "xyz"},
		{link: "wisaw://friendship?type=friendship", want: ""},
		{link: "://bad", want: ""},
	}
	for _, tt := range tests {
		if got := TokenFromURL(tt.link); got != tt.want {
			t.Errorf("TokenFromURL(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
