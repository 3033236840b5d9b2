package deeplink

import (
	"net/url"
	"strings"

	"github.com/joestump/wisaw-links/internal/friendship"
)

// Parser resolves links into intents. The zero Parser accepts any scheme and
// any host.
type Parser struct {
	// Schemes, when non-empty, lists the custom schemes accepted in addition
	// to http and https.
	Schemes []string
	// Hosts, when non-empty, lists the universal-link hosts accepted for
	// http and https links.
	Hosts []string
}

// Parse resolves raw with a Parser that accepts any scheme and host.
func Parse(raw string) Intent {
	return Parser{}.Parse(raw)
}

// Parse resolves raw into an Intent. Path matches take priority over query
// parameters. Anything unrecognized or malformed yields None.
func (p Parser) Parse(raw string) Intent {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" {
		return None
	}
	if !p.accepts(u) {
		return None
	}

	segs := segments(u)
	query := u.Query()

	if id := segmentAfter(segs, "photos"); id != "" {
		return Photo(id)
	}
	if id := segmentAfter(segs, "friends"); id != "" {
		return Friend(id)
	}
	if id := segmentAfter(segs, "confirm-friendship"); id != "" {
		return Friend(id)
	}

	if hasPair(segs, "friendships", "name") && query.Has("data") {
		return nameUpdate(query.Get("data"))
	}
	if query.Get("type") == "friendship" && query.Has("data") {
		return nameUpdate(query.Get("data"))
	}

	if id := query.Get("photoId"); id != "" {
		return Photo(id)
	}
	if id := query.Get("friendshipUuid"); id != "" {
		return Friend(id)
	}
	return None
}

func (p Parser) accepts(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	if isWeb(scheme) {
		return len(p.Hosts) == 0 || containsFold(p.Hosts, u.Hostname())
	}
	return len(p.Schemes) == 0 || containsFold(p.Schemes, scheme)
}

func nameUpdate(token string) Intent {
	payload, err := friendship.Decode(token)
	if err != nil {
		return None
	}
	return FriendshipNameUpdate(payload.FriendshipUUID, payload.FriendName, payload.Timestamp)
}

// segments returns the non-empty path segments of u. For custom schemes the
// authority is the first segment, so wisaw://photos/abc yields [photos abc].
func segments(u *url.URL) []string {
	var path string
	switch {
	case u.Opaque != "":
		path = u.Opaque
	case isWeb(strings.ToLower(u.Scheme)):
		path = u.Path
	default:
		path = u.Host + "/" + u.Path
	}

	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// segmentAfter returns the segment following the first segment equal to key,
// with any ?query or #fragment suffix stripped.
func segmentAfter(segs []string, key string) string {
	for i := 0; i+1 < len(segs); i++ {
		if segs[i] == key {
			return stripSuffix(segs[i+1])
		}
	}
	return ""
}

func hasPair(segs []string, first, second string) bool {
	for i := 0; i+1 < len(segs); i++ {
		if segs[i] == first && segs[i+1] == second {
			return true
		}
	}
	return false
}

// stripSuffix cuts a segment at the first '?' or '#'. These only survive
// url.Parse when they were percent-encoded in the original link.
func stripSuffix(seg string) string {
	if i := strings.IndexAny(seg, "?#"); i >= 0 {
		return seg[:i]
	}
	return seg
}

func isWeb(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
