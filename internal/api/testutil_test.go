package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joestump/wisaw-links/internal/api"
	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/friendship"
	"github.com/joestump/wisaw-links/internal/store"
	"github.com/joestump/wisaw-links/internal/testutil"
)

// testNow is the clock share links are stamped with in API tests.
var testNow = time.UnixMilli(1700000000000)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router      http.Handler
	Codec       *friendship.Codec
	Identities  *store.IdentityStore
	FriendNames *store.FriendNameStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	codec := friendship.NewCodec("wisaw").WithClock(func() time.Time { return testNow })
	is := store.NewIdentityStore(db)
	fs := store.NewFriendNameStore(db)

	router := api.NewAPIRouter(api.Deps{
		Parser:      deeplink.Parser{Schemes: []string{"wisaw"}, Hosts: []string{"link.wisaw.com"}},
		Links:       deeplink.Links{Scheme: "wisaw", Host: "link.wisaw.com"},
		Codec:       codec,
		Identities:  is,
		FriendNames: fs,
	})
	return &testEnv{Router: router, Codec: codec, Identities: is, FriendNames: fs}
}

// do sends a request with an optional JSON body and records the response.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}
