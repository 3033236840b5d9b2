package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/friendship"
	"github.com/joestump/wisaw-links/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Parser      deeplink.Parser
	Links       deeplink.Links
	Codec       *friendship.Codec
	Identities  *store.IdentityStore
	FriendNames *store.FriendNameStore
	Logger      *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1.
// All routes except the QR image return application/json.
func NewAPIRouter(deps Deps) chi.Router {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)

	links := &linksAPIHandler{parser: deps.Parser, links: deps.Links, log: log}
	r.Post("/links/parse", links.Parse)
	r.Post("/links/build", links.Build)

	friends := &friendshipsAPIHandler{
		parser: deps.Parser,
		codec:  deps.Codec,
		names:  deps.FriendNames,
		log:    log,
	}
	r.Post("/friendships/share", friends.Share)
	r.Get("/friendships/share/qr", friends.ShareQR)
	r.Post("/friendships/name", friends.ApplyName)
	r.Get("/friendships", friends.List)
	r.Get("/friendships/{uuid}", friends.Get)
	r.Delete("/friendships/{uuid}", friends.Delete)

	ident := &identityAPIHandler{identities: deps.Identities, log: log}
	r.Post("/identity/validate", ident.Validate)
	r.Post("/identity", ident.Create)
	r.Post("/identity/verify", ident.Verify)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
