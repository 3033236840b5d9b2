package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/api"
	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/friendship"
	"github.com/joestump/wisaw-links/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Parser      deeplink.Parser
	Links       deeplink.Links
	Codec       *friendship.Codec
	Identities  *store.IdentityStore
	FriendNames *store.FriendNameStore
	Logger      *zap.Logger
}

// NewRouter assembles the full chi router with all middleware and routes.
// Named routes are registered before the universal-link catch-all.
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Parser:      deps.Parser,
		Links:       deps.Links,
		Codec:       deps.Codec,
		Identities:  deps.Identities,
		FriendNames: deps.FriendNames,
		Logger:      log,
	}))

	// Universal-link resolver -- catch-all, must be last.
	resolver := NewResolveHandler(deps.Parser, deps.Links, log)
	r.Get("/*", resolver.Resolve)

	return r
}

// Healthz reports that the process is serving.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
