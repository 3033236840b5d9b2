package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/metrics"
)

// ResolveHandler serves universal links by redirecting them to the app's
// custom-scheme URL.
type ResolveHandler struct {
	parser deeplink.Parser
	links  deeplink.Links
	log    *zap.Logger
}

// NewResolveHandler creates a new ResolveHandler.
func NewResolveHandler(p deeplink.Parser, l deeplink.Links, log *zap.Logger) *ResolveHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResolveHandler{parser: p, links: l, log: log}
}

// Resolve parses the request as https://<request host><request uri> and
// redirects to the matching app URL, or responds 404. Hosts outside the
// parser's allow-list resolve to nothing.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if host == "" {
		host = h.links.Host
	}
	intent := h.parser.Parse("https://" + host + r.URL.RequestURI())
	metrics.LinksParsedTotal.WithLabelValues(intent.Kind.String()).Inc()
	if intent.IsNone() {
		metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
		http.NotFound(w, r)
		return
	}

	target, err := h.links.AppURL(intent)
	if err != nil {
		h.log.Debug("unlinkable intent", zap.Error(err), zap.String("path", r.URL.Path))
		metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
		http.NotFound(w, r)
		return
	}

	metrics.RedirectsTotal.WithLabelValues("redirected").Inc()
	http.Redirect(w, r, target, http.StatusFound)
}
