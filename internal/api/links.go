package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/metrics"
)

// linksAPIHandler parses and builds app links.
type linksAPIHandler struct {
	parser deeplink.Parser
	links  deeplink.Links
	log    *zap.Logger
}

// Parse resolves a link into an intent. Unrecognized links are not an error:
// they come back as {"kind":"none"}.
// POST /api/v1/links/parse
//
// @Summary      Parse a link
// @Description  Resolves a custom-scheme or universal link into an intent. Unrecognized links return kind "none".
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        body  body      ParseLinkRequest  true  "Link to parse"
// @Success      200   {object}  deeplink.Intent
// @Failure      400   {object}  ErrorResponse
// @Router       /links/parse [post]
func (h *linksAPIHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseLinkRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	intent := h.parser.Parse(req.URL)
	metrics.LinksParsedTotal.WithLabelValues(intent.Kind.String()).Inc()
	h.log.Debug("link parsed", zap.String("kind", intent.Kind.String()))

	writeJSON(w, http.StatusOK, intent)
}

// Build returns the custom-scheme and universal links for an intent.
// POST /api/v1/links/build
//
// @Summary      Build links for an intent
// @Description  Returns the custom-scheme link and the universal link for a photo, friend or friend-name intent.
// @Tags         Links
// @Accept       json
// @Produce      json
// @Param        body  body      BuildLinkRequest  true  "Intent to link"
// @Success      200   {object}  BuildLinkResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /links/build [post]
func (h *linksAPIHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req BuildLinkRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var intent deeplink.Intent
	switch req.Kind {
	case "photo":
		intent = deeplink.Photo(req.PhotoID)
	case "friend":
		intent = deeplink.Friend(req.FriendshipUUID)
	case "friendshipNameUpdate":
		intent = deeplink.FriendshipNameUpdate(req.FriendshipUUID, req.FriendName, req.Timestamp)
	}

	app, err := h.links.AppURL(intent)
	if err != nil {
		writeBuildError(w, err)
		return
	}
	universal, err := h.links.UniversalURL(intent)
	if err != nil {
		writeBuildError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BuildLinkResponse{AppURL: app, UniversalURL: universal})
}

func writeBuildError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deeplink.ErrIDEmpty),
		errors.Is(err, deeplink.ErrIDFormat),
		errors.Is(err, deeplink.ErrNotLinkable):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INTENT")
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
