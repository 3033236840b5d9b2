package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/deeplink"
	"github.com/joestump/wisaw-links/internal/friendship"
	"github.com/joestump/wisaw-links/internal/metrics"
	"github.com/joestump/wisaw-links/internal/store"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// friendshipsAPIHandler builds share links and applies friend-name updates.
type friendshipsAPIHandler struct {
	parser deeplink.Parser
	codec  *friendship.Codec
	names  *store.FriendNameStore
	log    *zap.Logger
}

// Share builds the share link for a friendship. The same URL feeds the QR
// code and the share sheet.
// POST /api/v1/friendships/share
//
// @Summary      Create a friendship share link
// @Description  Encodes the friendship and friend name into the link used by both the QR code and the share sheet.
// @Tags         Friendships
// @Accept       json
// @Produce      json
// @Param        body  body      ShareRequest  true  "Friendship to share"
// @Success      200   {object}  ShareResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /friendships/share [post]
func (h *friendshipsAPIHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	p := h.codec.Payload(req.FriendshipUUID, req.FriendName)
	link, err := h.codec.Link(p)
	if err != nil {
		h.log.Error("build share link", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	metrics.ShareLinksCreatedTotal.Inc()

	writeJSON(w, http.StatusOK, ShareResponse{
		URL:            link,
		Token:          friendship.TokenFromURL(link),
		FriendshipUUID: p.FriendshipUUID,
		FriendName:     p.FriendName,
		Timestamp:      p.Timestamp,
	})
}

// ShareQR renders the share link as a PNG QR code.
// GET /api/v1/friendships/share/qr?friendshipUuid=...&friendName=...&size=256
//
// @Summary      Render a share link as a QR code
// @Tags         Friendships
// @Produce      png
// @Param        friendshipUuid  query     string  true   "Friendship UUID"
// @Param        friendName      query     string  false  "Friend name (defaults to Unknown Friend)"
// @Param        size            query     int     false  "Image size in pixels (64-1024)"  default(256)
// @Success      200             {file}    binary
// @Failure      400             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /friendships/share/qr [get]
func (h *friendshipsAPIHandler) ShareQR(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	uuid := q.Get("friendshipUuid")
	if uuid == "" {
		writeError(w, http.StatusBadRequest, "friendshipUuid is required", "BAD_REQUEST")
		return
	}

	size := defaultQRSize
	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < minQRSize || n > maxQRSize {
			writeError(w, http.StatusBadRequest, "size must be between 64 and 1024", "BAD_REQUEST")
			return
		}
		size = n
	}

	link, err := h.codec.Encode(uuid, q.Get("friendName"))
	if err != nil {
		h.log.Error("build share link", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		h.log.Error("render share qr", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	metrics.ShareLinksCreatedTotal.Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// ApplyName applies the friend name carried by a share link to the local
// contact list. Older payloads than the stored one are accepted but ignored.
// POST /api/v1/friendships/name
//
// @Summary      Apply a friend-name update
// @Description  Stores the friend name carried by a share link if it is newer than the stored one.
// @Tags         Friendships
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyNameRequest  true  "Share link"
// @Success      200   {object}  ApplyNameResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /friendships/name [post]
func (h *friendshipsAPIHandler) ApplyName(w http.ResponseWriter, r *http.Request) {
	var req ApplyNameRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	intent := h.parser.Parse(req.URL)
	metrics.LinksParsedTotal.WithLabelValues(intent.Kind.String()).Inc()
	if intent.Kind != deeplink.KindFriendshipNameUpdate {
		metrics.FriendNameUpdatesTotal.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnprocessableEntity, "link does not carry a friendship name", "INVALID_LINK")
		return
	}

	applied, err := h.names.Apply(r.Context(), intent.FriendshipUUID, intent.FriendName, intent.Timestamp)
	if err != nil {
		h.log.Error("apply friend name", zap.Error(err), zap.String("friendship_uuid", intent.FriendshipUUID))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	if applied {
		metrics.FriendNameUpdatesTotal.WithLabelValues("applied").Inc()
	} else {
		metrics.FriendNameUpdatesTotal.WithLabelValues("stale").Inc()
	}

	stored, err := h.names.Get(r.Context(), intent.FriendshipUUID)
	if err != nil {
		h.log.Error("load friend name", zap.Error(err), zap.String("friendship_uuid", intent.FriendshipUUID))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, ApplyNameResponse{
		FriendNameResponse: toFriendNameResponse(stored),
		Applied:            applied,
	})
}

// List returns all stored friend names.
// GET /api/v1/friendships
//
// @Summary      List friend names
// @Tags         Friendships
// @Produce      json
// @Success      200  {array}   FriendNameResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friendships [get]
func (h *friendshipsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.names.List(r.Context())
	if err != nil {
		h.log.Error("list friend names", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := make([]FriendNameResponse, 0, len(names))
	for _, n := range names {
		resp = append(resp, toFriendNameResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns the stored name for one friendship.
// GET /api/v1/friendships/{uuid}
//
// @Summary      Get a friend name
// @Tags         Friendships
// @Produce      json
// @Param        uuid  path      string  true  "Friendship UUID"
// @Success      200   {object}  FriendNameResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /friendships/{uuid} [get]
func (h *friendshipsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.names.Get(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		h.log.Error("get friend name", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, toFriendNameResponse(n))
}

// Delete forgets the stored name for one friendship.
// DELETE /api/v1/friendships/{uuid}
//
// @Summary      Forget a friend name
// @Tags         Friendships
// @Param        uuid  path  string  true  "Friendship UUID"
// @Success      204
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /friendships/{uuid} [delete]
func (h *friendshipsAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.names.Delete(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		h.log.Error("delete friend name", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toFriendNameResponse(n *store.FriendName) FriendNameResponse {
	return FriendNameResponse{
		FriendshipUUID: n.FriendshipUUID,
		FriendName:     n.FriendName,
		Timestamp:      n.NameTimestamp,
		UpdatedAt:      n.UpdatedAt,
	}
}
