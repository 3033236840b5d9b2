package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/joestump/wisaw-links/internal/identity"
	"github.com/joestump/wisaw-links/internal/metrics"
	"github.com/joestump/wisaw-links/internal/store"
)

// identityAPIHandler validates identity forms and stores identities.
type identityAPIHandler struct {
	identities *store.IdentityStore
	log        *zap.Logger
}

// Validate runs the identity form rules. Called on every keystroke, so it
// touches nothing but its input.
// POST /api/v1/identity/validate
//
// @Summary      Validate an identity form
// @Description  Returns per-field messages and whether the form may be submitted. Nothing is stored.
// @Tags         Identity
// @Accept       json
// @Produce      json
// @Param        body  body      IdentityFormRequest  true  "Identity form"
// @Success      200   {object}  ValidateIdentityResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /identity/validate [post]
func (h *identityAPIHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req IdentityFormRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	errs := identity.Validate(req.NickName, req.Secret, req.SecretConfirm, req.Strength)
	ok := identity.CanSubmit(errs, req.Secret)
	if ok {
		metrics.IdentityValidationsTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.IdentityValidationsTotal.WithLabelValues("invalid").Inc()
	}

	writeJSON(w, http.StatusOK, ValidateIdentityResponse{Errors: errs, CanSubmit: ok})
}

// Create stores a new identity once the form passes validation.
// POST /api/v1/identity
//
// @Summary      Create an identity
// @Tags         Identity
// @Accept       json
// @Produce      json
// @Param        body  body      IdentityFormRequest  true  "Identity form"
// @Success      201   {object}  IdentityResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  IdentityErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /identity [post]
func (h *identityAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req IdentityFormRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	errs := identity.Validate(req.NickName, req.Secret, req.SecretConfirm, req.Strength)
	if !identity.CanSubmit(errs, req.Secret) {
		metrics.IdentityValidationsTotal.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, IdentityErrorResponse{
			Error:  "identity form is not valid",
			Code:   "VALIDATION_FAILED",
			Errors: errs,
		})
		return
	}
	metrics.IdentityValidationsTotal.WithLabelValues("valid").Inc()

	hash, err := identity.HashSecret(req.Secret)
	if err != nil {
		h.log.Error("hash secret", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	created, err := h.identities.Create(r.Context(), req.NickName, hash)
	if err != nil {
		if errors.Is(err, store.ErrNickNameTaken) {
			writeError(w, http.StatusConflict, err.Error(), "NICKNAME_TAKEN")
			return
		}
		h.log.Error("create identity", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	h.log.Info("identity created", zap.String("identity_id", created.ID))
	writeJSON(w, http.StatusCreated, toIdentityResponse(created))
}

// Verify checks a nickname and secret against the stored identity.
// POST /api/v1/identity/verify
//
// @Summary      Verify an identity secret
// @Tags         Identity
// @Accept       json
// @Produce      json
// @Param        body  body      VerifyIdentityRequest  true  "Nickname and secret"
// @Success      200   {object}  IdentityResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /identity/verify [post]
func (h *identityAPIHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyIdentityRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	found, err := h.identities.GetByNickName(r.Context(), req.NickName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
			return
		}
		h.log.Error("load identity", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if err := identity.CheckSecret(found.SecretHash, req.Secret); err != nil {
		if !errors.Is(err, identity.ErrSecretMismatch) {
			h.log.Error("check secret", zap.Error(err), zap.String("identity_id", found.ID))
		}
		writeError(w, http.StatusUnauthorized, "unauthorized", "UNAUTHORIZED")
		return
	}

	writeJSON(w, http.StatusOK, toIdentityResponse(found))
}

func toIdentityResponse(i *store.Identity) IdentityResponse {
	return IdentityResponse{ID: i.ID, NickName: i.NickName, CreatedAt: i.CreatedAt}
}
