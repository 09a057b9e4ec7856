package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// oauthCallback completes an external login. The authorization code comes
// from the JSON body of a POST or the "code" query parameter of a GET. On
// success the issued token is returned both in the Authorization header and
// in the body.
func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	code, err := callbackCode(r)
	if err != nil {
		log.Err(err).Msg("bad oauth callback request")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	user, _, err := h.services.OAuthService.Login(ctx, code)
	if err != nil {
		status := statusFromError(err)
		log.Err(err).Int("status", status).Msg("external login failed")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user logged in through identity provider")

	w.Header().Set("Authorization", utils.BearerPrefix+token.SignedString)
	utils.WriteJSON(w, models.LoginResponse{User: user, Token: token.SignedString}, http.StatusOK)
}

func callbackCode(r *http.Request) (string, error) {
	if r.Method == http.MethodGet {
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			return "", ErrMissingCode
		}
		return code, nil
	}

	var body models.OAuthCallback
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	code := strings.TrimSpace(body.Code)
	if code == "" {
		return "", ErrMissingCode
	}
	return code, nil
}
