package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/auth"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
)

const TokenHeader = "X-Unlock-Token"

type Handler struct {
	gate *auth.Gate
}

func NewHandler(gate *auth.Gate) *Handler {
	return &Handler{gate: gate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/unlock", h.unlock)
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	token, expiresAt, err := h.gate.Unlock(r.Context(), req.PIN)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, unlockResponse{Token: token, ExpiresAt: expiresAt})
}

// RequireUnlock rejects requests without a valid unlock token.
func RequireUnlock(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				respond.Error(w, auth.ErrInvalidToken)
				return
			}

			if _, err := gate.Validate(token); err != nil {
				respond.Error(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
