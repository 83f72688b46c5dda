package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
)

type Handler struct {
	svc   *settings.Service
	guard func(http.Handler) http.Handler
}

func NewHandler(svc *settings.Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{svc: svc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.With(h.guard).Patch("/", h.update)
}

// settingsResponse hides the PIN.
type settingsResponse struct {
	settings.Settings
	PIN string `json:"pin,omitempty"`
}

func toResponse(s *settings.Settings) settingsResponse {
	return settingsResponse{Settings: *s}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateParams
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	st, err := h.svc.Update(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}
