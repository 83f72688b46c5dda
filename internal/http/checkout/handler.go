package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
)

type Handler struct {
	svc      *checkout.Service
	settings *settings.Service
}

func NewHandler(svc *checkout.Service, settings *settings.Service) *Handler {
	return &Handler{svc: svc, settings: settings}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/quote", h.quote)
	r.Post("/", h.complete)
}

type cartRequest struct {
	Items []checkout.CartItem `json:"items"`
	// DiscountPercent falls back to the configured default discount when omitted.
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
}

type saleRequest struct {
	cartRequest
	checkout.SaleParams
}

func (h *Handler) buildCart(r *http.Request, req cartRequest) (*checkout.Cart, error) {
	discount := 0.0

	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	} else {
		st, err := h.settings.Get(r.Context())
		if err != nil {
			return nil, err
		}

		discount = st.DefaultDiscount
	}

	return h.svc.BuildCart(r.Context(), req.Items, discount)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	cart, err := h.buildCart(r, req)
	if err != nil {
		respond.Error(w, err)
		return
	}

	q, err := h.svc.Quote(r.Context(), cart)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, q)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	cart, err := h.buildCart(r, req.cartRequest)
	if err != nil {
		respond.Error(w, err)
		return
	}

	tx, err := h.svc.CompleteSale(r.Context(), cart, req.SaleParams)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, tx)
}
