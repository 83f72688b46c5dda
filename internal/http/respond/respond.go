// Package respond writes JSON bodies and maps domain errors to status codes
// for every handler.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/pharmacare/internal/auth"
	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/importer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

type errorResponse struct {
	Error  string          `json:"error"`
	Fields validate.Errors `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status its kind maps to. Unknown errors are
// logged and hidden behind a generic message.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)

	body := errorResponse{Error: err.Error()}

	var fields validate.Errors
	if errors.As(err, &fields) {
		body.Fields = fields
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		body.Error = "internal error"
	}

	JSON(w, status, body)
}

func Status(err error) int {
	switch {
	case validate.IsValidation(err):
		return http.StatusUnprocessableEntity

	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, prescription.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrCustomerRequired),
		errors.Is(err, checkout.ErrOutOfStock),
		errors.Is(err, checkout.ErrInsufficientStock),
		errors.Is(err, checkout.ErrLineNotFound),
		errors.Is(err, prescription.ErrDuplicateNumber):
		return http.StatusConflict

	case errors.Is(err, importer.ErrInvalidInput):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrInvalidPIN), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

// BadRequest reports a malformed body or parameter.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
