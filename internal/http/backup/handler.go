package backup

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc   *backup.Service
	guard func(http.Handler) http.Handler
}

func NewHandler(svc *backup.Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{svc: svc, guard: guard}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.exportJSON)
	r.Get("/xlsx", h.exportWorkbook)
	r.Get("/products.csv", h.exportProducts)
	r.Post("/products.csv", h.importProducts)

	r.With(h.guard).Post("/", h.importJSON)
	r.With(h.guard).Delete("/", h.reset)
}

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}

func (h *Handler) exportJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	attachment(w, "application/json", "pharmacy-backup-"+snap.ExportDate.Format(time.DateOnly)+".json")

	if err := backup.WriteJSON(w, snap); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	var buf bytes.Buffer
	if err := backup.WriteWorkbook(&buf, snap); err != nil {
		respond.Error(w, err)
		return
	}

	attachment(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"pharmacy-data-"+snap.ExportDate.Format(time.DateOnly)+".xlsx",
	)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Export(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	attachment(w, "text/csv", "products-"+snap.ExportDate.Format(time.DateOnly)+".csv")

	if err := backup.WriteProductsCSV(w, snap.Products); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}

func (h *Handler) importJSON(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.ReadJSON(http.MaxBytesReader(w, r.Body, maxUploadSize))
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.Import(r.Context(), snap); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type importProductsResponse struct {
	Imported int `json:"imported"`
}

// importProducts accepts either a multipart form with a "file" field or the
// raw CSV as the request body.
func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if r.Header.Get("Content-Type") != "" && r.Header.Get("Content-Type") != "text/csv" {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respond.BadRequest(w, "failed to parse form: "+err.Error())
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			respond.BadRequest(w, "missing file")
			return
		}
		defer file.Close()

		src = file
	}

	products, err := h.svc.ImportProductsCSV(r.Context(), src)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importProductsResponse{Imported: len(products)})
}
