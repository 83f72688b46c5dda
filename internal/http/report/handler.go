package report

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/http/respond"
	"github.com/MrJamesThe3rd/pharmacare/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/sales", h.sales)
	r.Get("/sales.csv", h.salesCSV)
	r.Get("/low-stock", h.lowStock)
	r.Get("/expiring", h.expiring)
	r.Get("/dashboard", h.dashboard)
}

// dateRange reads start_date and end_date, defaulting to the current month.
func (h *Handler) dateRange(r *http.Request) (time.Time, time.Time, error) {
	now := h.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		end = t
	}

	return start, end, nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	return strconv.Atoi(s)
}

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) (*report.SalesReport, bool) {
	start, end, err := h.dateRange(r)
	if err != nil {
		respond.BadRequest(w, "dates must be YYYY-MM-DD")
		return nil, false
	}

	topN, err := intParam(r, "top", report.DefaultTopN)
	if err != nil {
		respond.BadRequest(w, "invalid top")
		return nil, false
	}

	rep, err := h.svc.Sales(r.Context(), start, end, topN)
	if err != nil {
		respond.Error(w, err)
		return nil, false
	}

	return rep, true
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.salesReport(w, r)
	if !ok {
		return
	}

	respond.JSON(w, http.StatusOK, rep)
}

// salesCSV downloads one section of the sales report. kind selects
// transactions (default), products or customers.
func (h *Handler) salesCSV(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.salesReport(w, r)
	if !ok {
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "transactions"
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sales-"+kind+"-"+rep.Start+"-"+rep.End+".csv\"")

	var err error

	switch kind {
	case "transactions":
		err = backup.WriteSalesCSV(w, rep.Transactions)
	case "products":
		err = backup.WriteProductSalesCSV(w, rep.TopProducts)
	case "customers":
		err = backup.WriteCustomerSpendCSV(w, rep.TopCustomers)
	default:
		w.Header().Del("Content-Disposition")
		respond.BadRequest(w, "kind must be transactions, products or customers")

		return
	}

	if err != nil {
		slog.Error("failed to write csv", "kind", kind, "error", err)
	}
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.LowStock(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, products)
}

func (h *Handler) expiring(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", report.DefaultExpiryHorizon)
	if err != nil || days < 0 {
		respond.BadRequest(w, "invalid days")
		return
	}

	products, err := h.svc.ExpiringSoon(r.Context(), h.now(), days)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, products)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), h.now())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, d)
}
