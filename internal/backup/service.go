// Package backup exports and restores the whole database and renders the
// spreadsheet and CSV downloads.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/importer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
	"github.com/MrJamesThe3rd/pharmacare/internal/validate"
)

type Repository interface {
	ListProducts(ctx context.Context) ([]*product.Product, error)
	ListCustomers(ctx context.Context) ([]*customer.Customer, error)
	ListPrescriptions(ctx context.Context) ([]*prescription.Prescription, error)
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
	GetSettings(ctx context.Context) (*settings.Settings, error)
	Restore(ctx context.Context, snap *Snapshot) error
	Clear(ctx context.Context) error
}

// ProductCreator bulk-creates validated products.
type ProductCreator interface {
	CreateBatch(ctx context.Context, params []product.CreateParams) ([]*product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductCreator
	importer *importer.Service
	now      func() time.Time
}

func NewService(repo Repository, products ProductCreator, imp *importer.Service) *Service {
	return &Service{
		repo:     repo,
		products: products,
		importer: imp,
		now:      time.Now,
	}
}

// Export reads every collection into a snapshot stamped with the export time.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	prescriptions, err := s.repo.ListPrescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}

	transactions, err := s.repo.ListTransactions(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	st, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Snapshot{
		Products:      products,
		Customers:     customers,
		Prescriptions: prescriptions,
		Transactions:  transactions,
		Settings:      st,
		ExportDate:    s.now().UTC(),
	}, nil
}

// Import replaces each collection present in snap. Absent collections are
// left untouched. Identifiers are kept, so importing an export reproduces it.
// Every record is validated first and nothing is written when any fails.
func (s *Service) Import(ctx context.Context, snap *Snapshot) error {
	if err := Validate(snap); err != nil {
		return err
	}

	if err := s.repo.Restore(ctx, snap); err != nil {
		return fmt.Errorf("restoring: %w", err)
	}

	return nil
}

// Validate checks every record in snap against its field rules and rejects
// missing or repeated identifiers within a collection.
func Validate(snap *Snapshot) error {
	var errs validate.Errors

	errs = append(errs, checkCollection("products", snap.Products, func(p *product.Product) string { return p.ID })...)
	errs = append(errs, checkCollection("customers", snap.Customers, func(c *customer.Customer) string { return c.ID })...)
	errs = append(errs, checkCollection("prescriptions", snap.Prescriptions, func(p *prescription.Prescription) string { return p.ID })...)
	errs = append(errs, checkCollection("transactions", snap.Transactions, func(t *transaction.Transaction) string { return t.ID })...)

	if snap.Settings != nil {
		errs = append(errs, fieldErrors("settings", validate.Struct(*snap.Settings))...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func checkCollection[T any](name string, items []*T, id func(*T) string) validate.Errors {
	var errs validate.Errors

	seen := make(map[string]int, len(items))

	for i, item := range items {
		at := fmt.Sprintf("%s[%d]", name, i)

		if item == nil {
			errs = append(errs, validate.FieldError{Field: at, Message: "is required"})
			continue
		}

		errs = append(errs, fieldErrors(at, validate.Struct(item))...)

		key := id(item)
		if key == "" {
			continue
		}

		if first, ok := seen[key]; ok {
			errs = append(errs, validate.FieldError{
				Field:   at + ".id",
				Message: fmt.Sprintf("duplicates %s[%d]", name, first),
			})

			continue
		}

		seen[key] = i
	}

	return errs
}

// fieldErrors prefixes the field paths in err with at.
func fieldErrors(at string, err error) validate.Errors {
	if err == nil {
		return nil
	}

	var fields validate.Errors
	if !errors.As(err, &fields) {
		return validate.Field(at, "is invalid")
	}

	out := make(validate.Errors, 0, len(fields))
	for _, fe := range fields {
		out = append(out, validate.FieldError{Field: at + "." + fe.Field, Message: fe.Message})
	}

	return out
}

// Reset drops all stored data. The sample catalogue and default settings
// come back on the next read.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing data: %w", err)
	}

	return nil
}

// ImportProductsCSV parses a product list in any known layout and creates
// every product in it. Nothing is created when any row is invalid.
func (s *Service) ImportProductsCSV(ctx context.Context, r io.Reader) ([]*product.Product, error) {
	params, err := s.importer.Import(r)
	if err != nil {
		return nil, fmt.Errorf("parsing product csv: %w", err)
	}

	return s.products.CreateBatch(ctx, params)
}

func WriteJSON(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(snap)
}

func ReadJSON(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}

	return &snap, nil
}
