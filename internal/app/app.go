// Package app assembles the services shared by the API server and the
// terminal client from configuration.
package app

import (
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/pharmacare/internal/auth"
	"github.com/MrJamesThe3rd/pharmacare/internal/backup"
	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/config"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/database"
	"github.com/MrJamesThe3rd/pharmacare/internal/importer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/report"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/file"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/memory"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/postgres"
	"github.com/MrJamesThe3rd/pharmacare/internal/storage/redis"
	"github.com/MrJamesThe3rd/pharmacare/internal/store"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

type App struct {
	Store *store.Store

	Products      *product.Service
	Customers     *customer.Service
	Prescriptions *prescription.Service
	Transactions  *transaction.Service
	Settings      *settings.Service
	Checkout      *checkout.Service
	Reports       *report.Service
	Backup        *backup.Service
	Importer      *importer.Service
	Gate          *auth.Gate
}

// New opens the configured backend and wires every service onto one store.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("storage ready", "driver", cfg.Storage.Driver)

	return NewWithBackend(cfg, backend, log), nil
}

// NewWithBackend wires the services onto an already opened backend.
func NewWithBackend(cfg *config.Config, backend storage.Backend, log *slog.Logger) *App {
	st := store.New(backend, store.WithLogger(log))

	var (
		products = product.NewService(st)
		imp      = importer.NewService()
	)

	return &App{
		Store:         st,
		Products:      products,
		Customers:     customer.NewService(st),
		Prescriptions: prescription.NewService(st),
		Transactions:  transaction.NewService(st),
		Settings:      settings.NewService(st),
		Checkout: checkout.NewService(st,
			checkout.Config{RequireCustomer: cfg.Checkout.RequireCustomer},
			checkout.WithLogger(log),
		),
		Reports:  report.NewService(st),
		Backup:   backup.NewService(st, products, imp),
		Importer: imp,
		Gate:     auth.NewGate(st, cfg.Auth.Secret, cfg.Auth.TokenTTL),
	}
}

func (a *App) Close() error {
	return a.Store.Close()
}

// OpenBackend connects to the storage driver named in cfg.
func OpenBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), nil

	case config.DriverFile:
		b, err := file.New(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("opening file storage: %w", err)
		}

		return b, nil

	case config.DriverPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		return postgres.New(db), nil

	case config.DriverRedis:
		return redis.New(redis.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
