package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pharmacare/internal/app"
	"github.com/MrJamesThe3rd/pharmacare/internal/config"
	pharmaHttp "github.com/MrJamesThe3rd/pharmacare/internal/http"
	authHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/auth"
	backupHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/backup"
	checkoutHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/checkout"
	customerHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/customer"
	prescriptionHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/prescription"
	productHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/report"
	settingsHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/pharmacare/internal/http/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg, slog.Default())
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	guard := authHandler.RequireUnlock(a.Gate)

	router := pharmaHttp.New(cfg.CORS.AllowedOrigins, pharmaHttp.Handlers{
		Auth:          authHandler.NewHandler(a.Gate),
		Products:      productHandler.NewHandler(a.Products, guard),
		Customers:     customerHandler.NewHandler(a.Customers, a.Transactions, guard),
		Prescriptions: prescriptionHandler.NewHandler(a.Prescriptions),
		Transactions:  txHandler.NewHandler(a.Transactions),
		Checkout:      checkoutHandler.NewHandler(a.Checkout, a.Settings),
		Reports:       reportHandler.NewHandler(a.Reports),
		Settings:      settingsHandler.NewHandler(a.Settings, guard),
		Backup:        backupHandler.NewHandler(a.Backup, guard),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		a.Close()
		os.Exit(1)
	}
}
