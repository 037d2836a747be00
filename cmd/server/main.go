package main

import (
	"context"
	"net/http"
	"os"
	"time"

	webAdapter "sale-ops-pipeline/internal/adapters/web"
	"sale-ops-pipeline/internal/app"
	"sale-ops-pipeline/internal/core"
	"sale-ops-pipeline/internal/db"
	"sale-ops-pipeline/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, "")
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	tz := os.Getenv("ORDER_TIMEZONE")
	if tz == "" {
		tz = "Asia/Riyadh"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Fatal("invalid ORDER_TIMEZONE", zap.String("tz", tz), zap.Error(err))
	}

	vendorService := core.NewVendorService(pool)
	productService := core.NewProductService(pool)
	carrierService := core.NewCarrierService(pool)
	leadTimeService := core.NewLeadTimeService(pool)
	stageService := core.NewStageService(pool)
	settingsService := core.NewSettingsService(pool)
	poService := core.NewPurchaseOrderService(pool)
	issuer := core.NewShippingPOIssuer(pool, poService, settingsService, log)
	orderService := core.NewOrderService(pool, leadTimeService, poService, loc, log)

	svc := app.NewAppService(orderService, issuer, vendorService, productService,
		carrierService, leadTimeService, stageService, settingsService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, log)

	log.Info("server starting", zap.String("port", port), zap.String("timezone", tz))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
