package main

import (
	"context"
	"net/http"
	"os"
	"time"

	webAdapter "purchasing-bridge/internal/adapters/web"
	"purchasing-bridge/internal/app"
	"purchasing-bridge/internal/core"
	"purchasing-bridge/internal/db"
	"purchasing-bridge/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()
	log := logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	receipts := core.NewReceiptService(pool)
	orders := core.NewOrderService(pool)
	invoices := core.NewInvoiceService(pool, core.NewNamingService())
	errorLog := core.NewErrorLogService(pool, logger.WithComponent("errorlog"))
	materializer := core.NewMaterializer(receipts, orders, logger.WithComponent("materializer"))

	svc := app.NewAppService(materializer, invoices, receipts, errorLog, logger.WithComponent("app"))

	handler := webAdapter.NewHandler(svc, logger.WithComponent("web"), webAdapter.Config{
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		APIToken:       os.Getenv("API_TOKEN"),
	})

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	log.Info().Str("port", port).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server")
	}
}
