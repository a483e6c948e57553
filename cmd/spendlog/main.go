package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"spendlog/internal/cli"
	"spendlog/internal/config"
	"spendlog/internal/export"
	"spendlog/internal/export/excel"
	apphttp "spendlog/internal/http"
	applog "spendlog/internal/log"
	"spendlog/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	slots := cli.OpenStore(logger, cfg)
	session := services.NewSession(slots)

	var writer export.WorkbookWriter
	switch cfg.ExportBackend {
	case config.ExportExcel:
		writer = excel.New()
	default:
		writer = export.Unavailable{}
	}
	exporter := export.NewService(writer)

	srv := apphttp.NewServer(":"+cfg.Port, session, exporter)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := session.Close(); err != nil {
			logger.Error("Store close error", applog.FieldError, err)
		}
	})

	logger.Info("Starting spendlog server",
		applog.FieldOperation, applog.OpStartup,
		"port", cfg.Port,
		applog.FieldBackend, cfg.DataBackend,
		"export_backend", cfg.ExportBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
