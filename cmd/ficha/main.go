package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ficha/internal/config"
	generate_excel "ficha/internal/service/generate-excel"
	generate_pdf "ficha/internal/service/generate-pdf"
	"ficha/internal/service/report"
	"ficha/internal/storage/xlsx"
	"ficha/web"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env, cfg.ErrorLog)

	tmpl, err := web.ParseTemplates()
	if err != nil {
		log.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reportService := report.NewService(xlsx.New(cfg.Report.MaxSalesCount), log)
	pdfService := generate_pdf.NewGeneratePDFService(cfg.Report.LogoPath)
	excelService := generate_excel.NewGenerateService()

	if cfg.Report.LogoPath != "" {
		if _, err := os.Stat(cfg.Report.LogoPath); err != nil {
			log.Warn("logo not found, reports will be rendered without it", slog.String("path", cfg.Report.LogoPath))
		}
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, tmpl, reportService, pdfService, excelService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped")
}
