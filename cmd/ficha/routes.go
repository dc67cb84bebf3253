package main

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	genexcel "ficha/http-server/generate-report/generate-excel"
	genpdf "ficha/http-server/generate-report/generate-pdf"
	getlogo "ficha/http-server/logo/get"
	getoptions "ficha/http-server/options/get"
	"ficha/http-server/preview"
	gettables "ficha/http-server/tables/get"
	"ficha/internal/config"
	"ficha/internal/middleware/auth"
	generate_excel "ficha/internal/service/generate-excel"
	generate_pdf "ficha/internal/service/generate-pdf"
	"ficha/internal/service/report"
	"ficha/web"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	tmpl *template.Template,
	reports *report.Service,
	pdfService *generate_pdf.GeneratePDFService,
	excelService *generate_excel.GenerateExcelService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", genpdf.WarningsHeader},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if cfg.Auth.Enabled() {
		router.Use(auth.BasicAuth(cfg.Auth.User, cfg.Auth.Password))
	}

	maxBytes := cfg.Report.MaxUploadBytes()
	timeout := cfg.Report.BuildTimeout
	showLogo := cfg.Report.LogoPath != ""

	// html pages
	router.Get("/", preview.Form(log, tmpl, showLogo))
	router.Post("/report", preview.Preview(log, tmpl, reports, pdfService, excelService, preview.Options{
		MaxUploadBytes: maxBytes,
		Timeout:        timeout,
		ShowLogo:       showLogo,
	}))
	router.Get("/logo", getlogo.GetLogo(log, cfg.Report.LogoPath))
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// api
	router.Get("/api/options", getoptions.GetOptions())
	router.Post("/api/report/tables", gettables.GetTables(log, reports, maxBytes, timeout))
	router.Post("/api/report/pdf", genpdf.GenerateReportPDF(log, reports, pdfService, maxBytes, timeout))
	router.Post("/api/report/excel", genexcel.GenerateReportExcel(log, reports, excelService, maxBytes, timeout))

	return router
}
