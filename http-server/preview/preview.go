package preview

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"ficha/http-server/upload"
	"ficha/internal/service/report"
	"ficha/internal/storage"
)

type ReportGenerator interface {
	Generate(ctx context.Context, file io.Reader, req report.Request) (*report.Report, error)
}

type PDFGenerator interface {
	GeneratePDF(ctx context.Context, rep *report.Report) ([]byte, []string, error)
}

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, rep *report.Report) ([]byte, error)
}

type Options struct {
	MaxUploadBytes int64
	Timeout        time.Duration
	ShowLogo       bool
}

const (
	msgNoData     = "No se encontraron datos para ese PERIODO y PROYECTO."
	msgLoadFailed = "No se pudo leer el archivo: "
	msgInvalid    = "Solicitud inválida: "
	msgInternal   = "Ocurrió un error al generar las tablas."
)

func Form(log *slog.Logger, tmpl *template.Template, showLogo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(log, w, tmpl, "index.html", http.StatusOK, newPage(showLogo))
	}
}

// Preview runs the whole pipeline for one submission and renders the tables
// with download links embedded in the page.
func Preview(log *slog.Logger, tmpl *template.Template, gen ReportGenerator, pdf PDFGenerator, xlsx ExcelGenerator, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.preview.Preview"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		page := newPage(opts.ShowLogo)

		form, err := upload.Parse(w, r, opts.MaxUploadBytes)
		keepSelection(page, r)
		if err != nil {
			log.Warn("invalid submission", slog.String("error", err.Error()))
			page.Error = msgInvalid + err.Error()
			code, _ := upload.Status(err)
			renderPage(log, w, tmpl, "index.html", code, page)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.Timeout)
		defer cancel()

		rep, err := gen.Generate(ctx, bytes.NewReader(form.Data), form.Request)
		switch {
		case errors.Is(err, report.ErrNoData):
			page.Warning = msgNoData
			renderPage(log, w, tmpl, "report.html", http.StatusOK, page)
			return
		case errors.Is(err, storage.ErrLoad):
			page.Error = msgLoadFailed + err.Error()
			renderPage(log, w, tmpl, "index.html", http.StatusUnprocessableEntity, page)
			return
		case err != nil:
			log.Error("failed to build report", slog.String("error", err.Error()))
			page.Error = msgInternal
			renderPage(log, w, tmpl, "index.html", http.StatusInternalServerError, page)
			return
		}

		log = log.With(slog.String("report_id", rep.ID))
		page.setReport(rep)

		pdfBytes, warnings, err := pdf.GeneratePDF(ctx, rep)
		if err != nil {
			log.Error("failed to generate pdf", slog.String("error", err.Error()))
			page.Error = msgInternal
			renderPage(log, w, tmpl, "index.html", http.StatusInternalServerError, page)
			return
		}
		page.Warnings = warnings
		page.PDF = &Download{FileName: rep.Variant.FileName(), Href: dataURL("application/pdf", pdfBytes)}

		xlsxBytes, err := xlsx.GenerateExcel(ctx, rep)
		if err != nil {
			// the xlsx copy is optional; the page still offers the PDF
			log.Warn("failed to generate excel", slog.String("error", err.Error()))
		} else {
			page.Excel = &Download{
				FileName: rep.Variant.ExcelFileName(),
				Href:     dataURL("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxBytes),
			}
		}

		for _, warn := range warnings {
			log.Warn("report warning", slog.String("warning", warn))
		}

		renderPage(log, w, tmpl, "report.html", http.StatusOK, page)
	}
}

// keepSelection echoes the submitted selector values back into the form.
func keepSelection(page *Page, r *http.Request) {
	if v := r.FormValue(upload.FieldPeriod); v != "" {
		page.Selected.Period = v
	}
	if v := r.FormValue(upload.FieldProject); v != "" {
		page.Selected.Project = v
	}
	if v := r.FormValue(upload.FieldVariant); v != "" {
		page.Selected.Variant = v
	}
}

func renderPage(log *slog.Logger, w http.ResponseWriter, tmpl *template.Template, name string, status int, page *Page) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		log.Error("failed to render page", slog.String("template", name), slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
