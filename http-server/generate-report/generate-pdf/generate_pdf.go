package generate_pdf

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"ficha/http-server/upload"
	"ficha/internal/service/report"
)

// WarningsHeader carries non-fatal rendering problems, joined by "; ".
const WarningsHeader = "X-Report-Warnings"

type ReportGenerator interface {
	Generate(ctx context.Context, file io.Reader, req report.Request) (*report.Report, error)
}

type GeneratePDFHandler interface {
	GeneratePDF(ctx context.Context, rep *report.Report) ([]byte, []string, error)
}

func GenerateReportPDF(log *slog.Logger, gen ReportGenerator, pdf GeneratePDFHandler, maxBytes int64, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportPDF"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		form, err := upload.Parse(w, r, maxBytes)
		if err != nil {
			log.Warn("invalid submission", slog.String("error", err.Error()))
			code, msg := upload.Status(err)
			http.Error(w, msg, code)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		rep, err := gen.Generate(ctx, bytes.NewReader(form.Data), form.Request)
		if err != nil {
			code, msg := upload.Status(err)
			if code >= http.StatusInternalServerError {
				log.Error("failed to build report", slog.String("error", err.Error()))
			}
			http.Error(w, msg, code)
			return
		}

		pdfBytes, warnings, err := pdf.GeneratePDF(ctx, rep)
		if err != nil {
			log.Error("failed to generate pdf", slog.String("report_id", rep.ID), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		if len(warnings) > 0 {
			log.Warn("pdf generated with warnings", slog.String("report_id", rep.ID), slog.Any("warnings", warnings))
			w.Header().Set(WarningsHeader, strings.Join(warnings, "; "))
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+rep.Variant.FileName())
		w.Write(pdfBytes)
	}
}
