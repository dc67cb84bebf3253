package generate_excel

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"ficha/http-server/upload"
	"ficha/internal/service/report"
)

type ReportGenerator interface {
	Generate(ctx context.Context, file io.Reader, req report.Request) (*report.Report, error)
}

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, rep *report.Report) ([]byte, error)
}

// GenerateReportExcel answers a multipart submission with the report tables
// as an xlsx attachment.
func GenerateReportExcel(log *slog.Logger, gen ReportGenerator, xlsx GenerateExcelHandler, maxBytes int64, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

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

		excelBytes, err := xlsx.GenerateExcel(ctx, rep)
		if err != nil {
			log.Error("failed to generate excel", slog.String("report_id", rep.ID), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+rep.Variant.ExcelFileName())
		w.Write(excelBytes)
	}
}
