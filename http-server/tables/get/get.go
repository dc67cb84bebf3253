package get

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ficha/http-server/upload"
	"ficha/internal/constants"
	"ficha/internal/service/report"
)

type ResponseTables struct {
	ReportID string              `json:"report_id,omitempty"`
	Period   string              `json:"period,omitempty"`
	Project  string              `json:"project,omitempty"`
	Variant  string              `json:"variant,omitempty"`
	Tables   []report.Section    `json:"tables"`
	Comments map[string][]string `json:"comments,omitempty"`
	Status   string              `json:"status"`
	Error    string              `json:"error,omitempty"`
}

type ReportGenerator interface {
	Generate(ctx context.Context, file io.Reader, req report.Request) (*report.Report, error)
}

// GetTables returns the preview tables of a submission as JSON, in report order.
func GetTables(log *slog.Logger, gen ReportGenerator, maxBytes int64, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.tables.GetTables"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		form, err := upload.Parse(w, r, maxBytes)
		if err != nil {
			log.Warn("invalid submission", slog.String("error", err.Error()))
			code, msg := upload.Status(err)
			render.Status(r, code)
			render.JSON(w, r, ResponseTables{Status: strconv.Itoa(code), Error: msg})
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
			render.Status(r, code)
			render.JSON(w, r, ResponseTables{Status: strconv.Itoa(code), Error: msg})
			return
		}

		render.JSON(w, r, ResponseTables{
			ReportID: rep.ID,
			Period:   rep.Period.Format(constants.PeriodLayout),
			Project:  rep.Project,
			Variant:  string(rep.Variant),
			Tables:   rep.Sections(),
			Comments: rep.Comments,
			Status:   strconv.Itoa(http.StatusOK),
		})
	}
}
