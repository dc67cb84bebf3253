package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ficha/internal/constants"
	"ficha/internal/service/pivot"
	"ficha/internal/storage"
)

type WorkbookLoader interface {
	Load(r io.Reader, withComments bool) (*storage.Workbook, error)
}

type Service struct {
	loader WorkbookLoader
	log    *slog.Logger
}

func NewService(loader WorkbookLoader, log *slog.Logger) *Service {
	return &Service{loader: loader, log: log}
}

// Generate runs load -> filter -> build for one uploaded workbook. A load
// failure aborts the request; a group without records is left out.
func (s *Service) Generate(ctx context.Context, file io.Reader, req Request) (*Report, error) {
	const op = "service.report.Generate"

	id := uuid.NewString()
	log := s.log.With(
		slog.String("op", op),
		slog.String("report_id", id),
		slog.String("project", req.Project),
		slog.String("period", req.Period.Format(constants.PeriodLayout)),
	)

	wb, err := s.loader.Load(file, req.Variant.WithComments())
	if err != nil {
		log.Warn("failed to load workbook", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := storage.FilterRecords(wb.Records, req.Period, req.Project)
	if len(records) == 0 {
		log.Info("no records for selection", slog.Int("loaded", len(wb.Records)))
		return nil, fmt.Errorf("%s: %w", op, ErrNoData)
	}

	rep := &Report{
		ID:      id,
		Period:  req.Period,
		Project: req.Project,
		Variant: req.Variant,
	}

	groups := make([]*Section, len(constants.Groups))
	var units *Section

	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range constants.Groups {
		i, name := i, name
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if table, ok := pivot.BuildGroupTable(records, name); ok {
				groups[i] = &Section{Key: name, Table: table}
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := gCtx.Err(); err != nil {
			return err
		}
		if table, project, ok := pivot.BuildUnitTable(records, req.Project); ok {
			units = &Section{Key: project, Table: table}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, sec := range groups {
		if sec != nil {
			rep.Groups = append(rep.Groups, *sec)
		}
	}
	rep.Units = units

	if req.Variant.WithComments() {
		rep.Comments = make(map[string][]string)
		for _, c := range storage.FilterComments(wb.Comments, req.Period, req.Project) {
			rep.Comments[c.Category] = append(rep.Comments[c.Category], c.Text)
		}
	}

	log.Info("report built",
		slog.Int("records", len(records)),
		slog.Int("tables", len(rep.Sections())),
		slog.String("variant", string(req.Variant)),
	)

	return rep, nil
}
