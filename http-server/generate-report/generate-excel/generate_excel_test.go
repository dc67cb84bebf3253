package generate_excel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ficha/http-server/upload"
	"ficha/internal/service/report"
	"ficha/internal/storage"
)

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) Generate(ctx context.Context, file io.Reader, req report.Request) (*report.Report, error) {
	args := m.Called(ctx, file, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Report), args.Error(1)
}

type MockExcel struct {
	mock.Mock
}

func (m *MockExcel) GenerateExcel(ctx context.Context, rep *report.Report) ([]byte, error) {
	args := m.Called(ctx, rep)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func submission(t *testing.T, variant string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField(upload.FieldPeriod, "2024-06-01"))
	require.NoError(t, mw.WriteField(upload.FieldProject, "TICINO"))
	require.NoError(t, mw.WriteField(upload.FieldVariant, variant))
	fw, err := mw.CreateFormFile(upload.FieldFile, "ficha.xlsx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("PK"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/report/excel", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockReportGenerator)
	xlsx := new(MockExcel)

	rep := &report.Report{ID: "rep-1", Project: "TICINO", Variant: report.VariantSheet}
	gen.On("Generate", mock.Anything, mock.Anything, mock.MatchedBy(func(req report.Request) bool {
		return req.Project == "TICINO" && req.Variant == report.VariantSheet
	})).Return(rep, nil)
	xlsx.On("GenerateExcel", mock.Anything, rep).Return([]byte("xlsx-bytes"), nil)

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.Default(), gen, xlsx, 1<<20, time.Second)(rr, submission(t, "ficha"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Ficha_Departamentos.xlsx", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", rr.Body.String())

	gen.AssertExpectations(t)
	xlsx.AssertExpectations(t)
}

func TestGenerateReportExcel_Errors(t *testing.T) {
	tests := []struct {
		name   string
		genErr error
		xlsErr error
		code   int
	}{
		{name: "load", genErr: fmt.Errorf("%w: bad zip", storage.ErrLoad), code: http.StatusUnprocessableEntity},
		{name: "no data", genErr: fmt.Errorf("op: %w", report.ErrNoData), code: http.StatusNotFound},
		{name: "timeout", genErr: context.DeadlineExceeded, code: http.StatusInternalServerError},
		{name: "excel", xlsErr: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockReportGenerator)
			xlsx := new(MockExcel)

			rep := &report.Report{ID: "rep-1", Variant: report.VariantTables}
			if tt.genErr != nil {
				gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.genErr)
			} else {
				gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(rep, nil)
				xlsx.On("GenerateExcel", mock.Anything, rep).Return(nil, tt.xlsErr)
			}

			rr := httptest.NewRecorder()
			GenerateReportExcel(slog.Default(), gen, xlsx, 1<<20, time.Second)(rr, submission(t, "tablas"))

			assert.Equal(t, tt.code, rr.Code)
			assert.Empty(t, rr.Header().Get("Content-Disposition"))
		})
	}
}

func TestGenerateReportExcel_InvalidSubmission(t *testing.T) {
	gen := new(MockReportGenerator)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/report/excel", nil)
	GenerateReportExcel(slog.Default(), gen, new(MockExcel), 1<<20, time.Second)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}
