package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ficha/internal/service/report"
	"ficha/internal/storage"
)

func multipartRequest(t *testing.T, fields map[string]string, fileName string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile(FieldFile, fileName)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/report", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		FieldPeriod:  "2024-06-01",
		FieldProject: "TICINO",
		FieldVariant: "ficha",
	}
}

func TestParse_Success(t *testing.T) {
	req := multipartRequest(t, validFields(), "Ficha.xlsx", []byte("PK-data"))

	form, err := Parse(httptest.NewRecorder(), req, 1<<20)
	require.NoError(t, err)

	assert.Equal(t, "Ficha.xlsx", form.FileName)
	assert.Equal(t, []byte("PK-data"), form.Data)
	assert.Equal(t, "TICINO", form.Request.Project)
	assert.Equal(t, report.VariantSheet, form.Request.Variant)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), form.Request.Period)
}

func TestParse_MacroWorkbookAccepted(t *testing.T) {
	req := multipartRequest(t, validFields(), "FICHA.XLSM", []byte("PK"))

	_, err := Parse(httptest.NewRecorder(), req, 1<<20)
	assert.NoError(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		fileName string
		maxBytes int64
	}{
		{name: "missing file", fields: validFields(), maxBytes: 1 << 20},
		{name: "wrong extension", fields: validFields(), fileName: "ficha.csv", maxBytes: 1 << 20},
		{
			name:     "unknown project",
			fields:   map[string]string{FieldPeriod: "2024-06-01", FieldProject: "OTRO"},
			fileName: "ficha.xlsx",
			maxBytes: 1 << 20,
		},
		{
			name:     "period out of range",
			fields:   map[string]string{FieldPeriod: "2022-01-01", FieldProject: "TICINO"},
			fileName: "ficha.xlsx",
			maxBytes: 1 << 20,
		},
		{
			name:     "unknown variant",
			fields:   map[string]string{FieldPeriod: "2024-06-01", FieldProject: "TICINO", FieldVariant: "pdf"},
			fileName: "ficha.xlsx",
			maxBytes: 1 << 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, tt.fields, tt.fileName, bytes.Repeat([]byte("x"), 64))

			_, err := Parse(httptest.NewRecorder(), req, tt.maxBytes)
			assert.ErrorIs(t, err, report.ErrInvalidRequest)
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	req := multipartRequest(t, validFields(), "ficha.xlsx", bytes.Repeat([]byte("x"), 4096))

	_, err := Parse(httptest.NewRecorder(), req, 1024)
	assert.ErrorIs(t, err, report.ErrInvalidRequest)
	assert.ErrorIs(t, err, ErrTooLarge)

	code, _ := Status(err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
}

func TestParse_MalformedIsNotTooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/report", bytes.NewBufferString("not multipart"))

	_, err := Parse(httptest.NewRecorder(), req, 1024)
	assert.ErrorIs(t, err, report.ErrInvalidRequest)
	assert.NotErrorIs(t, err, ErrTooLarge)

	code, _ := Status(err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatus(t *testing.T) {
	code, _ := Status(report.ErrInvalidRequest)
	assert.Equal(t, http.StatusBadRequest, code)

	code, msg := Status(fmt.Errorf("op: %w", storage.ErrLoad))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, msg, storage.ErrLoad.Error())

	code, _ = Status(fmt.Errorf("op: %w", report.ErrNoData))
	assert.Equal(t, http.StatusNotFound, code)

	code, msg = Status(context.DeadlineExceeded)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", msg)
}
