package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"ficha/internal/service/report"
)

const (
	FieldFile    = "file"
	FieldPeriod  = "period"
	FieldProject = "project"
	FieldVariant = "variant"
)

var allowedExt = map[string]bool{".xlsx": true, ".xlsm": true}

// ErrTooLarge marks a submission over the configured upload limit. It is
// always reported together with report.ErrInvalidRequest.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Form is a parsed report submission: the selector values and the workbook bytes.
type Form struct {
	Request  report.Request
	FileName string
	Data     []byte
}

// Parse reads a multipart report submission. Every error wraps
// report.ErrInvalidRequest.
func Parse(w http.ResponseWriter, r *http.Request, maxBytes int64) (Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Form{}, fmt.Errorf("%w: %w: limit is %d bytes", report.ErrInvalidRequest, ErrTooLarge, tooLarge.Limit)
		}
		return Form{}, fmt.Errorf("%w: %v", report.ErrInvalidRequest, err)
	}

	req, err := report.NewRequest(
		r.FormValue(FieldPeriod),
		r.FormValue(FieldProject),
		r.FormValue(FieldVariant),
	)
	if err != nil {
		return Form{}, err
	}

	file, header, err := r.FormFile(FieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return Form{}, fmt.Errorf("%w: no file uploaded", report.ErrInvalidRequest)
		}
		return Form{}, fmt.Errorf("%w: %v", report.ErrInvalidRequest, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		return Form{}, fmt.Errorf("%w: unsupported file type %q", report.ErrInvalidRequest, ext)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return Form{}, fmt.Errorf("%w: %v", report.ErrInvalidRequest, err)
	}

	return Form{Request: req, FileName: header.Filename, Data: data}, nil
}
