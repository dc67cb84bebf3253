package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := BasicAuth("ventas", "s3cret")(ok)

	tests := []struct {
		name       string
		user, pass string
		setAuth    bool
		rawHeader  string
		code       int
	}{
		{name: "valid", user: "ventas", pass: "s3cret", setAuth: true, code: http.StatusNoContent},
		{name: "wrong password", user: "ventas", pass: "nope", setAuth: true, code: http.StatusUnauthorized},
		{name: "wrong user", user: "admin", pass: "s3cret", setAuth: true, code: http.StatusUnauthorized},
		{name: "no header", code: http.StatusUnauthorized},
		{name: "bearer", rawHeader: "Bearer token", code: http.StatusUnauthorized},
		{name: "bad base64", rawHeader: "Basic ***", code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			if tt.rawHeader != "" {
				req.Header.Set("Authorization", tt.rawHeader)
			}

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			if tt.code == http.StatusUnauthorized {
				assert.Contains(t, rr.Header().Get("WWW-Authenticate"), `realm="Ficha Financiamiento"`)
			}
		})
	}
}
