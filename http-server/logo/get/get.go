package get

import (
	"log/slog"
	"net/http"
	"os"
)

// GetLogo serves the configured logo file for the page header.
func GetLogo(log *slog.Logger, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.logo.GetLogo"

		if path == "" {
			http.NotFound(w, r)
			return
		}

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			log.With(slog.String("op", op)).Warn("logo not available", slog.String("path", path))
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, path)
	}
}
