package assets

import (
	"encoding/json"
	"net/http"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/nobonobo/jeep-diorama/schema"
)

// ManifestPath is where the viewer fetches its manifest.
const ManifestPath = "/" + schema.ManifestFile

// NewHandler serves the manifest and the files under root. Every request is
// logged.
func NewHandler(root string, manifest schema.Manifest, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+ManifestPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		if err := json.NewEncoder(w).Encode(manifest); err != nil {
			logger.Error("Failed to write manifest", zap.Error(err))
		}
	})
	files := http.FileServer(http.Dir(root))
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		w.Header().Set("Cache-Control", "no-cache")
		files.ServeHTTP(w, r)
	})
	return logRequests(mux, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	n, err := r.ResponseWriter.Write(data)
	r.size += n
	return n, err
}

func logRequests(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("size", rec.size),
			zap.Duration("elapsed", time.Since(start)),
		}
		if rec.status >= http.StatusBadRequest {
			logger.Warn("Request failed", fields...)
		} else {
			logger.Debug("Request", fields...)
		}
	})
}
