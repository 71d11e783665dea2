// Package server exposes the extraction pipeline over HTTP: a health check
// and a multipart upload endpoint returning the metadata record as JSON.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SyreCollins/img-metadata/core"
	"github.com/SyreCollins/img-metadata/core/codec"
	"github.com/SyreCollins/img-metadata/core/extract"
)

// DefaultMaxUpload caps the multipart form memory at 10 MiB.
const DefaultMaxUpload = 10 << 20

// Options configures the HTTP surface.
type Options struct {
	// MaxUpload bounds the multipart form size in bytes; 0 means the default.
	MaxUpload int64
	// TopK is passed through to the assembler.
	TopK int
}

// Handler returns the routed HTTP handler with request logging attached.
func Handler(opts Options) http.Handler {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = DefaultMaxUpload
	}
	s := &server{opts: opts}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/extract", s.handleExtract)
	return logRequests(mux)
}

type server struct {
	opts Options
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExtract accepts one uploaded file under the "file" form field.
// The extension gate runs before any decoding; undecodable pixel data is
// the only per-file failure that reaches the client as an error.
func (s *server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := r.ParseMultipartForm(s.opts.MaxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	rec, err := extract.ExtractReader(file, header.Filename, extract.Options{TopK: s.opts.TopK})
	switch {
	case errors.Is(err, core.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "unsupported file type")
		return
	case errors.Is(err, codec.ErrUndecodable):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusWriter records the status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
