package server

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/EthanYidong/rehost/internal/server/middleware"
)

// setupRouter creates the HTTP handler with middleware applied.
func (s *Server) setupRouter() http.Handler {
	return s.applyMiddleware(http.HandlerFunc(s.handleFile))
}

// handleFile serves GET /<name> from the store. Every other method and
// every unknown name is a 404 with an empty body.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	name := strings.TrimPrefix(rawPath(r), "/")
	content, ok := s.store.Get(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if ct := contentType(name); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		s.logger.Debug().Err(err).Str("name", name).Msg("Failed to write response body")
	}
}

// rawPath returns the request path exactly as sent, without percent
// decoding or the query string.
func rawPath(r *http.Request) string {
	if strings.HasPrefix(r.RequestURI, "/") {
		p, _, _ := strings.Cut(r.RequestURI, "?")
		return p
	}
	return r.URL.EscapedPath()
}

// contentType maps the extension of name to a MIME type, or "" to let
// net/http sniff the body.
func contentType(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
