package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	rscerrors "github.com/vango-dev/rsc/internal/errors"
	"github.com/vango-dev/rsc/pkg/protocol"
	"github.com/vango-dev/rsc/pkg/render"
)

// TreeQuery selects the encoded tree instead of an HTML document.
const TreeQuery = "jsx"

// serveRoute answers GET /<route> and GET /<route>?jsx.
func (s *Server) serveRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := classify(r)

	raw, err := s.route(ctx, r.URL)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	tree, err := s.resolver.Resolve(ctx, raw)
	s.metrics.ObserveResolve(kind, time.Since(start))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	encoded, err := protocol.Encode(tree)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.ObserveTree(len(encoded))

	if kind == KindTree {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(encoded)))
		w.WriteHeader(http.StatusOK)
		w.Write(encoded)
		return
	}

	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	if err := s.renderer.RenderDocument(&buf, render.Document{Tree: tree, Encoded: encoded}); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// serveMutation answers POST /<route>.
func (s *Server) serveMutation(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" || s.mutator == nil {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	var payload any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		s.fail(w, r, rscerrors.New(rscerrors.CodeInvalidPayload).Wrap(err))
		return
	}

	if err := s.mutator.Mutate(r.Context(), r.URL.Path, payload); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// fail writes the status for err with an empty body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := rscerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	w.WriteHeader(status)
}
