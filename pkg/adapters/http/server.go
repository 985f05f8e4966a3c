// Package http exposes record construction over HTTP.
//
// The handler serves one route family per registered schema:
//
//	POST /schemas/{name}/mapping
//	POST /schemas/{name}/tuple
//
// Bodies are either JSON ({"positional": [...], "named": {...}, "cast": true})
// or form-encoded, in which case every form field becomes a named value.
// Construction failures map to 422 with the full key enumeration; unknown
// schemas to 404.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/picket"
	"github.com/aretw0/picket/pkg/ports"
	"github.com/aretw0/picket/pkg/record"
	"github.com/aretw0/picket/pkg/registry"
)

// Server wires the schema registry to the HTTP surface.
type Server struct {
	registry *registry.Registry
	store    ports.RecordStore
	logger   *slog.Logger
	metrics  *metrics
}

// Option configures the handler.
type Option func(*Server)

// WithStore enables persistence of built mappings. Each successful mapping
// construction is saved under a fresh record ID returned to the client.
func WithStore(store ports.RecordStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for a schema registry.
func NewHandler(reg *registry.Registry, opts ...Option) http.Handler {
	server := &Server{
		registry: reg,
		logger:   slog.Default(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/health", server.getHealth)
	r.Get("/schemas", server.listSchemas)
	r.Get("/schemas/{name}", server.getSchema)
	r.Post("/schemas/{name}/mapping", server.buildRecord("mapping"))
	r.Post("/schemas/{name}/tuple", server.buildRecord("tuple"))
	r.Get("/records/{id}", server.getRecord)
	r.Get("/records", server.listRecords)
	r.Handle("/metrics", promhttp.HandlerFor(server.metrics.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BuildRequest is the JSON body for construction calls.
type BuildRequest struct {
	Positional []any          `json:"positional"`
	Named      map[string]any `json:"named"`
	Cast       bool           `json:"cast"`
}

// BuildResponse carries the constructed record. RecordID is set only when a
// store is configured and the shape is a mapping.
type BuildResponse struct {
	Schema   string          `json:"schema"`
	Shape    string          `json:"shape"`
	Record   json.RawMessage `json:"record"`
	RecordID string          `json:"record_id,omitempty"`
}

// errorResponse enumerates the failure in full, mirroring the core's
// report-everything error contract.
type errorResponse struct {
	Error       string   `json:"error"`
	InvalidKeys []string `json:"invalid_keys,omitempty"`
	MissingKeys []string `json:"missing_keys,omitempty"`
	CastField   string   `json:"cast_field,omitempty"`
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": strings.TrimSpace(picket.Version)})
}

func (s *Server) listSchemas(w http.ResponseWriter, _ *http.Request) {
	out := make(map[string][]string)
	for _, name := range s.registry.Names() {
		if d, ok := s.registry.Get(name); ok {
			out[name] = d.Schema.Fields()
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, ok := s.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown schema %q", name)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   d.Name,
		"sparse": d.Sparse,
		"fields": d.Schema.Fields(),
	})
}

func (s *Server) buildRecord(shape string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		d, ok := s.registry.Get(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown schema %q", name)})
			return
		}

		req, err := decodeBuildRequest(r)
		if err != nil {
			s.logger.Warn("invalid build request", "schema", name, "err", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		start := time.Now()
		data, rec, err := s.construct(d.Schema, d.Sparse, shape, req)
		elapsed := time.Since(start).Seconds()

		if err != nil {
			s.metrics.observe(name, shape, "error", elapsed)
			s.logger.Warn("construction failed", "schema", name, "shape", shape, "err", err)
			status, resp := mapError(err)
			writeJSON(w, status, resp)
			return
		}
		s.metrics.observe(name, shape, "ok", elapsed)

		resp := BuildResponse{Schema: name, Shape: shape, Record: data}
		if s.store != nil && rec != nil {
			id := uuid.NewString()
			if err := s.store.Save(r.Context(), id, rec); err != nil {
				s.logger.Error("record persistence failed", "schema", name, "record_id", id, "err", err)
			} else {
				resp.RecordID = id
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// construct runs the right builder variant and returns the serialized
// record, plus the mapping form for persistence when available.
func (s *Server) construct(sch *picket.Schema, sparse bool, shape string, req BuildRequest) (json.RawMessage, *record.Mapping, error) {
	if shape == "tuple" {
		var tp *record.Tuple
		var err error
		switch {
		case sparse && req.Cast:
			tp, err = sch.SparseTupleCast(req.Positional, req.Named)
		case sparse:
			tp, err = sch.SparseTuple(req.Positional, req.Named)
		case req.Cast:
			tp, err = sch.BuildTupleCast(req.Positional, req.Named)
		default:
			tp, err = sch.BuildTuple(req.Positional, req.Named)
		}
		if err != nil {
			return nil, nil, err
		}
		data, err := json.Marshal(tp)
		return data, tp.Mapping(), err
	}

	var m *record.Mapping
	var err error
	switch {
	case sparse && req.Cast:
		m, err = sch.SparseMappingCast(req.Positional, req.Named)
	case sparse:
		m, err = sch.SparseMapping(req.Positional, req.Named)
	case req.Cast:
		m, err = sch.BuildMappingCast(req.Positional, req.Named)
	default:
		m, err = sch.BuildMapping(req.Positional, req.Named)
	}
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(m)
	return data, m, err
}

// decodeBuildRequest accepts a JSON body or a form. Form fields become named
// values, so an HTML form posts straight into a schema.
func decodeBuildRequest(r *http.Request) (BuildRequest, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return BuildRequest{}, fmt.Errorf("parse form: %w", err)
		}
		req := BuildRequest{Named: make(map[string]any, len(r.PostForm))}
		for key, vals := range r.PostForm {
			if key == "_cast" {
				req.Cast = vals[0] == "true" || vals[0] == "1"
				continue
			}
			req.Named[key] = vals[0]
		}
		return req, nil
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BuildRequest{}, fmt.Errorf("decode body: %w", err)
	}
	return req, nil
}

// mapError turns core construction errors into status codes plus fully
// enumerated payloads.
func mapError(err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error()}

	var invalid *picket.InvalidKeyError
	if errors.As(err, &invalid) {
		resp.InvalidKeys = invalid.Keys
	}
	var missing *picket.MissingKeysError
	if errors.As(err, &missing) {
		resp.MissingKeys = missing.Keys
	}
	var cast *picket.CastError
	if errors.As(err, &cast) {
		resp.CastField = cast.Field
	}
	var tooMany *picket.TooManyPositionalValuesError
	if errors.As(err, &tooMany) || resp.InvalidKeys != nil || resp.MissingKeys != nil || resp.CastField != "" {
		return http.StatusUnprocessableEntity, resp
	}

	return http.StatusInternalServerError, resp
}

func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no record store configured"})
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown record %q", id)})
			return
		}
		s.logger.Error("record load failed", "record_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "record load failed"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("record list failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "record list failed"})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
