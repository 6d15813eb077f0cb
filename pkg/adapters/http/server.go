package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/deriv"
	"github.com/aretw0/deriv/api"
	"github.com/aretw0/deriv/pkg/domain"
	"github.com/aretw0/deriv/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	oapi "github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodySize bounds request bodies before schema validation.
const maxBodySize = 64 << 10

// Engine defines the interface for the deriv core.
type Engine interface {
	Parse(ctx context.Context, text string) (domain.Polynomial, error)
	Derive(ctx context.Context, text string) (*domain.Derivation, error)
}

// Server serves the JSON API described by api/openapi.yaml.
type Server struct {
	Engine   Engine
	Doc      *openapi3.T
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// ExpressionRequest is the body of POST /differentiate and POST /parse.
type ExpressionRequest struct {
	Expression string `json:"expression"`
	Format     string `json:"format,omitempty"`
}

// DerivationResponse is a derivation plus its rendering in the requested format.
type DerivationResponse struct {
	*domain.Derivation
	Format string `json:"format"`
	Result string `json:"result"`
}

// ParseResponse is the body returned by POST /parse.
type ParseResponse struct {
	Expression string            `json:"expression"`
	Key        string            `json:"key"`
	Terms      domain.Polynomial `json:"terms"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	State  string `json:"state,omitempty"`
	Char   string `json:"char,omitempty"`
	Field  string `json:"field,omitempty"`
	Text   string `json:"text,omitempty"`
	Column int    `json:"column,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Engine: engine,
		Doc:    doc,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec())
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/differentiate", s.Differentiate)
	r.Get("/differentiate", s.DifferentiateQuery)
	r.Post("/parse", s.Parse)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Differentiate handles the POST /differentiate request.
func (s *Server) Differentiate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, "/differentiate")
	if !ok {
		return
	}
	s.derive(w, r, req.Expression, req.Format)
}

// DifferentiateQuery handles the GET /differentiate request.
func (s *Server) DifferentiateQuery(w http.ResponseWriter, r *http.Request) {
	var expression string
	if err := oapi.BindQueryParameter("form", true, true, "expression", r.URL.Query(), &expression); err != nil {
		s.badRequest(w, "DifferentiateQuery", err)
		return
	}

	var format *string
	if err := oapi.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		s.badRequest(w, "DifferentiateQuery", err)
		return
	}

	f := ""
	if format != nil {
		f = *format
		if f != string(runner.FormatText) && f != string(runner.FormatLaTeX) {
			s.badRequest(w, "DifferentiateQuery", fmt.Errorf("unsupported format %q", f))
			return
		}
	}

	clean, err := runner.SanitizeInput(expression)
	if err != nil {
		s.badRequest(w, "DifferentiateQuery", err)
		return
	}
	s.derive(w, r, clean, f)
}

// Parse handles the POST /parse request.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r, "/parse")
	if !ok {
		return
	}

	poly, err := s.Engine.Parse(r.Context(), req.Expression)
	if err != nil {
		s.fail(w, "Parse", err)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Expression: req.Expression,
		Key:        deriv.Render(poly),
		Terms:      poly,
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.Doc != nil && s.Doc.Info != nil {
		apiVersion = s.Doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "deriv-http",
		"version":     strings.TrimSpace(deriv.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) derive(w http.ResponseWriter, r *http.Request, expression, format string) {
	d, err := s.Engine.Derive(r.Context(), expression)
	if err != nil {
		s.fail(w, "Differentiate", err)
		return
	}

	resp := DerivationResponse{Derivation: d, Format: string(runner.FormatText), Result: d.Text}
	if format == string(runner.FormatLaTeX) {
		resp.Format = format
		resp.Result = deriv.RenderLaTeX(d.Derivative)
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeRequest reads the body, validates it against the operation schema
// and decodes it. It writes the error response itself when it returns false.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, path string) (ExpressionRequest, bool) {
	var req ExpressionRequest

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.badRequest(w, path, fmt.Errorf("failed to read body: %w", err))
		return req, false
	}

	if err := s.validateBody(path, raw); err != nil {
		s.badRequest(w, path, err)
		return req, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&req); err != nil {
		s.badRequest(w, path, fmt.Errorf("invalid request body: %w", err))
		return req, false
	}

	clean, err := runner.SanitizeInput(req.Expression)
	if err != nil {
		s.badRequest(w, path, err)
		return req, false
	}
	req.Expression = clean
	return req, true
}

func (s *Server) validateBody(path string, raw []byte) error {
	item := s.Doc.Paths.Value(path)
	if item == nil || item.Post == nil || item.Post.RequestBody == nil {
		return nil
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := media.Schema.Value.VisitJSON(value); err != nil {
		return fmt.Errorf("request does not match schema: %w", err)
	}
	return nil
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.Logger.Warn(op+": request rejected", "err", err)
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "invalid_request"})
}

// fail maps engine errors to responses: syntax errors are the caller's fault,
// an out-of-range derivative is a well-formed request that cannot be answered.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSyntax):
		s.Logger.Debug(op+": syntax error", "err", err)
		writeJSON(w, http.StatusBadRequest, syntaxError(err))
	case errors.Is(err, domain.ErrOverflow):
		s.Logger.Debug(op+": derivative out of range", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: domain.ErrorKind(err)})
	default:
		s.Logger.Error(op+" failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func syntaxError(err error) ErrorResponse {
	resp := ErrorResponse{
		Error:  err.Error(),
		Kind:   domain.ErrorKind(err),
		Column: domain.ErrorColumn(err),
	}

	var ic *domain.InvalidCharacterError
	if errors.As(err, &ic) {
		resp.State = ic.State.String()
		if ic.Char != domain.EndOfInput {
			resp.Char = string(ic.Char)
		}
	}
	var mn *domain.MalformedNumberError
	if errors.As(err, &mn) {
		resp.Field = string(mn.Field)
		resp.Text = mn.Text
	}
	return resp
}

// writeJSON encodes v fully before writing the status line.
// An encoding failure becomes a 500 with a fixed body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
