package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Service is the validation surface exposed over HTTP.
type Service interface {
	Collections(ctx context.Context) ([]string, error)
	ValidateMedia(ctx context.Context, check domain.MediaCheck) error
	ValidateFields(ctx context.Context, check domain.FieldCheck) error
	GetFields(ctx context.Context, q domain.FieldQuery) ([]domain.FieldValue, error)
}

// Server serves the conform JSON API.
type Server struct {
	Service Service
	Streams *StreamManager

	logger  *slog.Logger
	limiter *rate.Limiter
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit bounds request throughput. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewServer creates a server for svc.
func NewServer(svc Service, opts ...Option) *Server {
	s := &Server{Service: svc}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.Streams = NewStreamManager(s.logger)
	return s
}

// NewHandler creates a new HTTP handler for svc.
func NewHandler(svc Service, opts ...Option) http.Handler {
	return NewServer(svc, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(enableCORS)
	r.Use(s.rateLimit)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/collections", s.ListCollections)
	r.Route("/collections/{name}", func(r chi.Router) {
		r.Post("/validate/media", s.ValidateMedia)
		r.Post("/validate/fields", s.ValidateFields)
		r.Post("/samples/{id}/fields", s.GetSampleFields)
	})
	return r
}

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			s.writeProblem(w, r, http.StatusTooManyRequests, Problem{Kind: "rate_limited", Message: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "conform-http",
		"version":     conform.Version,
		"api_version": apiVersion,
	})
}

// ListCollections handles the GET /collections request.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	names, err := s.Service.Collections(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, CollectionList{Collections: names})
}

// ValidateMedia handles the POST /collections/{name}/validate/media request.
func (s *Server) ValidateMedia(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	var body MediaRequest
	if !s.decode(w, r, &body) {
		return
	}

	check := domain.MediaCheck{Collection: name, SampleID: body.SampleID}
	if body.MediaType != "" {
		media, err := domain.ParseMediaType(body.MediaType)
		if err != nil {
			s.badRequest(w, r, err.Error())
			return
		}
		check.MediaType = media
	}
	if check.SampleID != "" && check.MediaType == "" {
		s.badRequest(w, r, "media_type is required when sample_id is set")
		return
	}

	if err := s.Service.ValidateMedia(r.Context(), check); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Valid{Valid: true})
}

// ValidateFields handles the POST /collections/{name}/validate/fields request.
func (s *Server) ValidateFields(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	var body FieldsRequest
	if !s.decode(w, r, &body) {
		return
	}
	if len(body.Fields) == 0 || len(body.Allowed) == 0 {
		s.badRequest(w, r, "fields and allowed must not be empty")
		return
	}

	err = s.Service.ValidateFields(r.Context(), domain.FieldCheck{
		Collection: name,
		Fields:     body.Fields,
		Allowed:    body.Allowed,
		SameType:   body.SameType,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Valid{Valid: true})
}

// GetSampleFields handles the POST /collections/{name}/samples/{id}/fields request.
func (s *Server) GetSampleFields(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "name")
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}
	id, err := pathParam(r, "id")
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	var body ValuesRequest
	if !s.decode(w, r, &body) {
		return
	}
	if len(body.Fields) == 0 {
		s.badRequest(w, r, "fields must not be empty")
		return
	}

	values, err := s.Service.GetFields(r.Context(), domain.FieldQuery{
		Collection:   name,
		SampleID:     id,
		Fields:       body.Fields,
		Allowed:      body.Allowed,
		SameType:     body.SameType,
		DisallowNone: body.DisallowNone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValuesResponse{Values: values})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		s.badRequest(w, r, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	s.writeProblem(w, r, http.StatusBadRequest, Problem{Kind: "bad_request", Message: msg})
}

// writeError maps validation errors to 422, missing resources to 404 and
// everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeProblem(w, r, http.StatusUnprocessableEntity, Problem{
			Kind:    verr.KindName(),
			Message: verr.Message,
			Fields:  verr.Fields,
		})
	case errors.Is(err, domain.ErrCollectionNotFound), errors.Is(err, domain.ErrSampleNotFound):
		s.writeProblem(w, r, http.StatusNotFound, Problem{Kind: "not_found", Message: err.Error()})
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "err", err)
		s.writeProblem(w, r, http.StatusInternalServerError, Problem{Kind: "internal", Message: err.Error()})
	}
}

func (s *Server) writeProblem(w http.ResponseWriter, r *http.Request, status int, p Problem) {
	p.RequestID = requestIDFrom(r.Context())
	s.writeJSON(w, status, p)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
