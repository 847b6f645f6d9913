package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maisonnoire/searchd/internal/domain"
	healthuc "github.com/maisonnoire/searchd/internal/usecase/health"
	searchuc "github.com/maisonnoire/searchd/internal/usecase/search"
)

// Error codes returned in the response envelope.
const (
	codeBadRequest         = "bad_request"
	codeInvalidQuery       = "invalid_query"
	codeUnauthorized       = "unauthorized"
	codeCatalogUnavailable = "catalog_unavailable"
	codeInternalError      = "internal_error"
)

// envelope is the uniform response shape. Clients use request_id to
// pair a response with the request that produced it and drop responses
// for queries they are no longer showing.
type envelope struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *apiError `json:"error,omitempty"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchData is the payload of a successful search response.
type searchData struct {
	Results []domain.Product `json:"results"`
	Total   int              `json:"total"`
	Query   string           `json:"query"`
}

// Server exposes the search API over HTTP.
type Server struct {
	search *searchuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{search: search, health: health, logger: logger}
}

// Router is the minimal chi surface the server mounts routes on.
type Router interface {
	Get(pattern string, h http.HandlerFunc)
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r Router) {
	r.Get("/api/v1/search", s.SearchProducts)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchProducts handles GET /api/v1/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), query, opts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if results == nil {
		results = []domain.Product{}
	}

	// Results depend on a catalog snapshot that may refresh between
	// requests, so intermediaries must not cache them.
	w.Header().Set("Cache-Control", "no-store, must-revalidate")
	writeJSON(w, r, http.StatusOK, searchData{
		Results: results,
		Total:   len(results),
		Query:   query,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func optionsFromQuery(r *http.Request) (searchuc.Options, error) {
	var opts searchuc.Options

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return searchuc.Options{}, errors.New("limit must be a positive integer")
		}
		opts.MaxResults = limit
	}

	if raw := r.URL.Query().Get("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 {
			return searchuc.Options{}, errors.New("min_score must be a non-negative integer")
		}
		opts.MinScore = minScore
	}

	return opts, nil
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, r, http.StatusBadRequest, codeInvalidQuery, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		s.logger.Warn("catalog unavailable", zap.Error(err))
		writeError(w, r, http.StatusServiceUnavailable, codeCatalogUnavailable, "product catalog is unavailable")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// requestID prefers the client-supplied X-Request-ID so callers can
// correlate responses with in-flight requests, then the id minted by
// the chi middleware, then a fresh UUID.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := chiMiddleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success:   status < http.StatusBadRequest,
		Data:      data,
		RequestID: requestID(r),
		Timestamp: time.Now().UTC(),
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success:   false,
		Error:     &apiError{Code: code, Message: message},
		RequestID: requestID(r),
		Timestamp: time.Now().UTC(),
	})
}
