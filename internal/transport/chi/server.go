// Package chi implements the HTTP shell over the ranking engine.
package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/triply-cloud/poidex/internal/domain"
	"github.com/triply-cloud/poidex/internal/domain/category"
	"github.com/triply-cloud/poidex/internal/domain/search/request"
	"github.com/triply-cloud/poidex/internal/domain/search/sortmode"
	logpkg "github.com/triply-cloud/poidex/internal/logger"
	"github.com/triply-cloud/poidex/internal/metrics"
	healthuc "github.com/triply-cloud/poidex/internal/usecase/health"
	placeuc "github.com/triply-cloud/poidex/internal/usecase/place"
	searchuc "github.com/triply-cloud/poidex/internal/usecase/search"
	"github.com/triply-cloud/poidex/internal/version"
)

// Engine metadata headers attached to every search and place response.
const (
	headerEngineVersion  = "X-Poidex-Engine-Version"
	headerProcessingTime = "X-Poidex-Processing-Time"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server wires the engine services into chi handlers.
type Server struct {
	search        *searchuc.Service
	place         *placeuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	place *placeuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		place:  place,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidArgument, http.StatusBadRequest, statusInvalidRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, statusNotFound),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusServiceUnavailable, statusError),
		sentinelHandler(domain.ErrEncoderUnavailable, http.StatusBadGateway, statusError),
	}
	return s
}

// Routes registers all endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Get("/place", s.handlePlace)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleSearch handles GET /search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := searchRequestFromParams(r)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("invalid").Inc()
		s.handleDomainError(w, r, err)
		return
	}

	results, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEngineHeaders(w, start)
	writeJSON(w, http.StatusOK, searchResponse{
		Status: statusOK,
		Points: resultsToJSON(results),
	})
}

// handlePlace handles GET /place.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, statusInvalidRequest, "Missing required parameter: id")
		return
	}

	poi, err := s.place.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setEngineHeaders(w, start)
	writeJSON(w, http.StatusOK, placeResponse{
		Status: statusOK,
		Point:  poiToJSON(poi),
	})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// searchRequestFromParams parses and validates /search query parameters.
func searchRequestFromParams(r *http.Request) (*request.Request, error) {
	q := r.URL.Query()

	latStr, lonStr, radiusStr := q.Get("lat"), q.Get("lon"), q.Get("radius")
	if latStr == "" || lonStr == "" || radiusStr == "" {
		return nil, fmt.Errorf("%w: missing required parameters: lat, lon, radius",
			domain.ErrInvalidArgument)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed lat %q", domain.ErrInvalidArgument, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed lon %q", domain.ErrInvalidArgument, lonStr)
	}
	radius, err := strconv.ParseFloat(radiusStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed radius %q", domain.ErrInvalidArgument, radiusStr)
	}

	offset := 0
	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed offset %q", domain.ErrInvalidArgument, v)
		}
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed limit %q", domain.ErrInvalidArgument, v)
		}
		if limit < 1 {
			return nil, fmt.Errorf("%w: limit must be at least 1, got %d", domain.ErrInvalidArgument, limit)
		}
	}

	req, err := request.New(
		lat, lon, radius,
		category.ParseList(q.Get("categories"), ","),
		q.Get("q"),
		sortmode.Mode(q.Get("sort_by")),
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// handleDomainError walks the handler chain; unmatched errors become 500.
// Handled errors are logged through the request-scoped logger so the
// request id rides along.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			logpkg.FromContext(r.Context()).Warn("request rejected", zap.Error(err))
			return
		}
	}

	s.logger.Error("unhandled engine error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, statusError, "internal error")
}

// sentinelHandler builds an errorHandler matching a sentinel error.
func sentinelHandler(sentinel error, httpStatus int, status string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, httpStatus, status, err.Error())
		return true
	}
}

func setEngineHeaders(w http.ResponseWriter, start time.Time) {
	w.Header().Set(headerEngineVersion, version.Version)
	w.Header().Set(headerProcessingTime,
		strconv.FormatFloat(time.Since(start).Seconds(), 'f', 6, 64))
}
