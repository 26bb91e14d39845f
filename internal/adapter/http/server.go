package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/crime-report-service/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxHelloTimes caps the greeting count of /say_hello.
const maxHelloTimes = 1000

// CrimeChecker builds a crime report for a query point.
type CrimeChecker interface {
	CheckCrime(ctx context.Context, q domain.Query) (domain.CrimeReport, error)
}

// Server exposes the crime report API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /checkcrime, /say_hello, /healthz,
// /readyz, and /metrics routes.
func NewServer(addr string, checker CrimeChecker, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /checkcrime", s.handleCheckCrime(checker))
	mux.HandleFunc("GET /say_hello", handleSayHello)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleCheckCrime(checker CrimeChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		report, err := checker.CheckCrime(r.Context(), q)
		switch {
		case errors.Is(err, domain.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, err)
		case err != nil:
			s.logger.Error("check crime failed", "query", q.Key(), "error", err)
			writeError(w, http.StatusBadGateway, err)
		default:
			writeJSON(w, http.StatusOK, report)
		}
	}
}

// parseQuery reads the lat, lon, and radius query parameters.
func parseQuery(r *http.Request) (domain.Query, error) {
	var q domain.Query
	fields := []struct {
		name string
		dst  *float64
	}{
		{name: "lat", dst: &q.Lat},
		{name: "lon", dst: &q.Lon},
		{name: "radius", dst: &q.Radius},
	}
	for _, f := range fields {
		v := r.URL.Query().Get(f.name)
		if v == "" {
			return domain.Query{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidQuery, f.name)
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.Query{}, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidQuery, f.name, v)
		}
		*f.dst = n
	}
	return q, q.Validate()
}

// handleSayHello greets name the requested number of times; times defaults to 1.
func handleSayHello(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	times := 1
	if v := r.URL.Query().Get("times"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxHelloTimes {
			writeError(w, http.StatusBadRequest, fmt.Errorf("times must be an integer between 0 and %d", maxHelloTimes))
			return
		}
		times = n
	}

	greetings := make([]string, times)
	for i := range greetings {
		greetings[i] = "Hello, " + name
	}
	writeJSON(w, http.StatusOK, greetings)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
