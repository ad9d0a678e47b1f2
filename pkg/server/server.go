// Package server exposes form declarations and a validation endpoint over
// HTTP. Every request builds its own form.State, so handlers share nothing
// but the read-only declaration store.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/metrics"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// ErrNilStore is returned by New when no declaration store is supplied.
var ErrNilStore = goerr.New("form store is required")

// Server serves the declarations of one config.Store.
type Server struct {
	router    *chi.Mux
	store     *config.Store
	validator *validation.Validator
	logger    zerolog.Logger
	collector *metrics.Collector
	gatherer  prometheus.Gatherer
	sanitize  bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and handler logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithValidator overrides the validator shared by request states.
func WithValidator(v *validation.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithMetrics attaches a collector to every request state and mounts
// /metrics backed by gatherer. A nil gatherer skips the endpoint.
func WithMetrics(collector *metrics.Collector, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.collector = collector
		s.gatherer = gatherer
	}
}

// WithSanitizedValues strips markup from free-text values before they are
// validated and echoed back by the validate endpoint.
func WithSanitizedValues(enabled bool) Option {
	return func(s *Server) {
		s.sanitize = enabled
	}
}

// New builds the router for store. It fails when store is nil.
func New(store *config.Store, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	r := chi.NewRouter()
	s := &Server{
		router:    r,
		store:     store,
		validator: validation.New(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler)
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", s.listForms)
		r.Get("/{formID}", s.getForm)
		r.Post("/{formID}/validate", s.validateForm)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) stateOptions() []form.Option {
	options := []form.Option{
		form.WithValidator(s.validator),
		form.WithLogger(s.logger),
		form.WithValidateOnChange(false),
	}
	if s.collector != nil {
		options = append(options, form.WithObserver(s.collector))
	}
	if s.sanitize {
		options = append(options, form.WithStrictSanitizer())
	}
	return options
}

// accessLogger logs one line per request.
func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("access")
		}()

		next.ServeHTTP(ww, r)
	})
}
