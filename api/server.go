package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog/log"
)

// Dependencies are the collaborators the HTTP layer is built on.
type Dependencies struct {
	Database    database.Database
	Sessions    *auth.Sessions
	Credentials auth.Credentials
	Contact     *services.ContactService
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, deps Dependencies) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, err := newRouter(deps,
		withConfig(cfg),
		withStartupTime(startupTime),
		withRegistry(prometheus.NewRegistry()),
	)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,  // Timeout for reading the entire request
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second, // Timeout for writing the response
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSeconds) * time.Second,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

// routerSettings are the config values the router reads.
type routerSettings struct {
	acceptedOrigins      []string
	maxBodyBytes         int64
	requireAuthForWrites bool
	secureCookies        bool
	adminStaticDir       string
	startupTime          time.Time
	registry             *prometheus.Registry
}

func withConfig(c *config.Config) func(*routerSettings) {
	return func(r *routerSettings) {
		r.acceptedOrigins = c.AcceptedOrigins
		r.maxBodyBytes = c.MaxBodyBytes
		r.requireAuthForWrites = c.Admin.RequireAuthForWrites
		r.secureCookies = c.Admin.SecureCookies
		r.adminStaticDir = c.AdminStaticDir
	}
}

func withStartupTime(startupTime time.Time) func(*routerSettings) {
	return func(r *routerSettings) {
		r.startupTime = startupTime
	}
}

func withRegistry(reg *prometheus.Registry) func(*routerSettings) {
	return func(r *routerSettings) {
		r.registry = reg
	}
}

func newRouter(deps Dependencies, opts ...func(*routerSettings)) (*chi.Mux, error) {
	settings := routerSettings{
		maxBodyBytes:         10 << 20,
		requireAuthForWrites: true,
		startupTime:          time.Now(),
	}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.registry == nil {
		settings.registry = prometheus.NewRegistry()
	}

	handlers, err := initializeHandlers(deps, settings)
	if err != nil {
		return nil, err
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(newHTTPMetrics(settings.registry).middleware)
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	chiRouter.Use(CORSCheckMiddleware(settings.acceptedOrigins))
	chiRouter.Use(corsMiddleware(settings.acceptedOrigins))
	chiRouter.Use(limitBody(settings.maxBodyBytes))

	session := newSessionMiddleware(deps.Sessions)

	setupPublicRoutes(chiRouter, handlers, settings.registry)
	setupSectionRoutes(chiRouter, handlers, session, settings.requireAuthForWrites)
	setupAdminRoutes(chiRouter, handlers, session)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
