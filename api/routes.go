package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes mounts the endpoints that never need a session
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, registry *prometheus.Registry) {
	r.Get("/api/health", handlers.healthHandler.check())
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Get("/api/portfolio", handlers.portfolioHandler.getPortfolio())
	r.Post("/api/contact-message", handlers.contactMessageHandler.sendMessage())

	r.Post("/api/auth/login", handlers.authHandler.login())
	r.Post("/api/auth/logout", handlers.authHandler.logout())
	r.Get("/api/auth/session", handlers.authHandler.session())
}

// setupSectionRoutes mounts the section endpoints. Reads are public; writes and the dashboard
// require a session unless write protection is turned off.
func setupSectionRoutes(r chi.Router, handlers *routeHandlers, session sessionMiddleware, protectWrites bool) {
	singletons := map[string]singletonHandler{
		"/api/hero":    handlers.heroHandler,
		"/api/about":   handlers.aboutHandler,
		"/api/contact": handlers.contactHandler,
	}
	collections := map[string]collectionHandler{
		"/api/education":    handlers.educationHandler,
		"/api/techstack":    handlers.techStackHandler,
		"/api/certificates": handlers.certificatesHandler,
		"/api/projects":     handlers.projectsHandler,
	}

	for path, h := range singletons {
		r.Get(path, h.get())
	}
	for path, h := range collections {
		r.Get(path, h.list())
	}

	r.Group(func(r chi.Router) {
		if protectWrites {
			r.Use(session.requireSession)
		}

		for path, h := range singletons {
			r.Put(path, h.replace())
		}
		for path, h := range collections {
			r.Post(path, h.create())
			r.Put(path, h.update())
			r.Delete(path, h.remove())
		}

		r.Get("/api/dashboard", handlers.dashboardHandler.getDashboard())
	})
}

// setupAdminRoutes serves the admin console behind the session gate.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, session sessionMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(session.gate)

		r.Get("/", handlers.adminPages.index())
		r.Get("/login", handlers.adminPages.login())
		r.Get("/*", handlers.adminPages.asset())
	})
}
