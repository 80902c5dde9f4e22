package api

import (
	"github.com/rpupo63/portfolio-backend/models"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, settings routerSettings) (*routeHandlers, error) {
	singletons := deps.Database.Singletons()
	collections := deps.Database.Collections()

	pages, err := newAdminPages(settings.adminStaticDir)
	if err != nil {
		return nil, err
	}

	return &routeHandlers{
		heroHandler:           newSingletonHandler(singletons, models.HeroSection),
		aboutHandler:          newSingletonHandler(singletons, models.AboutSection),
		contactHandler:        newSingletonHandler(singletons, models.ContactSection),
		educationHandler:      newCollectionHandler(collections, models.EducationSection),
		techStackHandler:      newCollectionHandler(collections, models.TechStackSection),
		certificatesHandler:   newCollectionHandler(collections, models.CertificatesSection),
		projectsHandler:       newCollectionHandler(collections, models.ProjectsSection),
		contactMessageHandler: newContactMessageHandler(deps.Contact),
		authHandler:           newAuthHandler(deps.Sessions, deps.Credentials, settings.secureCookies),
		dashboardHandler:      newDashboardHandler(collections),
		portfolioHandler:      newPortfolioHandler(singletons, collections),
		healthHandler:         newHealthHandler(deps.Database, settings.startupTime),
		adminPages:            pages,
	}, nil
}
