package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	heroHandler           singletonHandler
	aboutHandler          singletonHandler
	contactHandler        singletonHandler
	educationHandler      collectionHandler
	techStackHandler      collectionHandler
	certificatesHandler   collectionHandler
	projectsHandler       collectionHandler
	contactMessageHandler contactMessageHandler
	authHandler           authHandler
	dashboardHandler      dashboardHandler
	portfolioHandler      portfolioHandler
	healthHandler         healthHandler
	adminPages            adminPages
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error string `json:"error" example:"Failed to fetch hero"`
}
