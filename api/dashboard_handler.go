package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *database.CollectionStore
}

func newDashboardHandler(store *database.CollectionStore) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

type dashboardStats struct {
	Projects  int `json:"projects"`
	Tech      int `json:"tech"`
	Education int `json:"education"`
}

type dashboardResponse struct {
	Stats  dashboardStats  `json:"stats"`
	Status dashboardStatus `json:"status"`
}

type dashboardStatus struct {
	Database bool `json:"database"`
}

// getDashboard counts projects, tech stack and education entries concurrently. A failing
// source counts as zero and marks the database status as down; the response never fails.
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			mu    sync.Mutex
			stats dashboardStats
			ok    = true
		)

		count := func(ctx context.Context, section models.Section, dst *int) func() error {
			return func() error {
				entries, err := h.store.List(ctx, section)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					h.logger.Error().Err(err).Str("section", section.Name).Msg("dashboard source failed")
					ok = false
					return nil
				}
				*dst = len(entries)
				return nil
			}
		}

		var g errgroup.Group
		g.Go(count(r.Context(), models.ProjectsSection, &stats.Projects))
		g.Go(count(r.Context(), models.TechStackSection, &stats.Tech))
		g.Go(count(r.Context(), models.EducationSection, &stats.Education))
		_ = g.Wait()

		h.responder.WriteJSON(w, dashboardResponse{
			Stats:  stats,
			Status: dashboardStatus{Database: ok},
		})
	}
}
