package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(db database.Database, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    db,
		startupTime: startupTime,
	}
}

func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		uptime := time.Since(h.startupTime).Round(time.Second).String()
		if err := h.database.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("document store ping failed")
			h.responder.WriteStatusJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"uptime": uptime,
			})
			return
		}
		h.responder.WriteJSON(w, map[string]any{"status": "ok", "uptime": uptime})
	}
}
