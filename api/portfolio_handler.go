package api

import (
	"net/http"
	"sync"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// portfolioHandler serves every content section in one response for the public page.
type portfolioHandler struct {
	responder   Responder
	logger      zerolog.Logger
	singletons  *database.SingletonStore
	collections *database.CollectionStore
}

func newPortfolioHandler(singletons *database.SingletonStore, collections *database.CollectionStore) portfolioHandler {
	logger := log.With().Str("handlerName", "portfolioHandler").Logger()

	return portfolioHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		singletons:  singletons,
		collections: collections,
	}
}

// getPortfolio never fails: a section that cannot be read falls back to its defaults.
func (h portfolioHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var mu sync.Mutex
		out := make(map[string]any, len(models.Sections()))

		var g errgroup.Group
		for _, section := range models.Sections() {
			g.Go(func() error {
				var value any
				switch section.Kind {
				case models.Singleton:
					doc, err := h.singletons.Get(ctx, section)
					if err != nil {
						h.logger.Warn().Err(err).Str("section", section.Name).Msg("serving defaults")
						doc = section.Defaults()
					}
					value = doc
				default:
					entries, err := h.collections.List(ctx, section)
					if err != nil {
						h.logger.Warn().Err(err).Str("section", section.Name).Msg("serving empty list")
						entries = []models.Document{}
					}
					value = entries
				}

				mu.Lock()
				out[section.Name] = value
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		h.responder.WriteJSON(w, out)
	}
}
