package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// singletonHandler serves one of hero, about or contact.
type singletonHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *database.SingletonStore
	section   models.Section
}

func newSingletonHandler(store *database.SingletonStore, section models.Section) singletonHandler {
	logger := log.With().Str("handlerName", section.Name+"Handler").Logger()

	return singletonHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		section:   section,
	}
}

// get returns the section record
// @Summary Get singleton section
// @Description Returns the stored record, or empty defaults when nothing was saved yet
// @Tags Sections
// @Produce json
// @Success 200 {object} models.Hero "Section record"
// @Failure 500 {object} ErrorResponse "Failed to fetch <section>"
// @Router /api/hero [get]
func (h singletonHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.store.Get(r.Context(), h.section)
		if err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to fetch "+h.section.Name))
			return
		}
		h.responder.WriteJSON(w, doc)
	}
}

// replace overwrites the section record; omitted fields are cleared
// @Summary Replace singleton section
// @Tags Sections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "{success:true}"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 500 {object} ErrorResponse "Failed to update <section>"
// @Router /api/hero [put]
func (h singletonHandler) replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(r, h.section.Name, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Upsert(r.Context(), h.section, body); err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to update "+h.section.Name))
			return
		}
		h.responder.WriteSuccess(w, nil)
	}
}
