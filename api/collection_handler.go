package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// collectionHandler serves one of education, techstack, certificates or projects.
type collectionHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *database.CollectionStore
	section   models.Section
}

func newCollectionHandler(store *database.CollectionStore, section models.Section) collectionHandler {
	logger := log.With().Str("handlerName", section.Name+"Handler").Logger()

	return collectionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		section:   section,
	}
}

// list returns every entry, newest first
// @Summary List collection section
// @Tags Sections
// @Produce json
// @Success 200 {array} models.Project "Entries"
// @Failure 500 {object} ErrorResponse "Failed to fetch <section>"
// @Router /api/projects [get]
func (h collectionHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.store.List(r.Context(), h.section)
		if err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to fetch "+h.section.Name))
			return
		}
		h.responder.WriteJSON(w, entries)
	}
}

// create adds an entry
// @Summary Create collection entry
// @Tags Sections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "{success:true, insertedId}"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 500 {object} ErrorResponse "Failed to create <section>"
// @Router /api/projects [post]
func (h collectionHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(r, h.section.Name, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := h.store.Create(r.Context(), h.section, body)
		if err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to create "+h.section.Name))
			return
		}

		event := h.logger.Info().Str("id", id)
		if claims, ok := ctxGetClaims(r.Context()); ok {
			event = event.Str("admin", claims.Email)
		}
		event.Msg("entry created")
		h.responder.WriteSuccess(w, map[string]any{"insertedId": id})
	}
}

// update merges the supplied fields into the entry named by id
// @Summary Update collection entry
// @Tags Sections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "{success:true}"
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 500 {object} ErrorResponse "Failed to update <section>"
// @Router /api/projects [put]
func (h collectionHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(r, h.section.Name, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.Update(r.Context(), h.section, entryID(r, body), body); err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to update "+h.section.Name))
			return
		}
		h.responder.WriteSuccess(w, nil)
	}
}

// remove deletes the entry named by id; deleting a missing entry succeeds
// @Summary Delete collection entry
// @Tags Sections
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "{success:true}"
// @Failure 400 {object} ErrorResponse "id is required"
// @Failure 500 {object} ErrorResponse "Failed to delete <section>"
// @Router /api/projects [delete]
func (h collectionHandler) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.URL.Query().Get(models.FieldID) == "" {
			if err := decodeJSON(r, h.section.Name, &body); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if err := h.store.Delete(r.Context(), h.section, entryID(r, body)); err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to delete "+h.section.Name))
			return
		}
		h.responder.WriteSuccess(w, nil)
	}
}

// entryID reads the target id from the body, accepting _id as well, or the id query parameter.
func entryID(r *http.Request, body map[string]any) string {
	for _, key := range []string{models.FieldID, models.FieldMongoID} {
		if id, ok := body[key].(string); ok && id != "" {
			return id
		}
	}
	return r.URL.Query().Get(models.FieldID)
}
