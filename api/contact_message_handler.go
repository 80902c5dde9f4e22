package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactMessageHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactMessageHandler(contact *services.ContactService) contactMessageHandler {
	logger := log.With().Str("handlerName", "contactMessageHandler").Logger()

	return contactMessageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// sendMessage mails a visitor's contact-form submission to the site owner
// @Summary Send contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.ContactMessage true "Contact form"
// @Success 200 {object} map[string]bool "{success:true}"
// @Failure 400 {object} ErrorResponse "All fields required"
// @Failure 500 {object} ErrorResponse "Failed to send message"
// @Router /api/contact-message [post]
func (h contactMessageHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg models.ContactMessage
		if err := decodeJSON(r, "contact message", &msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.contact.Deliver(r.Context(), msg); err != nil {
			h.responder.WriteError(w, withPublic(err, "Failed to send message"))
			return
		}
		h.responder.WriteSuccess(w, nil)
	}
}
