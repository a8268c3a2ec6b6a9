package get_venue_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/service/rules"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /venues/{venueId}/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, "invalid venue id")
		return
	}

	result, err := h.service.List(r.Context(), venueID, actor)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrVenueNotFound):
			handlers.RespondNotFound(w, handlers.CodeVenueNotFound, "venue not found")
		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("GET /venues/{venueId}/rules - access denied: venue_id=%d, user_id=%d", venueID, actor.UserID)
			handlers.RespondForbidden(w, "only the venue owner can view booking rules")
		case errors.Is(err, rules.ErrUnavailable):
			h.logger.Error("GET /venues/{venueId}/rules - unavailable: venue_id=%d, error=%v", venueID, err)
			handlers.RespondUnavailable(w)
		default:
			h.logger.Error("GET /venues/{venueId}/rules - failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
