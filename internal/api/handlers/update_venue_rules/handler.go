package update_venue_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/service/rules"
	"github.com/m04kA/venuebook/pkg/ptr"
)

const msgInvalidVenueID = "invalid venue id"

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

// Handle PUT /venues/{venueId}/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{venueId}/rules - invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(venueID, actor))
	if err != nil {
		h.respondError(w, venueID, actor.UserID, err)
		return
	}

	h.logger.Info("PUT /venues/{venueId}/rules - saved: venue_id=%d, court_id=%d, rules_id=%d", venueID, ptr.Value(req.CourtID), result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /venues/{venueId}/rules?courtId=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var courtID *int64
	if raw := r.URL.Query().Get("courtId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, "invalid court id")
			return
		}
		courtID = &id
	}

	if err := h.service.Delete(r.Context(), venueID, courtID, actor); err != nil {
		h.respondError(w, venueID, actor.UserID, err)
		return
	}

	h.logger.Info("DELETE /venues/{venueId}/rules - deleted: venue_id=%d, court_id=%d", venueID, ptr.Value(courtID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, venueID, userID int64, err error) {
	switch {
	case errors.Is(err, rules.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, rules.ErrVenueNotFound):
		handlers.RespondNotFound(w, handlers.CodeVenueNotFound, "venue not found")
	case errors.Is(err, rules.ErrCourtNotFound):
		handlers.RespondNotFound(w, handlers.CodeCourtNotFound, "court not found in this venue")
	case errors.Is(err, rules.ErrRulesNotFound):
		handlers.RespondNotFound(w, handlers.CodeNotFound, "rules not found")
	case errors.Is(err, rules.ErrAccessDenied):
		h.logger.Warn("/venues/{venueId}/rules - access denied: venue_id=%d, user_id=%d", venueID, userID)
		handlers.RespondForbidden(w, "only the venue owner can change booking rules")
	case errors.Is(err, rules.ErrUnavailable):
		h.logger.Error("/venues/{venueId}/rules - unavailable: venue_id=%d, error=%v", venueID, err)
		handlers.RespondUnavailable(w)
	default:
		h.logger.Error("/venues/{venueId}/rules - failed: venue_id=%d, error=%v", venueID, err)
		handlers.RespondInternalError(w)
	}
}
