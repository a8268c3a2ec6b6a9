package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/service/ledger"
)

const (
	msgInvalidUserID = "invalid user id"
	msgForbidden     = "cannot view bookings of another user"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /users/{userId}/bookings?status=confirmed|cancelled|completed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Фильтр по статусу опционален
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.ListForUser(r.Context(), userID, status, actor)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrForbidden):
			h.logger.Warn("GET /users/{userId}/bookings - access denied: user_id=%d, by=%d", userID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, ledger.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, ledger.ErrUnavailable):
			h.logger.Error("GET /users/{userId}/bookings - unavailable: user_id=%d, error=%v", userID, err)
			handlers.RespondUnavailable(w)
		default:
			h.logger.Error("GET /users/{userId}/bookings - failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - user_id=%d, count=%d", userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
