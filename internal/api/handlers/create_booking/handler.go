package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/usecase/book"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDateRequired       = "date is required in YYYY-MM-DD format"
)

type Handler struct {
	useCase BookUseCase
	logger  Logger
}

func NewHandler(useCase BookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if req.Date.IsZero() {
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, book.ErrSlotConflict):
			h.logger.Warn("POST /bookings - slot conflict: user_id=%d, court_id=%d, date=%s", req.UserID, req.CourtID, req.Date)
		case errors.Is(err, book.ErrUnavailable):
			h.logger.Error("POST /bookings - dependency unavailable: user_id=%d, court_id=%d, error=%v", req.UserID, req.CourtID, err)
		default:
			h.logger.Warn("POST /bookings - rejected: user_id=%d, court_id=%d, error=%v", req.UserID, req.CourtID, err)
		}
		RespondBookError(w, err)
		return
	}

	h.logger.Info("POST /bookings - booking created: ref=%s, user_id=%d, court_id=%d, reservations=%v",
		result.BookingRef, req.UserID, req.CourtID, result.ReservationIDs)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
