package quote_booking

import (
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/handlers/create_booking"
)

type Handler struct {
	useCase QuoteUseCase
	logger  Logger
}

func NewHandler(useCase QuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /bookings/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	if req.Date.IsZero() {
		handlers.RespondBadRequest(w, "date is required in YYYY-MM-DD format")
		return
	}

	result, err := h.useCase.Quote(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Warn("POST /bookings/quote - court_id=%d, error=%v", req.CourtID, err)
		create_booking.RespondBookError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
