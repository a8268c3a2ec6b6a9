package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/venuebook/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/get_booking"
	getCourtReservationsHandler "github.com/m04kA/venuebook/internal/api/handlers/get_court_reservations"
	getUserBookingsHandler "github.com/m04kA/venuebook/internal/api/handlers/get_user_bookings"
	getVenueRulesHandler "github.com/m04kA/venuebook/internal/api/handlers/get_venue_rules"
	quoteBookingHandler "github.com/m04kA/venuebook/internal/api/handlers/quote_booking"
	updateVenueRulesHandler "github.com/m04kA/venuebook/internal/api/handlers/update_venue_rules"
	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
)

// Handlers обработчики HTTP API
type Handlers struct {
	GetAvailability      *getAvailabilityHandler.Handler
	CreateBooking        *createBookingHandler.Handler
	QuoteBooking         *quoteBookingHandler.Handler
	CancelBooking        *cancelBookingHandler.Handler
	GetBooking           *getBookingHandler.Handler
	GetUserBookings      *getUserBookingsHandler.Handler
	GetCourtReservations *getCourtReservationsHandler.Handler
	GetVenueRules        *getVenueRulesHandler.Handler
	UpdateVenueRules     *updateVenueRulesHandler.Handler
}

// RouterConfig параметры маршрутизации
type RouterConfig struct {
	BasePath    string
	MetricsPath string // пусто - эндпоинт метрик не публикуется
	Tokens      middleware.TokenParser
	Metrics     middleware.HTTPObserver // nil - без метрик HTTP
	Logger      middleware.Logger
}

// NewRouter собирает маршруты сервиса
func NewRouter(cfg RouterConfig, h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondNotFound(w, handlers.CodeNotFound, "resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondError(w, http.StatusMethodNotAllowed, handlers.CodeMethodNotAllowed, "method not allowed")
	})
	r.Use(middleware.Recover(cfg.Logger))

	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	if cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix(cfg.BasePath).Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Слоты корта на дату
	api.HandleFunc("/venues/{courtId}/availability", h.GetAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <JWT>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Tokens, cfg.Logger))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/quote", h.QuoteBooking.Handle).Methods(http.MethodPost)
	// bookingId - ID брони или bookingRef из ответа POST /bookings
	protected.HandleFunc("/bookings/{bookingId:"+handlers.BookingIDPattern+"}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:"+handlers.BookingIDPattern+"}/cancel", h.CancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", h.GetUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (владелец или администратор) ---
	protected.HandleFunc("/courts/{courtId}/reservations", h.GetCourtReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/rules", h.GetVenueRules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/rules", h.UpdateVenueRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/venues/{venueId}/rules", h.UpdateVenueRules.HandleDelete).Methods(http.MethodDelete)

	return r
}
