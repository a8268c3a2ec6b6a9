package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Коды ошибок в теле ответа
const (
	CodeValidation         = "ValidationError"
	CodeInvalidSlots       = "InvalidSlots"
	CodeVenueClosed        = "VenueClosed"
	CodeCourtNotFound      = "CourtNotFound"
	CodeVenueNotFound      = "VenueNotFound"
	CodeSlotConflict       = "SlotConflict"
	CodePaymentFailed      = "PaymentFailed"
	CodeForbidden          = "Forbidden"
	CodeUnauthorized       = "Unauthorized"
	CodeNotFound           = "NotFound"
	CodeTooLateToCancel    = "TooLateToCancel"
	CodeAlreadyCancelled   = "AlreadyCancelled"
	CodeStorageUnavailable = "StorageUnavailable"
	CodeInternal           = "Internal"
	CodeMethodNotAllowed   = "MethodNotAllowed"
)

// BookingIDPattern шаблон пути для брони: числовой ID брони или bookingRef (UUID)
const BookingIDPattern = `[0-9]+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

const maxBodyBytes = 1 << 20

var validate = validator.New()

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DecodeJSON читает тело запроса; неизвестные поля и лишние данные после объекта - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

// Validate проверяет теги validate у DTO и возвращает читаемое описание первой ошибки
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			fields = append(fields, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			fields = append(fields, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(fields, "; "))
}

// PathID целочисленный параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// BookingKey бронь из пути: заполнено ровно одно поле
type BookingKey struct {
	ID  int64
	Ref string
}

// IsRef ключ указывает на бронирование целиком
func (k BookingKey) IsRef() bool {
	return k.Ref != ""
}

func (k BookingKey) String() string {
	if k.IsRef() {
		return k.Ref
	}
	return strconv.FormatInt(k.ID, 10)
}

// PathBookingKey параметр пути с ID брони или bookingRef из ответа на создание
func PathBookingKey(r *http.Request, name string) (BookingKey, error) {
	raw := mux.Vars(r)[name]
	if ref, err := uuid.Parse(raw); err == nil {
		return BookingKey{Ref: ref.String()}, nil
	}
	id, err := PathID(r, name)
	if err != nil {
		return BookingKey{}, err
	}
	return BookingKey{ID: id}, nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ошибку в формате {error, message}
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

func RespondUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, CodeStorageUnavailable, "service temporarily unavailable, please retry")
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}
