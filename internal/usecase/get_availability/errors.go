package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCourtNotFound корт или его площадка отсутствуют в каталоге
	ErrCourtNotFound = errors.New("court not found")

	// ErrVenueClosed площадка не работает в этот день
	ErrVenueClosed = errors.New("venue closed")

	// ErrUnavailable каталог или хранилище недоступны
	ErrUnavailable = errors.New("availability: dependency unavailable")
)
