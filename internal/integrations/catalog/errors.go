package catalog

import "errors"

var (
	// ErrCourtNotFound корт отсутствует в каталоге
	ErrCourtNotFound = errors.New("catalog client: court not found")

	// ErrVenueNotFound площадка отсутствует в каталоге
	ErrVenueNotFound = errors.New("catalog client: venue not found")

	// ErrInternal возвращается при внутренних ошибках клиента и недоступности каталога
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
