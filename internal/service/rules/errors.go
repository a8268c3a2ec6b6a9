package rules

import "errors"

var (
	// ErrRulesNotFound возвращается, когда правила для области не заданы
	ErrRulesNotFound = errors.New("rules not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venue not found")

	// ErrCourtNotFound возвращается, когда корт не найден или принадлежит другой площадке
	ErrCourtNotFound = errors.New("court not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец площадки и не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных значениях правил
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnavailable возвращается при недоступности хранилища или каталога
	ErrUnavailable = errors.New("rules service: dependency unavailable")
)
