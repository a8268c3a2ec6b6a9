package ledger

import "errors"

var (
	// ErrNotFound бронь не найдена
	ErrNotFound = errors.New("reservation not found")

	// ErrForbidden у пользователя нет прав на бронь
	ErrForbidden = errors.New("forbidden")

	// ErrTooLateToCancel до начала брони осталось меньше окна отмены
	ErrTooLateToCancel = errors.New("too late to cancel")

	// ErrAlreadyCancelled бронь уже отменена
	ErrAlreadyCancelled = errors.New("reservation already cancelled")

	// ErrSlotConflict хотя бы один интервал уже занят другой бронью
	ErrSlotConflict = errors.New("slot conflict")

	// ErrInvalidSlots запрошенные интервалы некорректны или пересекаются между собой
	ErrInvalidSlots = errors.New("invalid slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnavailable хранилище или каталог недоступны, запрос можно повторить
	ErrUnavailable = errors.New("ledger: storage unavailable")
)
