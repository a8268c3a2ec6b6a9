package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда хотя бы один отрезок корта уже занят другой бронью
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrUnalignedInterval возвращается, когда границы брони не лежат на сетке занятости
	ErrUnalignedInterval = errors.New("reservation.repository: interval is not aligned to the slot grid")

	// ErrNotConfirmed возвращается при попытке отменить уже отмененную бронь
	ErrNotConfirmed = errors.New("reservation.repository: reservation is not confirmed")

	// ErrTransactionRequired возвращается, если запись броней вызвана вне транзакции
	ErrTransactionRequired = errors.New("reservation.repository: transaction required")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
