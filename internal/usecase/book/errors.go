package book

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book: invalid input data")

	// ErrForbidden бронирование от имени другого пользователя
	ErrForbidden = errors.New("book: forbidden")

	// ErrCourtNotFound корт отсутствует в каталоге
	ErrCourtNotFound = errors.New("book: court not found")

	// ErrVenueClosed площадка не работает в этот день
	ErrVenueClosed = errors.New("book: venue closed")

	// ErrInvalidSlots запрошенные слоты не входят в текущий набор свободных слотов
	ErrInvalidSlots = errors.New("book: invalid slots")

	// ErrSlotConflict слот успели занять; клиенту нужно заново получить доступность
	ErrSlotConflict = errors.New("book: slot conflict")

	// ErrPaymentFailed оплата не авторизована, бронь не создана
	ErrPaymentFailed = errors.New("book: payment failed")

	// ErrUnavailable каталог или хранилище недоступны
	ErrUnavailable = errors.New("book: dependency unavailable")
)

// Исходы бронирования для метрик
const (
	outcomeConfirmed     = "confirmed"
	outcomeConflict      = "conflict"
	outcomePaymentFailed = "payment_failed"
	outcomeInvalid       = "invalid"
	outcomeError         = "error"
)
