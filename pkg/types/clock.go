package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidClock возвращается при некорректном формате времени
	ErrInvalidClock = errors.New("invalid time string format")

	// ErrClockOverflow возвращается, когда время выходит за пределы суток
	ErrClockOverflow = errors.New("time is out of day range")
)

// Clock время суток в минутах от полуночи (venue-local)
// Значение MinutesPerDay допустимо и означает "24:00" (конец суток)
type Clock int

// NewClock создает Clock из часов и минут
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	c := Clock(hour*60 + minute)
	if c > MinutesPerDay {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrClockOverflow, hour, minute)
	}
	return c, nil
}

// ParseClock парсит строку формата HH:MM
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(hour, minute)
}

// MustParseClock паникует при ошибке, используется для констант и тестов
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes возвращает количество минут от полуночи
func (c Clock) Minutes() int {
	return int(c)
}

// AddMinutes сдвигает время на n минут
func (c Clock) AddMinutes(n int) (Clock, error) {
	res := int(c) + n
	if res < 0 || res > MinutesPerDay {
		return 0, fmt.Errorf("%w: %d minutes", ErrClockOverflow, res)
	}
	return Clock(res), nil
}

// IsBefore строго раньше
func (c Clock) IsBefore(other Clock) bool {
	return c < other
}

// IsAfter строго позже
func (c Clock) IsAfter(other Clock) bool {
	return c > other
}

// String форматирует время как HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidClock, err)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value хранится в БД как целое число минут
func (c Clock) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*c = Clock(v)
	case int:
		*c = Clock(v)
	case []byte:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidClock, err)
		}
		*c = Clock(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidClock, err)
		}
		*c = Clock(n)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidClock, src)
	}
	return nil
}
