package types

import (
	"fmt"
	"math"
	"strconv"
)

// Money сумма в минимальных единицах валюты (копейки, центы, сатанги)
type Money int64

// PerHour стоимость интервала длиной minutes по часовой ставке, с округлением к ближайшей единице
func (m Money) PerHour(minutes int) Money {
	return Money((int64(m)*int64(minutes) + 30) / 60)
}

func (m Money) Int64() int64 {
	return int64(m)
}

// String форматирует сумму с двумя знаками после запятой
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON сериализует сумму как десятичное число: 1500 -> 15.00
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %v", s, err)
	}
	*m = Money(math.Round(f * 100))
	return nil
}
