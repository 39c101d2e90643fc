package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout      = "15:04"
	timeLayoutLong  = "15:04:05"
	minutesPerDay   = 24 * 60
	endOfDayLiteral = "24:00"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM".
// Значение "24:00" допускается как конец суток (закрытие в полночь).
type TimeString string

// NewTimeString создает TimeString из time.Time (используются только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	ts, err := normalize(s)
	if err != nil {
		return "", err
	}
	return ts, nil
}

// MustTimeString паникует при некорректном формате, используется для констант и тестов
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Validate проверяет корректность формата
func (t TimeString) Validate() error {
	_, err := normalize(string(t))
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes возвращает количество минут от начала суток.
// Для некорректного значения возвращает -1.
func (t TimeString) Minutes() int {
	if t == endOfDayLiteral {
		return minutesPerDay
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner (колонки TIME приходят как "HH:MM:SS" или time.Time)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if t == endOfDayLiteral {
		return "24:00:00", nil
	}
	return string(t) + ":00", nil
}

func (t *TimeString) scanString(s string) error {
	ts, err := normalize(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func normalize(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if s == endOfDayLiteral || s == "24:00:00" {
		return endOfDayLiteral, nil
	}
	for _, layout := range []string{timeLayout, timeLayoutLong} {
		if parsed, err := time.Parse(layout, s); err == nil {
			return NewTimeString(parsed), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}
