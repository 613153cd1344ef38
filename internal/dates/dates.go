package dates

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

var layouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse aceita uma data ISO ("2026-03-10") ou data-hora ISO. Valores sem fuso
// são interpretados em loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// StartOfDay devolve 00:00:00.000 do dia de t em loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDay devolve 23:59:59.999 do dia de t em loc
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}

// CalendarDate reduz t ao dia do calendário em loc, representado como meia-noite UTC.
// É o formato gravado nas colunas do tipo date.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfCalendarDate devolve o último instante (23:59:59.999 em loc) de uma data gravada por CalendarDate
func EndOfCalendarDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
