package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name     string
		value    string
		expected time.Time
		wantErr  bool
	}{
		{"date only", "2026-03-10", time.Date(2026, 3, 10, 0, 0, 0, 0, saoPaulo), false},
		{"rfc3339", "2026-03-10T15:04:05Z", time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC), false},
		{"local datetime", "2026-03-10T08:30", time.Date(2026, 3, 10, 8, 30, 0, 0, saoPaulo), false},
		{"garbage", "not-a-date", time.Time{}, true},
		{"impossible day", "2026-02-30", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value, saoPaulo)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestDayBoundaries(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(at, time.UTC))
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999000000, time.UTC), EndOfDay(at, time.UTC))
}

func TestCalendarDate(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	// 01:00 UTC on the 11th is still the 10th in São Paulo (UTC-3)
	at := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)

	date := CalendarDate(at, saoPaulo)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999000000, saoPaulo), EndOfCalendarDate(date, saoPaulo))
}
