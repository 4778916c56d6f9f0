package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", true}, // exclusive end-of-day marker
		{"24:01", false},
		{"9:30", false},
		{"09:60", false},
		{"25:00", false},
		{"09:30:00", false},
		{"", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			}
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("10:15")
	require.NoError(t, err)
	assert.Equal(t, "10:15", ts.String())

	_, err = NewTimeStringFromString("10:75")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"00:00", 0},
		{"00:01", 1},
		{"01:00", 60},
		{"09:30", 570},
		{"23:59", 1439},
		{"24:00", 1440},
	}

	for _, tt := range tests {
		got, err := TimeString(tt.value).Minutes()
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:01").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("23:59").IsBefore("24:00"))

	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Invalid values compare as not-before
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("bad"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
	}{
		{"simple", "09:00", 30, "09:30"},
		{"hour rollover", "09:45", 30, "10:15"},
		{"zero", "09:00", 0, "09:00"},
		{"negative", "09:00", -30, "08:30"},
		{"to end of day", "23:30", 30, "24:00"},
		{"from midnight", "00:00", 1, "00:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, TimeString(tt.want), got)
		})
	}

	_, err := TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:10").AddMinutes(-11)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	got, err := TimeString("09:00").MinutesUntil("10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	got, err = TimeString("10:30").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -90, got)
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("09:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC), got)

	// 24:00 lands on midnight of the next day
	got, err = TimeString("24:00").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME columns come back as "HH:MM:SS"
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("14:45:00")))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
