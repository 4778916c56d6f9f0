package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/pkg/types"
)

func segment(start, end string) *Segment {
	return &Segment{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestSegment_IsValid(t *testing.T) {
	assert.True(t, segment("09:00", "12:00").IsValid())
	assert.True(t, segment("23:00", "24:00").IsValid())

	assert.False(t, segment("12:00", "09:00").IsValid(), "reversed bounds")
	assert.False(t, segment("09:00", "09:00").IsValid(), "empty window")
	assert.False(t, segment("bad", "12:00").IsValid())
	assert.False(t, segment("09:00", "").IsValid())
}

func TestSegment_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Segment
		overlaps bool
	}{
		{"disjoint", segment("09:00", "10:00"), segment("11:00", "12:00"), false},
		{"touching boundaries", segment("09:00", "10:00"), segment("10:00", "11:00"), false},
		{"partial overlap", segment("09:00", "11:00"), segment("10:00", "12:00"), true},
		{"contained", segment("09:00", "12:00"), segment("10:00", "11:00"), true},
		{"identical", segment("09:00", "10:00"), segment("09:00", "10:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestSegment_DurationMinutes(t *testing.T) {
	s := segment("09:00", "12:30")
	got, err := s.DurationMinutes()
	require.NoError(t, err)
	assert.Equal(t, 210, got)
}

func TestTemplate_AvailableDays(t *testing.T) {
	tpl := &Template{Days: []Day{
		{Weekday: 1, IsAvailable: true},
		{Weekday: 2, IsAvailable: false},
		{Weekday: 3, IsAvailable: true},
	}}

	days := tpl.AvailableDays()
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Weekday)
	assert.Equal(t, 3, days[1].Weekday)
}

func TestTemplate_DayByWeekday(t *testing.T) {
	tpl := &Template{Days: []Day{{Weekday: 1}, {Weekday: 5}}}

	day, ok := tpl.DayByWeekday(5)
	assert.True(t, ok)
	assert.Equal(t, 5, day.Weekday)

	_, ok = tpl.DayByWeekday(0)
	assert.False(t, ok)
}
