package generate_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/pkg/types"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFirstOccurrenceOnOrAfter(t *testing.T) {
	// 2026-03-11 - среда, 2026-03-16 - понедельник
	wednesday := date(2026, time.March, 11)
	require.Equal(t, time.Wednesday, wednesday.Weekday())

	tests := []struct {
		name     string
		anchor   time.Time
		dayIndex int
		want     time.Time
	}{
		{
			name:     "anchor already on target weekday",
			anchor:   wednesday,
			dayIndex: int(time.Wednesday),
			want:     wednesday,
		},
		{
			name:     "monday after wednesday anchor",
			anchor:   wednesday,
			dayIndex: int(time.Monday),
			want:     date(2026, time.March, 16),
		},
		{
			name:     "next day",
			anchor:   wednesday,
			dayIndex: int(time.Thursday),
			want:     date(2026, time.March, 12),
		},
		{
			name:     "sunday wraps to end of week",
			anchor:   wednesday,
			dayIndex: int(time.Sunday),
			want:     date(2026, time.March, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstOccurrenceOnOrAfter(tt.anchor, tt.dayIndex)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, time.Weekday(tt.dayIndex), got.Weekday())
			assert.False(t, got.Before(tt.anchor), "occurrence must not precede the anchor")
		})
	}
}

func TestExpandSegment_FloorCount(t *testing.T) {
	tests := []struct {
		name            string
		start, end      string
		durationMinutes int
		wantCount       int
	}{
		{"exact fit", "09:00", "11:00", 30, 4},
		{"partial tail dropped", "09:00", "10:45", 30, 3},
		{"segment shorter than duration", "09:00", "09:20", 30, 0},
		{"single window", "09:00", "09:30", 30, 1},
		{"hour windows", "08:00", "18:00", 60, 10},
		{"duration equals segment", "09:00", "10:00", 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segment := domain.Segment{
				StartTime: types.TimeString(tt.start),
				EndTime:   types.TimeString(tt.end),
			}

			slots, err := expandSegment(segment, tt.durationMinutes)
			require.NoError(t, err)
			assert.Len(t, slots, tt.wantCount)
		})
	}
}

func TestExpandSegment_ContainmentAndNoOverlap(t *testing.T) {
	segment := domain.Segment{
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("12:10"),
	}

	slots, err := expandSegment(segment, 45)
	require.NoError(t, err)
	require.Len(t, slots, 4) // floor(190 / 45)

	for i, slot := range slots {
		startMin, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		endMin, err := slot.EndTime.Minutes()
		require.NoError(t, err)

		// Каждое окно ровно нужной длительности и внутри сегмента
		assert.Equal(t, 45, endMin-startMin)
		assert.GreaterOrEqual(t, startMin, 9*60)
		assert.LessOrEqual(t, endMin, 12*60+10)

		// Окна примыкают друг к другу без пересечений
		if i > 0 {
			assert.Equal(t, slots[i-1].EndTime, slot.StartTime)
		}
	}
}

func TestExpandSegment_DefaultCapacity(t *testing.T) {
	segment := domain.Segment{
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}

	slots, err := expandSegment(segment, 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	for _, slot := range slots {
		assert.Equal(t, domain.DefaultMaxAppointmentsPerSlot, slot.MaxAppointments)
		assert.Equal(t, 0, slot.CurrentAppointments)
		assert.True(t, slot.IsAvailable)
	}
}

func TestExpandArrangement_WednesdayAnchorMondayTemplate(t *testing.T) {
	// Якорь в среду, шаблон на понедельник 09:00-11:00, окно 30 минут:
	// четыре слота на следующий понедельник
	arr := &domain.Arrangement{
		ID:         7,
		ServiceID:  42,
		TemplateID: 3,
		StartDate:  date(2026, time.March, 11), // среда
	}
	tpl := &domain.Template{
		ID: 3,
		Days: []domain.Day{
			{
				Weekday:     int(time.Monday),
				IsAvailable: true,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("11:00")},
				},
			},
		},
	}

	slots, err := expandArrangement(arr, tpl, 30)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	wantStarts := []string{"09:00", "09:30", "10:00", "10:30"}
	for i, slot := range slots {
		assert.Equal(t, date(2026, time.March, 16), slot.Date, "slot must land on the next Monday")
		assert.Equal(t, wantStarts[i], slot.StartTime.String())
		assert.Equal(t, int64(42), slot.ServiceID)
		assert.Equal(t, int64(7), slot.ArrangementID)
	}
	assert.Equal(t, "11:00", slots[3].EndTime.String())
}

func TestExpandArrangement_SkipsUnavailableDays(t *testing.T) {
	arr := &domain.Arrangement{
		ID:        1,
		ServiceID: 1,
		StartDate: date(2026, time.March, 9), // понедельник
	}
	tpl := &domain.Template{
		Days: []domain.Day{
			{
				Weekday:     int(time.Monday),
				IsAvailable: true,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00")},
				},
			},
			{
				Weekday:     int(time.Tuesday),
				IsAvailable: false,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("18:00")},
				},
			},
		},
	}

	slots, err := expandArrangement(arr, tpl, 30)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	for _, slot := range slots {
		assert.Equal(t, time.Monday, slot.Date.Weekday())
	}
}

func TestExpandArrangement_SortedByDateThenTime(t *testing.T) {
	// Якорь в четверг: воскресенье выпадает раньше понедельника
	arr := &domain.Arrangement{
		ID:        1,
		ServiceID: 1,
		StartDate: date(2026, time.March, 12), // четверг
	}
	tpl := &domain.Template{
		Days: []domain.Day{
			{
				Weekday:     int(time.Monday),
				IsAvailable: true,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("10:00")},
				},
			},
			{
				Weekday:     int(time.Sunday),
				IsAvailable: true,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("14:00"), EndTime: types.TimeString("15:00")},
				},
			},
		},
	}

	slots, err := expandArrangement(arr, tpl, 30)
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		dateOrdered := prev.Date.Before(cur.Date)
		sameDateTimeOrdered := prev.Date.Equal(cur.Date) && prev.StartTime.IsBefore(cur.StartTime)
		assert.True(t, dateOrdered || sameDateTimeOrdered, "slots must be ordered by date then start time")
	}

	// Воскресные слоты идут первыми
	assert.Equal(t, time.Sunday, slots[0].Date.Weekday())
	assert.Equal(t, time.Monday, slots[2].Date.Weekday())
}

func TestExpandArrangement_Deterministic(t *testing.T) {
	arr := &domain.Arrangement{
		ID:        5,
		ServiceID: 9,
		StartDate: date(2026, time.March, 11),
	}
	tpl := &domain.Template{
		Days: []domain.Day{
			{
				Weekday:     int(time.Friday),
				IsAvailable: true,
				Segments: []domain.Segment{
					{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00")},
					{StartTime: types.TimeString("14:00"), EndTime: types.TimeString("17:00")},
				},
			},
		},
	}

	first, err := expandArrangement(arr, tpl, 30)
	require.NoError(t, err)
	second, err := expandArrangement(arr, tpl, 30)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Date, second[i].Date)
		assert.Equal(t, first[i].StartTime, second[i].StartTime)
		assert.Equal(t, first[i].EndTime, second[i].EndTime)
	}
}

func TestExpandArrangement_EmptyTemplate(t *testing.T) {
	arr := &domain.Arrangement{ID: 1, ServiceID: 1, StartDate: date(2026, time.March, 11)}

	slots, err := expandArrangement(arr, &domain.Template{}, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
