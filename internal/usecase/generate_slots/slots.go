package generate_slots

import (
	"sort"
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
)

// firstOccurrenceOnOrAfter вычисляет первую конкретную дату с нужным днём недели,
// не раньше якорной даты связки.
//
// daysToAdd = (dayIndex - anchorWeekday + 7) mod 7:
// - если якорь уже попадает на нужный день недели, daysToAdd = 0 (та же дата)
// - иначе сдвигаемся вперёд до ближайшего совпадения, максимум на 6 дней
// Защитная ветка +7 недостижима при корректной арифметике по модулю,
// но сохраняет инвариант "никогда раньше якоря" при любом исходе.
func firstOccurrenceOnOrAfter(anchor time.Time, dayIndex int) time.Time {
	anchorWeekday := int(anchor.Weekday())

	daysToAdd := (dayIndex - anchorWeekday + 7) % 7
	if daysToAdd == 0 && anchorWeekday != dayIndex {
		daysToAdd = 7
	}

	return anchor.AddDate(0, 0, daysToAdd)
}

// expandSegment разбивает сегмент [start, end) на последовательные окна
// длительностью ровно durationMinutes.
//
// Окно попадает в результат, только если его конец не выходит за конец сегмента:
// неполный хвост короче длительности отбрасывается, а не усекается.
// Для сегмента длиной L минут получается ровно floor(L / D) окон.
func expandSegment(segment domain.Segment, durationMinutes int) ([]*domain.Slot, error) {
	segmentStart, err := segment.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	segmentEnd, err := segment.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]*domain.Slot, 0)

	for windowStart := segmentStart; windowStart+durationMinutes <= segmentEnd; windowStart += durationMinutes {
		startTime, err := segment.StartTime.AddMinutes(windowStart - segmentStart)
		if err != nil {
			return nil, err
		}
		endTime, err := startTime.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, &domain.Slot{
			StartTime:           startTime,
			EndTime:             endTime,
			MaxAppointments:     domain.DefaultMaxAppointmentsPerSlot,
			CurrentAppointments: 0,
			IsAvailable:         true,
		})
	}

	return slots, nil
}

// expandArrangement разворачивает шаблон связки в конкретные датированные слоты.
//
// Для каждого доступного дня шаблона берётся первая дата с нужным днём недели
// не раньше якорной даты, затем каждый сегмент дня нарезается на окна.
// Разворачивается ровно одно вхождение на день недели - повторение на будущие
// недели в ядро не входит (однопроходная генерация, как в исходном поведении).
//
// Результат детерминирован: одинаковые входные данные дают одинаковую
// последовательность слотов (сортировка по дате и времени начала).
func expandArrangement(
	arr *domain.Arrangement,
	tpl *domain.Template,
	durationMinutes int,
) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for _, day := range tpl.AvailableDays() {
		date := firstOccurrenceOnOrAfter(arr.StartDate, day.Weekday)

		for _, segment := range day.Segments {
			segmentSlots, err := expandSegment(segment, durationMinutes)
			if err != nil {
				return nil, err
			}

			for _, s := range segmentSlots {
				s.ServiceID = arr.ServiceID
				s.ArrangementID = arr.ID
				s.Date = date
			}

			slots = append(slots, segmentSlots...)
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}
