package generate_slots

import (
	"fmt"

	"github.com/avdeenko/appointment-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Длительность 0 означает "взять из каталога", иначе проверяем границы
	if req.DurationMinutes != 0 {
		if err := validateDuration(req.DurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

// validateDuration проверяет, что длительность слота в допустимых границах
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	return nil
}

// validateTemplate проверяет инварианты шаблона перед генерацией:
// корректные границы сегментов и отсутствие пересечений внутри дня.
// Нарушение - ошибка конфигурации, связка пропускается, пакет продолжается.
func validateTemplate(tpl *domain.Template) error {
	for _, day := range tpl.Days {
		if day.Weekday < domain.MinWeekdayIndex || day.Weekday > domain.MaxWeekdayIndex {
			return fmt.Errorf("%w: template %d day %d has invalid weekday %d",
				ErrInvalidTemplate, tpl.ID, day.ID, day.Weekday)
		}

		for i := range day.Segments {
			segment := &day.Segments[i]
			if !segment.IsValid() {
				return fmt.Errorf("%w: template %d segment %d has invalid time range %s-%s",
					ErrInvalidTemplate, tpl.ID, segment.ID, segment.StartTime, segment.EndTime)
			}

			for j := i + 1; j < len(day.Segments); j++ {
				if segment.Overlaps(&day.Segments[j]) {
					return fmt.Errorf("%w: template %d day %d has overlapping segments %d and %d",
						ErrInvalidTemplate, tpl.ID, day.ID, segment.ID, day.Segments[j].ID)
				}
			}
		}
	}

	return nil
}
