package generate_slots

import (
	"github.com/avdeenko/appointment-service/internal/domain"
	generateSlots "github.com/avdeenko/appointment-service/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	DurationMinutes int `json:"durationMinutes,omitempty"` // 0 = взять из каталога
}

// SlotResponse HTTP модель сгенерированного слота
type SlotResponse struct {
	ID              int64  `json:"id"`
	ArrangementID   int64  `json:"arrangementId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxAppointments int    `json:"maxAppointments"`
	IsAvailable     bool   `json:"isAvailable"`
}

// SkippedArrangementResponse HTTP модель пропущенной связки
type SkippedArrangementResponse struct {
	ArrangementID int64  `json:"arrangementId"`
	TemplateID    int64  `json:"templateId"`
	Reason        string `json:"reason"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	ServiceID       int64                        `json:"serviceId"`
	DurationMinutes int                          `json:"durationMinutes"`
	Slots           []SlotResponse               `json:"slots"`
	Skipped         []SkippedArrangementResponse `json:"skipped,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	out := &GenerateSlotsResponse{
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]SlotResponse, 0, len(resp.Slots)),
		Skipped:         make([]SkippedArrangementResponse, 0, len(resp.Skipped)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:              slot.ID,
			ArrangementID:   slot.ArrangementID,
			Date:            slot.Date.Format(domain.DateFormat),
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			MaxAppointments: slot.MaxAppointments,
			IsAvailable:     slot.IsAvailable,
		})
	}

	for _, skipped := range resp.Skipped {
		out.Skipped = append(out.Skipped, SkippedArrangementResponse{
			ArrangementID: skipped.ArrangementID,
			TemplateID:    skipped.TemplateID,
			Reason:        skipped.Reason,
		})
	}

	return out
}
