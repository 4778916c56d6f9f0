package models

import (
	"time"

	"github.com/avdeenko/appointment-service/internal/domain"
	"github.com/avdeenko/appointment-service/pkg/types"
)

// Request модели

// SegmentInput временной отрезок доступности в запросе
type SegmentInput struct {
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// DayInput день недели в запросе на создание шаблона
type DayInput struct {
	Weekday     int            `json:"weekday"` // 0=воскресенье .. 6=суббота
	IsAvailable bool           `json:"isAvailable"`
	Segments    []SegmentInput `json:"segments"`
}

// CreateTemplateRequest запрос на создание шаблона расписания
type CreateTemplateRequest struct {
	UserID     int64      `json:"-"`
	ProviderID int64      `json:"providerId"`
	Name       string     `json:"name"`
	Days       []DayInput `json:"days"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateTemplateRequest) ToDomain() *domain.Template {
	tpl := &domain.Template{
		ProviderID: r.ProviderID,
		Name:       r.Name,
		Days:       make([]domain.Day, 0, len(r.Days)),
	}

	for _, d := range r.Days {
		day := domain.Day{
			Weekday:     d.Weekday,
			IsAvailable: d.IsAvailable,
			Segments:    make([]domain.Segment, 0, len(d.Segments)),
		}
		for _, seg := range d.Segments {
			day.Segments = append(day.Segments, domain.Segment{
				StartTime: types.TimeString(seg.StartTime),
				EndTime:   types.TimeString(seg.EndTime),
			})
		}
		tpl.Days = append(tpl.Days, day)
	}

	return tpl
}

// ArrangementInput элемент запроса на назначение шаблонов услуге
type ArrangementInput struct {
	TemplateID int64  `json:"templateId"`
	StartDate  string `json:"startDate"` // "2026-03-16" - якорная дата
	SortOrder  int    `json:"sortOrder"`
}

// CreateArrangementsRequest запрос на назначение шаблонов услуге
type CreateArrangementsRequest struct {
	UserID       int64              `json:"-"`
	ServiceID    int64              `json:"serviceId"`
	Arrangements []ArrangementInput `json:"arrangements"`
}

// Response модели

// SegmentResponse временной отрезок в ответе
type SegmentResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayResponse день недели в ответе
type DayResponse struct {
	ID          int64             `json:"id"`
	Weekday     int               `json:"weekday"`
	IsAvailable bool              `json:"isAvailable"`
	Segments    []SegmentResponse `json:"segments"`
}

// TemplateResponse ответ с данными шаблона
type TemplateResponse struct {
	ID         int64         `json:"id"`
	ProviderID int64         `json:"providerId"`
	Name       string        `json:"name"`
	Days       []DayResponse `json:"days"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// TemplateListResponse ответ со списком шаблонов
type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// ArrangementResponse ответ с данными назначения
type ArrangementResponse struct {
	ID         int64  `json:"id"`
	ServiceID  int64  `json:"serviceId"`
	TemplateID int64  `json:"templateId"`
	StartDate  string `json:"startDate"`
	SortOrder  int    `json:"sortOrder"`
}

// ArrangementListResponse ответ со списком назначений
type ArrangementListResponse struct {
	Arrangements []ArrangementResponse `json:"arrangements"`
}

// Методы конвертации

// FromDomainTemplate конвертирует domain модель в DTO
func FromDomainTemplate(t *domain.Template) *TemplateResponse {
	if t == nil {
		return nil
	}

	resp := &TemplateResponse{
		ID:         t.ID,
		ProviderID: t.ProviderID,
		Name:       t.Name,
		Days:       make([]DayResponse, 0, len(t.Days)),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}

	for _, d := range t.Days {
		day := DayResponse{
			ID:          d.ID,
			Weekday:     d.Weekday,
			IsAvailable: d.IsAvailable,
			Segments:    make([]SegmentResponse, 0, len(d.Segments)),
		}
		for _, seg := range d.Segments {
			day.Segments = append(day.Segments, SegmentResponse{
				ID:        seg.ID,
				StartTime: seg.StartTime.String(),
				EndTime:   seg.EndTime.String(),
			})
		}
		resp.Days = append(resp.Days, day)
	}

	return resp
}

// FromDomainTemplateList конвертирует список domain моделей в DTO
func FromDomainTemplateList(templates []*domain.Template) *TemplateListResponse {
	resp := &TemplateListResponse{
		Templates: make([]TemplateResponse, 0, len(templates)),
	}

	for _, tpl := range templates {
		if tplResp := FromDomainTemplate(tpl); tplResp != nil {
			resp.Templates = append(resp.Templates, *tplResp)
		}
	}

	return resp
}

// FromDomainArrangement конвертирует domain модель в DTO
func FromDomainArrangement(a *domain.Arrangement) *ArrangementResponse {
	if a == nil {
		return nil
	}

	return &ArrangementResponse{
		ID:         a.ID,
		ServiceID:  a.ServiceID,
		TemplateID: a.TemplateID,
		StartDate:  a.StartDate.Format(domain.DateFormat),
		SortOrder:  a.SortOrder,
	}
}

// FromDomainArrangementList конвертирует список domain моделей в DTO
func FromDomainArrangementList(arrangements []*domain.Arrangement) *ArrangementListResponse {
	resp := &ArrangementListResponse{
		Arrangements: make([]ArrangementResponse, 0, len(arrangements)),
	}

	for _, arr := range arrangements {
		if arrResp := FromDomainArrangement(arr); arrResp != nil {
			resp.Arrangements = append(resp.Arrangements, *arrResp)
		}
	}

	return resp
}
