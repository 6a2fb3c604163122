package models

import (
	"time"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Requester явная идентичность запрашивающего из identity-заголовков
type Requester struct {
	Email string
	Role  domain.Role
}

// IsAdmin reports whether the requester has the admin role.
func (r Requester) IsAdmin() bool {
	return r.Role == domain.RoleAdmin
}

// Request модели

// CreateLabRequest запрос на создание лаборатории
type CreateLabRequest struct {
	Requester      Requester
	Name           string
	Capacity       int
	OperatingStart *string // "09:00", опционально (вместе с OperatingEnd)
	OperatingEnd   *string // "17:00"
	ManagerEmails  []string
}

// AddComputerRequest запрос на добавление компьютера в лабораторию
type AddComputerRequest struct {
	Requester Requester
	LabID     int64
	Name      string
}

// Response модели

// LabResponse ответ с данными лаборатории
type LabResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Capacity       int      `json:"capacity"`
	OperatingStart *string  `json:"operatingStart,omitempty"`
	OperatingEnd   *string  `json:"operatingEnd,omitempty"`
	ManagerEmails  []string `json:"managerEmails"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// LabListResponse список лабораторий
type LabListResponse struct {
	Labs  []*LabResponse `json:"labs"`
	Total int            `json:"total"`
}

// ComputerResponse ответ с данными компьютера
type ComputerResponse struct {
	ID        int64  `json:"id"`
	LabID     int64  `json:"labId"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LabDetailResponse лаборатория вместе с компьютерами
type LabDetailResponse struct {
	Lab       *LabResponse        `json:"lab"`
	Computers []*ComputerResponse `json:"computers"`
}

// FromDomainLab конвертирует domain модель в response
func FromDomainLab(lab *domain.Laboratory) *LabResponse {
	resp := &LabResponse{
		ID:            lab.ID,
		Name:          lab.Name,
		Capacity:      lab.Capacity,
		ManagerEmails: lab.ManagerEmails,
		CreatedAt:     lab.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     lab.UpdatedAt.Format(time.RFC3339),
	}
	if lab.HasOperatingWindow() {
		start := lab.OperatingStart.String()
		end := lab.OperatingEnd.String()
		resp.OperatingStart = &start
		resp.OperatingEnd = &end
	}
	return resp
}

// FromDomainLabList конвертирует список domain моделей в response
func FromDomainLabList(labs []*domain.Laboratory) *LabListResponse {
	out := make([]*LabResponse, len(labs))
	for i, lab := range labs {
		out[i] = FromDomainLab(lab)
	}
	return &LabListResponse{Labs: out, Total: len(out)}
}

// FromDomainComputer конвертирует domain модель в response
func FromDomainComputer(c *domain.Computer) *ComputerResponse {
	return &ComputerResponse{
		ID:        c.ID,
		LabID:     c.LabID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// ToDomainLab строит domain модель из запроса на создание.
// Времена рабочего окна уже должны быть валидированы сервисом.
func (r *CreateLabRequest) ToDomainLab() (*domain.Laboratory, error) {
	lab := &domain.Laboratory{
		Name:          r.Name,
		Capacity:      r.Capacity,
		ManagerEmails: r.ManagerEmails,
	}

	if r.OperatingStart != nil && r.OperatingEnd != nil {
		start, err := types.NewTimeStringFromString(*r.OperatingStart)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(*r.OperatingEnd)
		if err != nil {
			return nil, err
		}
		lab.OperatingStart = &start
		lab.OperatingEnd = &end
	}

	return lab, nil
}
