package get_lab_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	"github.com/ekarahan/LCR-ReservationService/pkg/ptr"
)

// UseCase use case получения расписания лаборатории на дату
type UseCase struct {
	labRepo         LabRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	labRepo LabRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		labRepo:         labRepo,
		reservationRepo: reservationRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute собирает занятость всех компьютеров лаборатории на дату.
// Учитываются только блокирующие резервирования (pending, approved) —
// отклонённые слот не занимают.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.LabID <= 0 {
		return nil, fmt.Errorf("%w: labID must be positive", ErrInvalidInput)
	}

	date := uc.timeProvider.Now()
	if req.Date != nil {
		date = *req.Date
	}

	uc.logger.Info("GetLabSchedule: lab=%d date=%s", req.LabID, date.Format(domain.DateFormat))

	lab, err := uc.labRepo.GetByID(ctx, req.LabID)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			uc.logger.Warn("GetLabSchedule: lab id=%d not found", req.LabID)
			return nil, ErrLabNotFound
		}
		uc.logger.Error("GetLabSchedule: failed to get lab id=%d: %v", req.LabID, err)
		return nil, fmt.Errorf("%w: failed to get laboratory: %v", ErrInternal, err)
	}

	computers, err := uc.labRepo.ListComputersByLab(ctx, lab.ID)
	if err != nil {
		uc.logger.Error("GetLabSchedule: failed to list computers for lab id=%d: %v", lab.ID, err)
		return nil, fmt.Errorf("%w: failed to list computers: %v", ErrInternal, err)
	}

	reservations, err := uc.reservationRepo.GetWithFilter(ctx, domain.ReservationFilter{
		LabID:        ptr.Ptr(lab.ID),
		Date:         ptr.Ptr(date),
		BlockingOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetLabSchedule: failed to get reservations for lab id=%d: %v", lab.ID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	availability := buildAvailability(lab, computers, reservations)

	resp := &Response{
		LabID:          lab.ID,
		LabName:        lab.Name,
		Capacity:       lab.Capacity,
		OperatingStart: lab.OperatingStart,
		OperatingEnd:   lab.OperatingEnd,
		Date:           date,
		Computers:      make([]ComputerSchedule, len(availability)),
	}

	for i, a := range availability {
		slots := make([]ReservedSlot, len(a.Reservations))
		for j, r := range a.Reservations {
			slots[j] = ReservedSlot{
				ReservationID: r.ID,
				StartTime:     r.Interval.Start,
				EndTime:       r.Interval.End,
				Status:        r.Status,
			}
		}
		resp.Computers[i] = ComputerSchedule{
			ComputerID:    a.Computer.ID,
			ComputerName:  a.Computer.Name,
			Reservations:  slots,
			BookedMinutes: a.BookedMinutes,
			FullyBooked:   a.IsFullyBooked(),
			OccupancyRate: a.OccupancyRate(),
		}
	}

	uc.logger.Info("GetLabSchedule: lab=%d date=%s computers=%d reservations=%d",
		lab.ID, date.Format(domain.DateFormat), len(computers), len(reservations))

	return resp, nil
}

// buildAvailability группирует резервирования по компьютерам и считает
// занятость каждого относительно рабочего окна лаборатории
func buildAvailability(
	lab *domain.Laboratory,
	computers []*domain.Computer,
	reservations []*domain.Reservation,
) []domain.ComputerAvailability {
	windowMinutes := 0
	if lab.HasOperatingWindow() {
		windowMinutes = lab.OperatingStart.MinutesUntil(*lab.OperatingEnd)
	}

	byComputer := make(map[int64][]*domain.Reservation, len(computers))
	for _, r := range reservations {
		if !r.IsBlocking() {
			continue
		}
		byComputer[r.ComputerID] = append(byComputer[r.ComputerID], r)
	}

	out := make([]domain.ComputerAvailability, len(computers))
	for i, c := range computers {
		booked := 0
		for _, r := range byComputer[c.ID] {
			booked += r.Interval.DurationMinutes()
		}
		out[i] = domain.ComputerAvailability{
			Computer:      *c,
			Reservations:  byComputer[c.ID],
			BookedMinutes: booked,
			WindowMinutes: windowMinutes,
		}
	}

	return out
}
