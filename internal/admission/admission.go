// Package admission implements the reservation admission-control engine:
// for any candidate reservation it answers accept or reject-with-reason,
// and on accept in which initial status.
//
// The engine is a pure function of its inputs: it holds no state, performs
// no I/O and is safe to call from concurrent requests. The checks run in a
// fixed order and short-circuit on the first failure:
//
//  1. interval construction (end must be after start)
//  2. conflict against blocking reservations on the computer
//  3. daily cap (at most domain.DailyCapMinutes per student per date)
//  4. single lab per student per day
//  5. lab operating hours
//
// Blocking statuses are pending and approved (domain.BlockingStatuses): a
// slot is held from the moment it is requested, which closes the
// double-booking window during the approval lag. The same set is applied to
// conflict detection and to the quota rules.
//
// The pre-check here is an optimization for user feedback, not the sole
// source of correctness: the storage layer must enforce the non-overlap
// invariant atomically at write time and report a lost race through the
// same ErrSlotUnavailable channel.
package admission

import (
	"fmt"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
)

// Attempt runs the admission pipeline for one candidate reservation.
// On success it returns an unpersisted reservation in its initial status:
// pending for student requests, approved for manager/admin direct bookings.
func Attempt(req Request, snap Snapshot) (*domain.Reservation, error) {
	// 1. Строим интервал — отсекает end <= start и мусор во времени
	interval, err := domain.NewTimeInterval(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	// 2. Конфликт с существующими блокирующими резервированиями компьютера
	if conflict := FindConflict(interval, req.Computer.ID, snap.ComputerReservations); conflict != nil {
		return nil, fmt.Errorf("%w: overlaps reservation id=%d (%s)",
			ErrSlotUnavailable, conflict.ID, conflict.Interval)
	}

	// 3-4. Дневная квота и правило одной лаборатории — только для студентов.
	// Прямые бронирования менеджера/администратора не участвуют в квоте.
	if req.Requester.Role == domain.RoleStudent {
		if err := checkDailyCap(interval, snap.StudentReservations); err != nil {
			return nil, err
		}
		if err := checkSingleLab(interval, req.Lab.ID, snap.StudentReservations); err != nil {
			return nil, err
		}
	}

	// 5. Рабочие часы лаборатории
	if err := checkOperatingHours(interval, &req.Lab); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if req.Requester.Role.CanDirectBook() {
		status = domain.StatusApproved
	}

	return &domain.Reservation{
		StudentEmail: req.Requester.StudentEmail,
		ComputerID:   req.Computer.ID,
		LabID:        req.Lab.ID,
		Interval:     interval,
		Status:       status,
	}, nil
}

// FindConflict returns the first blocking reservation on the computer whose
// interval overlaps the candidate, or nil when the slot is free. Exported
// because the create-reservation use case re-runs the check on a locked
// snapshot inside the write transaction.
func FindConflict(candidate domain.TimeInterval, computerID int64, existing []*domain.Reservation) *domain.Reservation {
	for _, r := range existing {
		if r.ComputerID != computerID {
			continue
		}
		if !r.IsBlocking() {
			continue
		}
		if candidate.Overlaps(r.Interval) {
			return r
		}
	}
	return nil
}

// checkDailyCap enforces the daily minute cap for the requesting student.
// The cap is inclusive: existing + candidate == DailyCapMinutes still passes.
func checkDailyCap(candidate domain.TimeInterval, existing []*domain.Reservation) error {
	total := 0
	for _, r := range blockingSameDay(candidate, existing) {
		total += r.Interval.DurationMinutes()
	}

	if total+candidate.DurationMinutes() > domain.DailyCapMinutes {
		return fmt.Errorf("%w: %d minutes already reserved, %d requested, cap is %d",
			ErrDailyLimitExceeded, total, candidate.DurationMinutes(), domain.DailyCapMinutes)
	}
	return nil
}

// checkSingleLab enforces that all of a student's same-day blocking
// reservations stay within one laboratory. With no prior reservations that
// day the rule is vacuously satisfied.
func checkSingleLab(candidate domain.TimeInterval, labID int64, existing []*domain.Reservation) error {
	for _, r := range blockingSameDay(candidate, existing) {
		if r.LabID != labID {
			return fmt.Errorf("%w: already reserved in lab id=%d on %s",
				ErrMultipleLabsPerDay, r.LabID, candidate.Date.Format(domain.DateFormat))
		}
	}
	return nil
}

// checkOperatingHours validates the interval against the lab's operating
// window. Labs without a window accept any time of day. No partial credit:
// the whole interval must fit inside the window.
func checkOperatingHours(candidate domain.TimeInterval, lab *domain.Laboratory) error {
	if !lab.HasOperatingWindow() {
		return nil
	}

	open, close := *lab.OperatingStart, *lab.OperatingEnd
	if candidate.Start.IsBefore(open) || close.IsBefore(candidate.End) {
		return fmt.Errorf("%w: %s-%s is outside lab hours %s-%s",
			ErrOutsideOperatingHours, candidate.Start, candidate.End, open, close)
	}
	return nil
}

// blockingSameDay filters a student's reservations down to blocking ones on
// the candidate's date. Reservations without a student never reach this
// filter through the snapshot, but manager-created rows are skipped anyway.
func blockingSameDay(candidate domain.TimeInterval, existing []*domain.Reservation) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(existing))
	for _, r := range existing {
		if !r.IsBlocking() || !r.HasStudent() {
			continue
		}
		if !candidate.SameDate(r.Interval) {
			continue
		}
		out = append(out, r)
	}
	return out
}
