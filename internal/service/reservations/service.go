package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	reservationRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/reservation"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
	"github.com/ekarahan/LCR-ReservationService/pkg/ptr"
)

// Service сервис для работы с резервированиями вне конвейера допуска:
// просмотр, переходы статусов (approve/reject) и административное удаление
type Service struct {
	reservationRepo ReservationRepository
	labRepo         LabRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса резервирований
func NewService(
	reservationRepo ReservationRepository,
	labRepo LabRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		logger:          logger,
	}
}

// GetByID получает резервирование по ID.
// Доступно владельцу-студенту, менеджеру лаборатории и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, requester models.Requester) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for %s", id, requester.Email)

	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(ctx, res, requester); err != nil {
		s.logger.Warn("GetByID: access denied for %s to reservation id=%d", requester.Email, id)
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// GetStudentReservations получает историю резервирований студента.
// Студент видит только свою историю; менеджер и администратор — любую.
func (s *Service) GetStudentReservations(ctx context.Context, req *models.GetStudentReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetStudentReservations: student=%s requester=%s", req.StudentEmail, req.Requester.Email)

	if req.StudentEmail == "" {
		return nil, fmt.Errorf("%w: student email is required", ErrInvalidInput)
	}

	if req.Requester.Role == domain.RoleStudent && req.Requester.Email != req.StudentEmail {
		s.logger.Warn("GetStudentReservations: student %s requested history of %s",
			req.Requester.Email, req.StudentEmail)
		return nil, ErrAccessDenied
	}

	filter := domain.ReservationFilter{StudentEmail: &req.StudentEmail}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudentReservations: repository error for %s: %v", req.StudentEmail, err)
		return nil, fmt.Errorf("%w: GetStudentReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentReservations: fetched %d reservations for %s", len(reservations), req.StudentEmail)
	return models.FromDomainReservationList(reservations), nil
}

// GetLabReservations получает резервирования лаборатории.
// Доступно менеджерам этой лаборатории и администраторам.
func (s *Service) GetLabReservations(ctx context.Context, req *models.GetLabReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetLabReservations: lab=%d requester=%s", req.LabID, req.Requester.Email)

	if err := s.checkManagerAccess(ctx, req.LabID, req.Requester); err != nil {
		return nil, err
	}

	filter := domain.ReservationFilter{LabID: ptr.Ptr(req.LabID), Date: req.Date}
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetLabReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	reservations, err := s.reservationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetLabReservations: repository error for lab=%d: %v", req.LabID, err)
		return nil, fmt.Errorf("%w: GetLabReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLabReservations: fetched %d reservations for lab=%d", len(reservations), req.LabID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит резервирование в новый статус (approve/reject).
// Разрешённые переходы: pending -> approved, pending -> rejected,
// approved -> rejected (административный override). Доступно менеджерам
// лаборатории резервирования и администраторам.
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d -> %s by %s", reservationID, req.Status, req.Requester.Email)

	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, res.LabID, req.Requester); err != nil {
		s.logger.Warn("UpdateStatus: access denied for %s to reservation id=%d", req.Requester.Email, reservationID)
		return nil, err
	}

	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return nil, ErrInvalidStatus
	}

	if !res.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for reservation id=%d",
			res.Status, newStatus, reservationID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, newStatus)
	}

	// Переход approved -> rejected разрешён только администратору
	if res.Status == domain.StatusApproved && !req.Requester.IsAdmin() {
		s.logger.Warn("UpdateStatus: %s attempted admin override on reservation id=%d",
			req.Requester.Email, reservationID)
		return nil, ErrAccessDenied
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	res.Status = newStatus
	s.logger.Info("UpdateStatus: reservation id=%d now %s", reservationID, newStatus)
	return models.FromDomainReservation(res), nil
}

// Delete удаляет резервирование. Административная операция без проверок
// машины состояний, доступна только администратору.
func (s *Service) Delete(ctx context.Context, reservationID int64, requester models.Requester) error {
	s.logger.Info("Delete: reservation id=%d by %s", reservationID, requester.Email)

	if !requester.IsAdmin() {
		s.logger.Warn("Delete: access denied for %s (role=%s)", requester.Email, requester.Role)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, reservationID); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: reservation id=%d deleted", reservationID)
	return nil
}

// Вспомогательные методы

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// checkReadAccess проверяет право на чтение резервирования:
// владелец-студент, менеджер лаборатории или администратор
func (s *Service) checkReadAccess(ctx context.Context, res *domain.Reservation, requester models.Requester) error {
	if requester.IsAdmin() {
		return nil
	}
	if res.HasStudent() && *res.StudentEmail == requester.Email {
		return nil
	}
	if err := s.checkManagerAccess(ctx, res.LabID, requester); err != nil {
		return ErrAccessDenied
	}
	return nil
}

// checkManagerAccess проверяет, что запрашивающий — менеджер лаборатории
// или администратор
func (s *Service) checkManagerAccess(ctx context.Context, labID int64, requester models.Requester) error {
	if requester.IsAdmin() {
		return nil
	}
	if requester.Role != domain.RoleManager {
		return ErrAccessDenied
	}

	lab, err := s.labRepo.GetByID(ctx, labID)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("checkManagerAccess: lab id=%d not found", labID)
			return ErrLabNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get lab id=%d: %v", labID, err)
		return fmt.Errorf("%w: failed to get laboratory: %v", ErrInternal, err)
	}

	if !lab.IsManager(requester.Email) {
		return ErrAccessDenied
	}
	return nil
}
