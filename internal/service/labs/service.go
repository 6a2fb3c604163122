package labs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

// Service сервис для управления лабораториями и их компьютерами
type Service struct {
	labRepo LabRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса лабораторий
func NewService(labRepo LabRepository, logger Logger) *Service {
	return &Service{
		labRepo: labRepo,
		logger:  logger,
	}
}

// List возвращает все лаборатории. Публичная операция, доступна любой роли.
func (s *Service) List(ctx context.Context) (*models.LabListResponse, error) {
	labs, err := s.labRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLabList(labs), nil
}

// Get возвращает лабораторию вместе со списком её компьютеров
func (s *Service) Get(ctx context.Context, labID int64) (*models.LabDetailResponse, error) {
	lab, err := s.getLab(ctx, labID)
	if err != nil {
		return nil, err
	}

	computers, err := s.labRepo.ListComputersByLab(ctx, labID)
	if err != nil {
		s.logger.Error("Get: failed to list computers for lab id=%d: %v", labID, err)
		return nil, fmt.Errorf("%w: Get - failed to list computers: %v", ErrInternal, err)
	}

	detail := &models.LabDetailResponse{
		Lab:       models.FromDomainLab(lab),
		Computers: make([]*models.ComputerResponse, len(computers)),
	}
	for i, c := range computers {
		detail.Computers[i] = models.FromDomainComputer(c)
	}
	return detail, nil
}

// Create создаёт новую лабораторию. Доступно только администратору.
func (s *Service) Create(ctx context.Context, req *models.CreateLabRequest) (*models.LabResponse, error) {
	s.logger.Info("Create: lab name=%s by %s", req.Name, req.Requester.Email)

	if !req.Requester.IsAdmin() {
		s.logger.Warn("Create: access denied for %s (role=%s)", req.Requester.Email, req.Requester.Role)
		return nil, ErrAccessDenied
	}

	if err := s.validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: invalid request from %s: %v", req.Requester.Email, err)
		return nil, err
	}

	lab, err := req.ToDomainLab()
	if err != nil {
		s.logger.Warn("Create: invalid operating window: %v", err)
		return nil, fmt.Errorf("%w: invalid operating window: %v", ErrInvalidInput, err)
	}

	created, err := s.labRepo.CreateLab(ctx, lab)
	if err != nil {
		if errors.Is(err, labRepo.ErrDuplicateLab) {
			s.logger.Warn("Create: lab name=%s already exists", req.Name)
			return nil, ErrDuplicateLab
		}
		s.logger.Error("Create: repository error for lab name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: lab id=%d created", created.ID)
	return models.FromDomainLab(created), nil
}

// Delete удаляет лабораторию вместе с компьютерами и резервированиями
// (каскад на уровне БД). Доступно только администратору.
func (s *Service) Delete(ctx context.Context, labID int64, requester models.Requester) error {
	s.logger.Info("Delete: lab id=%d by %s", labID, requester.Email)

	if !requester.IsAdmin() {
		s.logger.Warn("Delete: access denied for %s (role=%s)", requester.Email, requester.Role)
		return ErrAccessDenied
	}

	if err := s.labRepo.Delete(ctx, labID); err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("Delete: lab id=%d not found", labID)
			return ErrLabNotFound
		}
		s.logger.Error("Delete: repository error for lab id=%d: %v", labID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: lab id=%d deleted", labID)
	return nil
}

// AddComputer добавляет компьютер в лабораторию. Доступно администратору
// и менеджерам этой лаборатории.
func (s *Service) AddComputer(ctx context.Context, req *models.AddComputerRequest) (*models.ComputerResponse, error) {
	s.logger.Info("AddComputer: lab id=%d name=%s by %s", req.LabID, req.Name, req.Requester.Email)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: computer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxComputerNameLength {
		return nil, fmt.Errorf("%w: computer name exceeds %d characters", ErrInvalidInput, domain.MaxComputerNameLength)
	}

	lab, err := s.getLab(ctx, req.LabID)
	if err != nil {
		return nil, err
	}

	if err := s.checkManageAccess(lab, req.Requester); err != nil {
		s.logger.Warn("AddComputer: access denied for %s to lab id=%d", req.Requester.Email, req.LabID)
		return nil, err
	}

	created, err := s.labRepo.CreateComputer(ctx, &domain.Computer{LabID: req.LabID, Name: name})
	if err != nil {
		s.logger.Error("AddComputer: repository error for lab id=%d: %v", req.LabID, err)
		return nil, fmt.Errorf("%w: AddComputer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddComputer: computer id=%d created in lab id=%d", created.ID, req.LabID)
	return models.FromDomainComputer(created), nil
}

// RemoveComputer удаляет компьютер из лаборатории. Доступно администратору
// и менеджерам лаборатории, которой принадлежит компьютер.
func (s *Service) RemoveComputer(ctx context.Context, computerID int64, requester models.Requester) error {
	s.logger.Info("RemoveComputer: computer id=%d by %s", computerID, requester.Email)

	computer, err := s.labRepo.GetComputerByID(ctx, computerID)
	if err != nil {
		if errors.Is(err, labRepo.ErrComputerNotFound) {
			s.logger.Warn("RemoveComputer: computer id=%d not found", computerID)
			return ErrComputerNotFound
		}
		s.logger.Error("RemoveComputer: failed to get computer id=%d: %v", computerID, err)
		return fmt.Errorf("%w: RemoveComputer - repository error: %v", ErrInternal, err)
	}

	lab, err := s.getLab(ctx, computer.LabID)
	if err != nil {
		return err
	}

	if err := s.checkManageAccess(lab, requester); err != nil {
		s.logger.Warn("RemoveComputer: access denied for %s to computer id=%d", requester.Email, computerID)
		return err
	}

	if err := s.labRepo.DeleteComputer(ctx, computerID); err != nil {
		if errors.Is(err, labRepo.ErrComputerNotFound) {
			return ErrComputerNotFound
		}
		s.logger.Error("RemoveComputer: repository error for computer id=%d: %v", computerID, err)
		return fmt.Errorf("%w: RemoveComputer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveComputer: computer id=%d deleted", computerID)
	return nil
}

// AddManager добавляет менеджера в лабораторию. Доступно только администратору.
func (s *Service) AddManager(ctx context.Context, labID int64, email string, requester models.Requester) error {
	s.logger.Info("AddManager: lab id=%d email=%s by %s", labID, email, requester.Email)

	if !requester.IsAdmin() {
		s.logger.Warn("AddManager: access denied for %s (role=%s)", requester.Email, requester.Role)
		return ErrAccessDenied
	}
	if email == "" {
		return fmt.Errorf("%w: manager email is required", ErrInvalidInput)
	}

	if _, err := s.getLab(ctx, labID); err != nil {
		return err
	}

	if err := s.labRepo.AddManager(ctx, labID, email); err != nil {
		s.logger.Error("AddManager: repository error for lab id=%d: %v", labID, err)
		return fmt.Errorf("%w: AddManager - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddManager: %s added to lab id=%d", email, labID)
	return nil
}

// RemoveManager убирает менеджера из лаборатории. Доступно только администратору.
func (s *Service) RemoveManager(ctx context.Context, labID int64, email string, requester models.Requester) error {
	s.logger.Info("RemoveManager: lab id=%d email=%s by %s", labID, email, requester.Email)

	if !requester.IsAdmin() {
		s.logger.Warn("RemoveManager: access denied for %s (role=%s)", requester.Email, requester.Role)
		return ErrAccessDenied
	}

	if _, err := s.getLab(ctx, labID); err != nil {
		return err
	}

	if err := s.labRepo.RemoveManager(ctx, labID, email); err != nil {
		s.logger.Error("RemoveManager: repository error for lab id=%d: %v", labID, err)
		return fmt.Errorf("%w: RemoveManager - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveManager: %s removed from lab id=%d", email, labID)
	return nil
}

// Вспомогательные методы

func (s *Service) getLab(ctx context.Context, labID int64) (*domain.Laboratory, error) {
	lab, err := s.labRepo.GetByID(ctx, labID)
	if err != nil {
		if errors.Is(err, labRepo.ErrLabNotFound) {
			s.logger.Warn("lab id=%d not found", labID)
			return nil, ErrLabNotFound
		}
		s.logger.Error("failed to get lab id=%d: %v", labID, err)
		return nil, fmt.Errorf("%w: failed to get laboratory: %v", ErrInternal, err)
	}
	return lab, nil
}

// checkManageAccess проверяет право на изменение состава лаборатории:
// администратор или менеджер этой лаборатории
func (s *Service) checkManageAccess(lab *domain.Laboratory, requester models.Requester) error {
	if requester.IsAdmin() {
		return nil
	}
	if requester.Role == domain.RoleManager && lab.IsManager(requester.Email) {
		return nil
	}
	return ErrAccessDenied
}

func (s *Service) validateCreateRequest(req *models.CreateLabRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: laboratory name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxLabNameLength {
		return fmt.Errorf("%w: laboratory name exceeds %d characters", ErrInvalidInput, domain.MaxLabNameLength)
	}
	req.Name = name

	if req.Capacity < domain.MinLabCapacity || req.Capacity > domain.MaxLabCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinLabCapacity, domain.MaxLabCapacity)
	}

	// Рабочее окно задаётся либо целиком, либо не задаётся вовсе
	if (req.OperatingStart == nil) != (req.OperatingEnd == nil) {
		return fmt.Errorf("%w: operating window requires both start and end", ErrInvalidInput)
	}
	if req.OperatingStart != nil {
		start, err := types.NewTimeStringFromString(*req.OperatingStart)
		if err != nil {
			return fmt.Errorf("%w: invalid operating start: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.OperatingEnd)
		if err != nil {
			return fmt.Errorf("%w: invalid operating end: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return fmt.Errorf("%w: operating start must be before operating end", ErrInvalidInput)
		}
	}

	return nil
}
