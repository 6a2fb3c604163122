package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekarahan/LCR-ReservationService/internal/admission"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	accountClient "github.com/ekarahan/LCR-ReservationService/internal/integrations/accountservice"
	reservationRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/reservation"
	studentRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/student"
	"github.com/ekarahan/LCR-ReservationService/pkg/ptr"
)

// UseCase use case для создания резервирования
type UseCase struct {
	reservationRepo ReservationRepository
	labRepo         LabRepository
	studentRepo     StudentRepository
	accountClient   AccountServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	labRepo LabRepository,
	studentRepo StudentRepository,
	accountClient AccountServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		studentRepo:     studentRepo,
		accountClient:   accountClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания резервирования.
// Снимок существующих резервирований читается и проверяется конвейером
// допуска внутри сериализуемой транзакции, так что две конкурентные заявки
// на один слот не могут записаться обе. EXCLUDE-ограничение в БД страхует
// тот же инвариант на этапе записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%s role=%s computer=%d date=%s interval=%s-%s",
		req.RequesterEmail, req.RequesterRole, req.ComputerID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем запрашивающего по справочнику аккаунтов
	account, err := uc.accountClient.GetAccount(ctx, req.RequesterEmail)
	if err != nil {
		if errors.Is(err, accountClient.ErrAccountNotFound) || errors.Is(err, accountClient.ErrAccountInactive) {
			uc.logger.Warn("CreateReservation: account %s rejected: %v", req.RequesterEmail, err)
			return nil, ErrAccountNotFound
		}
		uc.logger.Error("CreateReservation: failed to get account %s: %v", req.RequesterEmail, err)
		return nil, fmt.Errorf("%w: failed to get account: %v", ErrInternal, err)
	}

	// Заявленная роль должна совпадать со справочником: роль приходит явно
	// с границы API и никогда не выводится из данных
	if account.Role != string(req.RequesterRole) {
		uc.logger.Warn("CreateReservation: role mismatch for %s: claimed=%s, directory=%s",
			req.RequesterEmail, req.RequesterRole, account.Role)
		return nil, ErrRoleMismatch
	}

	// 3. Получаем компьютер и его лабораторию
	computer, err := uc.labRepo.GetComputerByID(ctx, req.ComputerID)
	if err != nil {
		uc.logger.Warn("CreateReservation: computer id=%d not found: %v", req.ComputerID, err)
		return nil, ErrComputerNotFound
	}

	lab, err := uc.labRepo.GetByID(ctx, computer.LabID)
	if err != nil {
		uc.logger.Error("CreateReservation: lab id=%d for computer id=%d: %v", computer.LabID, computer.ID, err)
		return nil, fmt.Errorf("%w: failed to get laboratory: %v", ErrInternal, err)
	}

	// Студенческие заявки привязаны к студенту; прямые бронирования
	// менеджера/администратора студента не имеют
	var studentEmail *string
	if req.RequesterRole == domain.RoleStudent {
		studentEmail = ptr.Ptr(req.RequesterEmail)

		// Резервирование ссылается на локальный реестр студентов:
		// при первой заявке строка создаётся из справочника аккаунтов
		if err := uc.ensureStudent(ctx, account); err != nil {
			return nil, err
		}
	}

	admissionReq := admission.Request{
		Requester: admission.Requester{
			Role:         req.RequesterRole,
			StudentEmail: studentEmail,
		},
		Computer:  *computer,
		Lab:       *lab,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	var result *domain.Reservation

	// 4. Снимок, допуск и запись — в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Снимок по компьютеру и дате (блокируется FOR UPDATE)
		computerSnap, err := uc.reservationRepo.GetWithFilter(txCtx, domain.ReservationFilter{
			ComputerID:   ptr.Ptr(computer.ID),
			Date:         ptr.Ptr(req.Date),
			BlockingOnly: true,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get computer snapshot: %v", err)
			return fmt.Errorf("%w: failed to get computer reservations: %v", ErrInternal, err)
		}

		// 4.2. Снимок по студенту и дате — только для студенческих заявок
		var studentSnap []*domain.Reservation
		if studentEmail != nil {
			studentSnap, err = uc.reservationRepo.GetWithFilter(txCtx, domain.ReservationFilter{
				StudentEmail: studentEmail,
				Date:         ptr.Ptr(req.Date),
				BlockingOnly: true,
			})
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get student snapshot: %v", err)
				return fmt.Errorf("%w: failed to get student reservations: %v", ErrInternal, err)
			}
		}

		// 4.3. Конвейер допуска
		reservation, err := admission.Attempt(admissionReq, admission.Snapshot{
			ComputerReservations: computerSnap,
			StudentReservations:  studentSnap,
		})
		if err != nil {
			uc.logger.Warn("CreateReservation: admission rejected: %v", err)
			return err
		}

		// 4.4. Сохраняем. Проигранная гонка на ограничении БД приходит как
		// ErrTimeConflict и отдаётся тем же каналом, что и отказ пре-проверки
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrTimeConflict) {
				uc.logger.Warn("CreateReservation: write-time conflict on computer=%d: %v", computer.ID, err)
				return fmt.Errorf("%w: lost concurrent write: %v", admission.ErrSlotUnavailable, err)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d status=%s", result.ID, result.Status)

	return fromDomain(result), nil
}

// ensureStudent гарантирует наличие строки студента в локальном реестре.
// Гонка двух первых заявок разрешается через ErrDuplicateStudent.
func (uc *UseCase) ensureStudent(ctx context.Context, account *accountClient.Account) error {
	_, err := uc.studentRepo.GetByEmail(ctx, account.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, studentRepo.ErrStudentNotFound) {
		uc.logger.Error("CreateReservation: failed to get student %s: %v", account.Email, err)
		return fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	_, err = uc.studentRepo.Create(ctx, &domain.Student{
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	})
	if err != nil && !errors.Is(err, studentRepo.ErrDuplicateStudent) {
		uc.logger.Error("CreateReservation: failed to register student %s: %v", account.Email, err)
		return fmt.Errorf("%w: failed to register student: %v", ErrInternal, err)
	}

	return nil
}
