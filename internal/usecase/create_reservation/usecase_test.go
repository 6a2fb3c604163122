package create_reservation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarahan/LCR-ReservationService/internal/admission"
	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	reservationRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/reservation"
	studentRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/student"
	"github.com/ekarahan/LCR-ReservationService/internal/integrations/accountservice"
)

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

// Моки

type mockReservationRepo struct {
	createFunc        func(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	getWithFilterFunc func(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, res)
	}
	created := *res
	created.ID = 1
	return &created, nil
}

func (m *mockReservationRepo) GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if m.getWithFilterFunc != nil {
		return m.getWithFilterFunc(ctx, filter)
	}
	return nil, nil
}

type mockLabRepo struct {
	computer *domain.Computer
	lab      *domain.Laboratory
}

func (m *mockLabRepo) GetComputerByID(ctx context.Context, id int64) (*domain.Computer, error) {
	if m.computer == nil {
		return nil, fmt.Errorf("computer not found")
	}
	return m.computer, nil
}

func (m *mockLabRepo) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	if m.lab == nil {
		return nil, fmt.Errorf("lab not found")
	}
	return m.lab, nil
}

type mockStudentRepo struct {
	known   map[string]*domain.Student
	created []*domain.Student
}

func newMockStudentRepo(known ...*domain.Student) *mockStudentRepo {
	m := &mockStudentRepo{known: make(map[string]*domain.Student)}
	for _, s := range known {
		m.known[s.Email] = s
	}
	return m
}

func (m *mockStudentRepo) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	s, ok := m.known[email]
	if !ok {
		return nil, studentRepo.ErrStudentNotFound
	}
	return s, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	m.known[s.Email] = s
	m.created = append(m.created, s)
	return s, nil
}

type mockAccountClient struct {
	account *accountservice.Account
	err     error
}

func (m *mockAccountClient) GetAccount(ctx context.Context, email string) (*accountservice.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.account, nil
}

// Транзакционный менеджер без транзакции: просто выполняет функцию
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Хелперы

func testLab() *domain.Laboratory {
	return &domain.Laboratory{ID: 3, Name: "Chemistry Lab", Capacity: 12}
}

func studentAccount() *accountservice.Account {
	return &accountservice.Account{
		Email:     "alice@university.edu",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      "student",
		Active:    true,
	}
}

func studentRequest() *Request {
	return &Request{
		RequesterEmail: "alice@university.edu",
		RequesterRole:  domain.RoleStudent,
		ComputerID:     7,
		Date:           testDate,
		StartTime:      "10:00",
		EndTime:        "11:30",
	}
}

func newTestUseCase(resRepo *mockReservationRepo, labRepo *mockLabRepo, accounts *mockAccountClient, tx *passthroughTxManager) *UseCase {
	return NewUseCase(resRepo, labRepo, newMockStudentRepo(), accounts, tx, nopLogger{})
}

// Тесты

func TestExecute_StudentReservationIsPending(t *testing.T) {
	resRepo := &mockReservationRepo{}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: studentAccount()}
	tx := &passthroughTxManager{}

	uc := newTestUseCase(resRepo, labRepo, accounts, tx)

	resp, err := uc.Execute(context.Background(), studentRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(3), resp.LabID)
	assert.Equal(t, 90, resp.DurationMinutes)
	require.NotNil(t, resp.StudentEmail)
	assert.Equal(t, "alice@university.edu", *resp.StudentEmail)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_ManagerDirectBookingIsApproved(t *testing.T) {
	resRepo := &mockReservationRepo{}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: &accountservice.Account{
		Email: "manager@university.edu", Role: "manager", Active: true,
	}}

	uc := newTestUseCase(resRepo, labRepo, accounts, &passthroughTxManager{})

	req := studentRequest()
	req.RequesterEmail = "manager@university.edu"
	req.RequesterRole = domain.RoleManager

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Nil(t, resp.StudentEmail)
}

func TestExecute_AdmissionRejectionPassesThrough(t *testing.T) {
	conflictInterval, err := domain.NewTimeInterval(testDate, "10:30", "11:00")
	require.NoError(t, err)

	resRepo := &mockReservationRepo{
		getWithFilterFunc: func(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
			if filter.ComputerID != nil {
				return []*domain.Reservation{{
					ID:         42,
					ComputerID: 7,
					LabID:      3,
					Interval:   conflictInterval,
					Status:     domain.StatusApproved,
				}}, nil
			}
			return nil, nil
		},
	}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: studentAccount()}

	uc := newTestUseCase(resRepo, labRepo, accounts, &passthroughTxManager{})

	_, err = uc.Execute(context.Background(), studentRequest())

	assert.ErrorIs(t, err, admission.ErrSlotUnavailable)
}

// Проигранная гонка: пре-проверка прошла, но запись упала на ограничении БД.
// Ошибка должна уйти наружу тем же каналом, что и отказ пре-проверки.
func TestExecute_LostRaceMapsToSlotUnavailable(t *testing.T) {
	resRepo := &mockReservationRepo{
		createFunc: func(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
			return nil, fmt.Errorf("%w: exclusion constraint", reservationRepo.ErrTimeConflict)
		},
	}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: studentAccount()}

	uc := newTestUseCase(resRepo, labRepo, accounts, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), studentRequest())

	assert.ErrorIs(t, err, admission.ErrSlotUnavailable)
}

func TestExecute_AccountChecks(t *testing.T) {
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}

	t.Run("account not found", func(t *testing.T) {
		accounts := &mockAccountClient{err: accountservice.ErrAccountNotFound}
		uc := newTestUseCase(&mockReservationRepo{}, labRepo, accounts, &passthroughTxManager{})

		_, err := uc.Execute(context.Background(), studentRequest())

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("inactive account", func(t *testing.T) {
		accounts := &mockAccountClient{err: accountservice.ErrAccountInactive}
		uc := newTestUseCase(&mockReservationRepo{}, labRepo, accounts, &passthroughTxManager{})

		_, err := uc.Execute(context.Background(), studentRequest())

		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("claimed role does not match directory", func(t *testing.T) {
		accounts := &mockAccountClient{account: studentAccount()}
		uc := newTestUseCase(&mockReservationRepo{}, labRepo, accounts, &passthroughTxManager{})

		req := studentRequest()
		req.RequesterRole = domain.RoleManager

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrRoleMismatch)
	})
}

func TestExecute_ComputerNotFound(t *testing.T) {
	accounts := &mockAccountClient{account: studentAccount()}
	uc := newTestUseCase(&mockReservationRepo{}, &mockLabRepo{}, accounts, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), studentRequest())

	assert.ErrorIs(t, err, ErrComputerNotFound)
}

func TestExecute_Validation(t *testing.T) {
	accounts := &mockAccountClient{account: studentAccount()}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	uc := newTestUseCase(&mockReservationRepo{}, labRepo, accounts, &passthroughTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty email", func(r *Request) { r.RequesterEmail = "" }},
		{"unknown role", func(r *Request) { r.RequesterRole = "professor" }},
		{"zero computer", func(r *Request) { r.ComputerID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"missing start", func(r *Request) { r.StartTime = "" }},
		{"malformed end", func(r *Request) { r.EndTime = "25:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := studentRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// end <= start — не ошибка формата, а отказ конвейера допуска
func TestExecute_BackwardsIntervalRejectedByAdmission(t *testing.T) {
	accounts := &mockAccountClient{account: studentAccount()}
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	uc := newTestUseCase(&mockReservationRepo{}, labRepo, accounts, &passthroughTxManager{})

	req := studentRequest()
	req.StartTime = "11:30"
	req.EndTime = "10:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, admission.ErrInvalidInterval)
}

// Первая заявка студента регистрирует его в локальном реестре,
// повторная — нет
func TestExecute_RegistersStudentOnFirstReservation(t *testing.T) {
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: studentAccount()}
	students := newMockStudentRepo()

	uc := NewUseCase(&mockReservationRepo{}, labRepo, students, accounts, &passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), studentRequest())
	require.NoError(t, err)

	require.Len(t, students.created, 1)
	assert.Equal(t, "alice@university.edu", students.created[0].Email)
	assert.Equal(t, "Alice", students.created[0].FirstName)

	_, err = uc.Execute(context.Background(), studentRequest())
	require.NoError(t, err)
	assert.Len(t, students.created, 1)
}

// Прямые бронирования менеджера реестр студентов не трогают
func TestExecute_ManagerDoesNotTouchStudentRoster(t *testing.T) {
	labRepo := &mockLabRepo{computer: &domain.Computer{ID: 7, LabID: 3}, lab: testLab()}
	accounts := &mockAccountClient{account: &accountservice.Account{
		Email: "manager@university.edu", Role: "manager", Active: true,
	}}
	students := newMockStudentRepo()

	uc := NewUseCase(&mockReservationRepo{}, labRepo, students, accounts, &passthroughTxManager{}, nopLogger{})

	req := studentRequest()
	req.RequesterEmail = "manager@university.edu"
	req.RequesterRole = domain.RoleManager

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, students.created)
}
