package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	reservationRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/reservation"
	"github.com/ekarahan/LCR-ReservationService/internal/service/reservations/models"
	"github.com/ekarahan/LCR-ReservationService/pkg/ptr"
)

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

// Моки

type mockReservationRepo struct {
	reservations map[int64]*domain.Reservation
	updated      map[int64]domain.ReservationStatus
	deleted      []int64
	listFunc     func(filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

func newMockReservationRepo(reservations ...*domain.Reservation) *mockReservationRepo {
	m := &mockReservationRepo{
		reservations: make(map[int64]*domain.Reservation),
		updated:      make(map[int64]domain.ReservationStatus),
	}
	for _, r := range reservations {
		m.reservations[r.ID] = r
	}
	return m
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := m.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (m *mockReservationRepo) GetWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if m.listFunc != nil {
		return m.listFunc(filter)
	}
	return nil, nil
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := m.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	m.updated[id] = status
	return nil
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockLabRepo struct {
	labs map[int64]*domain.Laboratory
}

func (m *mockLabRepo) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	lab, ok := m.labs[id]
	if !ok {
		return nil, labRepo.ErrLabNotFound
	}
	return lab, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Хелперы

func testReservation(id int64, email string, status domain.ReservationStatus) *domain.Reservation {
	interval, err := domain.NewTimeInterval(testDate, "10:00", "11:00")
	if err != nil {
		panic(err)
	}
	return &domain.Reservation{
		ID:           id,
		StudentEmail: ptr.Ptr(email),
		ComputerID:   7,
		LabID:        3,
		Interval:     interval,
		Status:       status,
	}
}

func newTestService(resRepo *mockReservationRepo, labs map[int64]*domain.Laboratory) *Service {
	return NewService(resRepo, &mockLabRepo{labs: labs}, nopLogger{})
}

func managedLab() map[int64]*domain.Laboratory {
	return map[int64]*domain.Laboratory{
		3: {ID: 3, Name: "Physics Lab", ManagerEmails: []string{"mia@university.edu"}},
	}
}

var (
	student  = models.Requester{Email: "alice@university.edu", Role: domain.RoleStudent}
	stranger = models.Requester{Email: "eve@university.edu", Role: domain.RoleStudent}
	manager  = models.Requester{Email: "mia@university.edu", Role: domain.RoleManager}
	outsider = models.Requester{Email: "other@university.edu", Role: domain.RoleManager}
	admin    = models.Requester{Email: "root@university.edu", Role: domain.RoleAdmin}
)

// Тесты

func TestGetByID_Access(t *testing.T) {
	repo := newMockReservationRepo(testReservation(1, "alice@university.edu", domain.StatusPending))
	svc := newTestService(repo, managedLab())

	tests := []struct {
		name      string
		requester models.Requester
		wantErr   error
	}{
		{"owner can read", student, nil},
		{"lab manager can read", manager, nil},
		{"admin can read", admin, nil},
		{"other student denied", stranger, ErrAccessDenied},
		{"manager of another lab denied", outsider, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.GetByID(context.Background(), 1, tt.requester)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), res.ID)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newMockReservationRepo(), managedLab())

	_, err := svc.GetByID(context.Background(), 99, admin)

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetStudentReservations_SelfOrPrivileged(t *testing.T) {
	repo := newMockReservationRepo()
	repo.listFunc = func(filter domain.ReservationFilter) ([]*domain.Reservation, error) {
		require.NotNil(t, filter.StudentEmail)
		return []*domain.Reservation{testReservation(1, *filter.StudentEmail, domain.StatusApproved)}, nil
	}
	svc := newTestService(repo, managedLab())

	t.Run("student reads own history", func(t *testing.T) {
		resp, err := svc.GetStudentReservations(context.Background(), &models.GetStudentReservationsRequest{
			Requester:    student,
			StudentEmail: student.Email,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("student cannot read another's history", func(t *testing.T) {
		_, err := svc.GetStudentReservations(context.Background(), &models.GetStudentReservationsRequest{
			Requester:    stranger,
			StudentEmail: student.Email,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("manager reads any history", func(t *testing.T) {
		_, err := svc.GetStudentReservations(context.Background(), &models.GetStudentReservationsRequest{
			Requester:    manager,
			StudentEmail: student.Email,
		})

		assert.NoError(t, err)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetStudentReservations(context.Background(), &models.GetStudentReservationsRequest{
			Requester:    student,
			StudentEmail: student.Email,
			Status:       ptr.Ptr("cancelled"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetLabReservations_ManagerGate(t *testing.T) {
	repo := newMockReservationRepo()
	repo.listFunc = func(filter domain.ReservationFilter) ([]*domain.Reservation, error) {
		return nil, nil
	}
	svc := newTestService(repo, managedLab())

	t.Run("lab manager allowed", func(t *testing.T) {
		_, err := svc.GetLabReservations(context.Background(), &models.GetLabReservationsRequest{
			Requester: manager,
			LabID:     3,
		})

		assert.NoError(t, err)
	})

	t.Run("student denied", func(t *testing.T) {
		_, err := svc.GetLabReservations(context.Background(), &models.GetLabReservationsRequest{
			Requester: student,
			LabID:     3,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("manager of another lab denied", func(t *testing.T) {
		_, err := svc.GetLabReservations(context.Background(), &models.GetLabReservationsRequest{
			Requester: outsider,
			LabID:     3,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown lab", func(t *testing.T) {
		_, err := svc.GetLabReservations(context.Background(), &models.GetLabReservationsRequest{
			Requester: manager,
			LabID:     999,
		})

		assert.ErrorIs(t, err, ErrLabNotFound)
	})
}

func TestUpdateStatus_StateMachine(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.ReservationStatus
		to        string
		requester models.Requester
		wantErr   error
	}{
		{"manager approves pending", domain.StatusPending, "approved", manager, nil},
		{"manager rejects pending", domain.StatusPending, "rejected", manager, nil},
		{"admin overrides approved", domain.StatusApproved, "rejected", admin, nil},
		{"manager cannot override approved", domain.StatusApproved, "rejected", manager, ErrAccessDenied},
		{"rejected is terminal", domain.StatusRejected, "approved", admin, ErrInvalidTransition},
		{"approved cannot go back to pending", domain.StatusApproved, "pending", admin, ErrInvalidTransition},
		{"unknown status", domain.StatusPending, "cancelled", manager, ErrInvalidStatus},
		{"student cannot approve", domain.StatusPending, "approved", student, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockReservationRepo(testReservation(1, "alice@university.edu", tt.from))
			svc := newTestService(repo, managedLab())

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
				Requester: tt.requester,
				Status:    tt.to,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.ReservationStatus(tt.to), repo.updated[1])
		})
	}
}

func TestDelete_AdminOnly(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		repo := newMockReservationRepo(testReservation(1, "alice@university.edu", domain.StatusApproved))
		svc := newTestService(repo, managedLab())

		err := svc.Delete(context.Background(), 1, admin)

		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("manager denied", func(t *testing.T) {
		repo := newMockReservationRepo(testReservation(1, "alice@university.edu", domain.StatusApproved))
		svc := newTestService(repo, managedLab())

		err := svc.Delete(context.Background(), 1, manager)

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deleted)
	})

	t.Run("missing reservation", func(t *testing.T) {
		svc := newTestService(newMockReservationRepo(), managedLab())

		err := svc.Delete(context.Background(), 42, admin)

		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
