package labs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	labRepo "github.com/ekarahan/LCR-ReservationService/internal/infra/storage/lab"
	"github.com/ekarahan/LCR-ReservationService/internal/service/labs/models"
	"github.com/ekarahan/LCR-ReservationService/pkg/ptr"
)

// Моки

type mockLabRepo struct {
	labs      map[int64]*domain.Laboratory
	computers map[int64]*domain.Computer

	nextID           int64
	deletedLabs      []int64
	deletedComputers []int64
	addedManagers    []string
	removedManagers  []string
	duplicateName    bool
}

func newMockLabRepo(labs ...*domain.Laboratory) *mockLabRepo {
	m := &mockLabRepo{
		labs:      make(map[int64]*domain.Laboratory),
		computers: make(map[int64]*domain.Computer),
		nextID:    100,
	}
	for _, l := range labs {
		m.labs[l.ID] = l
	}
	return m
}

func (m *mockLabRepo) CreateLab(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	if m.duplicateName {
		return nil, labRepo.ErrDuplicateLab
	}
	created := *lab
	m.nextID++
	created.ID = m.nextID
	m.labs[created.ID] = &created
	return &created, nil
}

func (m *mockLabRepo) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	lab, ok := m.labs[id]
	if !ok {
		return nil, labRepo.ErrLabNotFound
	}
	return lab, nil
}

func (m *mockLabRepo) List(ctx context.Context) ([]*domain.Laboratory, error) {
	out := make([]*domain.Laboratory, 0, len(m.labs))
	for _, l := range m.labs {
		out = append(out, l)
	}
	return out, nil
}

func (m *mockLabRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.labs[id]; !ok {
		return labRepo.ErrLabNotFound
	}
	delete(m.labs, id)
	m.deletedLabs = append(m.deletedLabs, id)
	return nil
}

func (m *mockLabRepo) AddManager(ctx context.Context, labID int64, email string) error {
	m.addedManagers = append(m.addedManagers, email)
	return nil
}

func (m *mockLabRepo) RemoveManager(ctx context.Context, labID int64, email string) error {
	m.removedManagers = append(m.removedManagers, email)
	return nil
}

func (m *mockLabRepo) CreateComputer(ctx context.Context, computer *domain.Computer) (*domain.Computer, error) {
	created := *computer
	m.nextID++
	created.ID = m.nextID
	m.computers[created.ID] = &created
	return &created, nil
}

func (m *mockLabRepo) GetComputerByID(ctx context.Context, id int64) (*domain.Computer, error) {
	c, ok := m.computers[id]
	if !ok {
		return nil, labRepo.ErrComputerNotFound
	}
	return c, nil
}

func (m *mockLabRepo) ListComputersByLab(ctx context.Context, labID int64) ([]*domain.Computer, error) {
	out := make([]*domain.Computer, 0)
	for _, c := range m.computers {
		if c.LabID == labID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockLabRepo) DeleteComputer(ctx context.Context, id int64) error {
	if _, ok := m.computers[id]; !ok {
		return labRepo.ErrComputerNotFound
	}
	delete(m.computers, id)
	m.deletedComputers = append(m.deletedComputers, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Хелперы

var (
	admin    = models.Requester{Email: "root@university.edu", Role: domain.RoleAdmin}
	manager  = models.Requester{Email: "bob@university.edu", Role: domain.RoleManager}
	outsider = models.Requester{Email: "eve@university.edu", Role: domain.RoleManager}
	student  = models.Requester{Email: "alice@university.edu", Role: domain.RoleStudent}
)

func physicsLab() *domain.Laboratory {
	return &domain.Laboratory{
		ID:            3,
		Name:          "Physics Lab",
		Capacity:      20,
		ManagerEmails: []string{"bob@university.edu"},
	}
}

func validCreateRequest() *models.CreateLabRequest {
	return &models.CreateLabRequest{
		Requester:      admin,
		Name:           "Chemistry Lab",
		Capacity:       15,
		OperatingStart: ptr.Ptr("09:00"),
		OperatingEnd:   ptr.Ptr("18:00"),
		ManagerEmails:  []string{"bob@university.edu"},
	}
}

// Тесты

func TestCreate_AdminCreatesLab(t *testing.T) {
	repo := newMockLabRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "Chemistry Lab", resp.Name)
	assert.Equal(t, 15, resp.Capacity)
	require.NotNil(t, resp.OperatingStart)
	assert.Equal(t, "09:00", *resp.OperatingStart)
}

func TestCreate_NonAdminDenied(t *testing.T) {
	svc := NewService(newMockLabRepo(), nopLogger{})

	for _, requester := range []models.Requester{manager, student} {
		req := validCreateRequest()
		req.Requester = requester

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied, requester.Email)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.CreateLabRequest)
	}{
		{"empty name", func(r *models.CreateLabRequest) { r.Name = "   " }},
		{"zero capacity", func(r *models.CreateLabRequest) { r.Capacity = 0 }},
		{"capacity over limit", func(r *models.CreateLabRequest) { r.Capacity = domain.MaxLabCapacity + 1 }},
		{"half-open window", func(r *models.CreateLabRequest) { r.OperatingEnd = nil }},
		{"inverted window", func(r *models.CreateLabRequest) {
			r.OperatingStart = ptr.Ptr("18:00")
			r.OperatingEnd = ptr.Ptr("09:00")
		}},
		{"malformed time", func(r *models.CreateLabRequest) { r.OperatingStart = ptr.Ptr("nine am") }},
	}

	svc := NewService(newMockLabRepo(), nopLogger{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo := newMockLabRepo()
	repo.duplicateName = true
	svc := NewService(repo, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrDuplicateLab)
}

func TestGet_ReturnsLabWithComputers(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	repo.computers[7] = &domain.Computer{ID: 7, LabID: 3, Name: "PC-01"}
	repo.computers[8] = &domain.Computer{ID: 8, LabID: 3, Name: "PC-02"}
	repo.computers[9] = &domain.Computer{ID: 9, LabID: 5, Name: "other-lab"}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Get(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Physics Lab", resp.Lab.Name)
	assert.Len(t, resp.Computers, 2)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockLabRepo(), nopLogger{})

	_, err := svc.Get(context.Background(), 404)

	assert.ErrorIs(t, err, ErrLabNotFound)
}

func TestDelete_AdminOnly(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	svc := NewService(repo, nopLogger{})

	err := svc.Delete(context.Background(), 3, manager)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.deletedLabs)

	err = svc.Delete(context.Background(), 3, admin)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deletedLabs)
}

func TestAddComputer_ManagerOfLab(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	svc := NewService(repo, nopLogger{})

	resp, err := svc.AddComputer(context.Background(), &models.AddComputerRequest{
		Requester: manager,
		LabID:     3,
		Name:      "PC-03",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.LabID)
	assert.Equal(t, "PC-03", resp.Name)
}

func TestAddComputer_AccessAndValidation(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	svc := NewService(repo, nopLogger{})

	// Менеджер чужой лаборатории
	_, err := svc.AddComputer(context.Background(), &models.AddComputerRequest{
		Requester: outsider, LabID: 3, Name: "PC-03",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Пустое имя
	_, err = svc.AddComputer(context.Background(), &models.AddComputerRequest{
		Requester: manager, LabID: 3, Name: "  ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Несуществующая лаборатория
	_, err = svc.AddComputer(context.Background(), &models.AddComputerRequest{
		Requester: admin, LabID: 404, Name: "PC-03",
	})
	assert.ErrorIs(t, err, ErrLabNotFound)
}

// Право на удаление определяется лабораторией, которой принадлежит компьютер
func TestRemoveComputer_ResolvesLabFromComputer(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	repo.computers[7] = &domain.Computer{ID: 7, LabID: 3, Name: "PC-01"}
	svc := NewService(repo, nopLogger{})

	err := svc.RemoveComputer(context.Background(), 7, outsider)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.RemoveComputer(context.Background(), 7, manager)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.deletedComputers)
}

func TestRemoveComputer_NotFound(t *testing.T) {
	svc := NewService(newMockLabRepo(), nopLogger{})

	err := svc.RemoveComputer(context.Background(), 404, admin)

	assert.ErrorIs(t, err, ErrComputerNotFound)
}

func TestManagerRoster_AdminOnly(t *testing.T) {
	repo := newMockLabRepo(physicsLab())
	svc := NewService(repo, nopLogger{})

	err := svc.AddManager(context.Background(), 3, "new@university.edu", manager)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.AddManager(context.Background(), 3, "new@university.edu", admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"new@university.edu"}, repo.addedManagers)

	err = svc.RemoveManager(context.Background(), 3, "bob@university.edu", admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@university.edu"}, repo.removedManagers)
}

func TestAddManager_RequiresEmailAndLab(t *testing.T) {
	svc := NewService(newMockLabRepo(physicsLab()), nopLogger{})

	err := svc.AddManager(context.Background(), 3, "", admin)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.AddManager(context.Background(), 404, "new@university.edu", admin)
	assert.ErrorIs(t, err, ErrLabNotFound)
}
