package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ekarahan/LCR-ReservationService/internal/domain"
	"github.com/ekarahan/LCR-ReservationService/pkg/dbmetrics"
	"github.com/ekarahan/LCR-ReservationService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий студентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория студентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись студента
func (r *Repository) Create(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("students").
		Columns("email", "first_name", "last_name").
		Values(student.Email, student.FirstName, student.LastName).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, fmt.Errorf("%w: Create - %v", ErrDuplicateStudent, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	student.CreatedAt = createdAt.Time
	student.UpdatedAt = updatedAt.Time

	return student, nil
}

// GetByEmail получает студента по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("email", "first_name", "last_name", "created_at", "updated_at").
		From("students").
		Where(squirrel.Eq{"email": email}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var student domain.Student
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&student.Email,
		&student.FirstName,
		&student.LastName,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan student: %v", ErrScanRow, err)
	}

	student.CreatedAt = createdAt.Time
	student.UpdatedAt = updatedAt.Time

	return &student, nil
}

// List получает всех студентов
func (r *Repository) List(ctx context.Context) ([]*domain.Student, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("email", "first_name", "last_name", "created_at", "updated_at").
		From("students").
		OrderBy("email ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		var student domain.Student
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&student.Email, &student.FirstName, &student.LastName, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan student: %v", ErrScanRow, err)
		}
		student.CreatedAt = createdAt.Time
		student.UpdatedAt = updatedAt.Time
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return students, nil
}
