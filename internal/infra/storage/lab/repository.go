package lab

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
	"github.com/ekarahan/LCR-ReservationService/pkg/types"
)

const pqUniqueViolation = "23505"

// Колонки laboratories вместе с агрегированным списком менеджеров
var labColumns = []string{
	"l.id",
	"l.name",
	"l.capacity",
	"l.operating_start",
	"l.operating_end",
	"l.created_at",
	"l.updated_at",
	"COALESCE(array_agg(m.manager_email) FILTER (WHERE m.manager_email IS NOT NULL), '{}') AS managers",
}

// Repository репозиторий лабораторий и их компьютеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лабораторий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateLab создает лабораторию и назначает менеджеров
func (r *Repository) CreateLab(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("laboratories").
		Columns("name", "capacity", "operating_start", "operating_end").
		Values(lab.Name, lab.Capacity, lab.OperatingStart, lab.OperatingEnd).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateLab - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lab.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: CreateLab - %v", ErrDuplicateLab, err)
		}
		return nil, fmt.Errorf("%w: CreateLab - execute insert: %v", ErrExecQuery, err)
	}

	lab.CreatedAt = createdAt.Time
	lab.UpdatedAt = updatedAt.Time

	for _, email := range lab.ManagerEmails {
		if err := r.AddManager(ctx, lab.ID, email); err != nil {
			return nil, err
		}
	}

	return lab, nil
}

// GetByID получает лабораторию по ID вместе со списком менеджеров
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := labSelect().
		Where(squirrel.Eq{"l.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	lab, err := scanLab(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLabNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan laboratory: %v", ErrScanRow, err)
	}

	return lab, nil
}

// List получает все лаборатории
func (r *Repository) List(ctx context.Context) ([]*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := labSelect().
		OrderBy("l.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	labs := make([]*domain.Laboratory, 0)
	for rows.Next() {
		lab, err := scanLab(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan laboratory: %v", ErrScanRow, err)
		}
		labs = append(labs, lab)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return labs, nil
}

// Delete удаляет лабораторию. Компьютеры и их резервирования удаляются
// каскадно ограничениями внешних ключей.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("laboratories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrLabNotFound
	}

	return nil
}

// AddManager назначает менеджера лаборатории (идемпотентно)
func (r *Repository) AddManager(ctx context.Context, labID int64, email string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lab_managers").
		Columns("lab_id", "manager_email").
		Values(labID, email).
		Suffix("ON CONFLICT (lab_id, manager_email) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddManager - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddManager - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// RemoveManager снимает менеджера с лаборатории
func (r *Repository) RemoveManager(ctx context.Context, labID int64, email string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("lab_managers").
		Where(squirrel.Eq{"lab_id": labID, "manager_email": email}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RemoveManager - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RemoveManager - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateComputer добавляет компьютер в лабораторию
func (r *Repository) CreateComputer(ctx context.Context, computer *domain.Computer) (*domain.Computer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("computers").
		Columns("lab_id", "name").
		Values(computer.LabID, computer.Name).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateComputer - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&computer.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateComputer - execute insert: %v", ErrExecQuery, err)
	}

	computer.CreatedAt = createdAt.Time
	computer.UpdatedAt = updatedAt.Time

	return computer, nil
}

// GetComputerByID получает компьютер по ID
func (r *Repository) GetComputerByID(ctx context.Context, id int64) (*domain.Computer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "lab_id", "name", "created_at", "updated_at").
		From("computers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetComputerByID - build select query: %v", ErrBuildQuery, err)
	}

	computer, err := scanComputer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrComputerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetComputerByID - scan computer: %v", ErrScanRow, err)
	}

	return computer, nil
}

// ListComputersByLab получает компьютеры лаборатории
func (r *Repository) ListComputersByLab(ctx context.Context, labID int64) ([]*domain.Computer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "lab_id", "name", "created_at", "updated_at").
		From("computers").
		Where(squirrel.Eq{"lab_id": labID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListComputersByLab - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListComputersByLab - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	computers := make([]*domain.Computer, 0)
	for rows.Next() {
		computer, err := scanComputer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListComputersByLab - scan computer: %v", ErrScanRow, err)
		}
		computers = append(computers, computer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListComputersByLab - rows error: %v", ErrScanRow, err)
	}

	return computers, nil
}

// DeleteComputer удаляет компьютер (и каскадно его резервирования)
func (r *Repository) DeleteComputer(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("computers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteComputer - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteComputer - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteComputer - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrComputerNotFound
	}

	return nil
}

func labSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(labColumns...).
		From("laboratories l").
		LeftJoin("lab_managers m ON m.lab_id = l.id").
		GroupBy("l.id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLab(row rowScanner) (*domain.Laboratory, error) {
	var lab domain.Laboratory
	var operatingStart, operatingEnd sql.NullString
	var createdAt, updatedAt sql.NullTime
	var managers pq.StringArray

	err := row.Scan(
		&lab.ID,
		&lab.Name,
		&lab.Capacity,
		&operatingStart,
		&operatingEnd,
		&createdAt,
		&updatedAt,
		&managers,
	)
	if err != nil {
		return nil, err
	}

	if lab.OperatingStart, err = toTimeString(operatingStart); err != nil {
		return nil, err
	}
	if lab.OperatingEnd, err = toTimeString(operatingEnd); err != nil {
		return nil, err
	}

	lab.CreatedAt = createdAt.Time
	lab.UpdatedAt = updatedAt.Time
	lab.ManagerEmails = managers

	return &lab, nil
}

// toTimeString converts a nullable "HH:MM:SS" column value to *types.TimeString.
func toTimeString(v sql.NullString) (*types.TimeString, error) {
	if !v.Valid {
		return nil, nil
	}
	var ts types.TimeString
	if err := ts.Scan(v.String); err != nil {
		return nil, err
	}
	return &ts, nil
}

func scanComputer(row rowScanner) (*domain.Computer, error) {
	var computer domain.Computer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&computer.ID,
		&computer.LabID,
		&computer.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	computer.CreatedAt = createdAt.Time
	computer.UpdatedAt = updatedAt.Time

	return &computer, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
