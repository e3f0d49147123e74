package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/models"
)

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Task, error)
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskRepo struct {
	db DB
}

func NewTaskRepository(db DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, t *models.Task) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tasks (
            id, manager_id, property_id, title, description,
            status, priority, due_date, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
    `,
		t.ID,
		t.ManagerID,
		t.PropertyID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
	)
	return err
}

func (r *taskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	row := r.db.QueryRow(ctx, baseSelectTask()+" WHERE id=$1", id)
	return scanTask(row)
}

func (r *taskRepo) ListByManagerID(ctx context.Context, managerID uuid.UUID) ([]*models.Task, error) {
	rows, err := r.db.Query(ctx, baseSelectTask()+" WHERE manager_id=$1 ORDER BY created_at DESC", managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *taskRepo) Update(ctx context.Context, t *models.Task) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE tasks SET
            title=$1, description=$2, status=$3, priority=$4, due_date=$5,
            updated_at=NOW()
        WHERE id=$6
    `,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectTask() string {
	return `
        SELECT
            id, manager_id, property_id, title, description,
            status, priority, due_date, created_at, updated_at
        FROM tasks
    `
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.ManagerID,
		&t.PropertyID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
