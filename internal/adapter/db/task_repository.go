package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
)

const taskColumns = `id, task_list_id, name, description, status, created_by, completed_by, completed_on, created_at, updated_at`

const prefixedTaskColumns = `t.id, t.task_list_id, t.name, t.description, t.status, t.created_by, t.completed_by, t.completed_on, t.created_at, t.updated_at`

// repository implements ports.Tx on top of a single sqlx transaction.
type repository struct {
	tx      *sqlx.Tx
	dialect dialect
	locking bool
}

var _ ports.Tx = (*repository)(nil)

type taskRow struct {
	ID          uint64         `db:"id"`
	TaskListID  uint64         `db:"task_list_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	CreatedBy   sql.NullInt64  `db:"created_by"`
	CompletedBy sql.NullInt64  `db:"completed_by"`
	CompletedOn sql.NullTime   `db:"completed_on"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *repository) LocateTask(ctx context.Context, id uint64) (uint64, error) {
	var taskListID uint64
	err := r.tx.GetContext(ctx, &taskListID, r.tx.Rebind("SELECT task_list_id FROM tasks WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrTaskNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("locate task %d: %w", id, err)
	}
	return taskListID, nil
}

func (r *repository) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?" + r.lockSuffix()
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *repository) GetTasksInList(ctx context.Context, taskListID uint64) ([]domain.Task, error) {
	var rows []taskRow
	query := "SELECT " + taskColumns + " FROM tasks WHERE task_list_id = ? ORDER BY id" + r.lockSuffix()
	if err := r.tx.SelectContext(ctx, &rows, r.tx.Rebind(query), taskListID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

// GetTasksInHouse lists the tasks of every task list owned by the house. It
// never locks; listings are served from read-only transactions.
func (r *repository) GetTasksInHouse(ctx context.Context, houseID uint64) ([]domain.Task, error) {
	var rows []taskRow
	query := "SELECT " + prefixedTaskColumns + " FROM tasks t" +
		" INNER JOIN task_lists l ON l.id = t.task_list_id" +
		" WHERE l.house_id = ? ORDER BY t.id"
	if err := r.tx.SelectContext(ctx, &rows, r.tx.Rebind(query), houseID); err != nil {
		return nil, fmt.Errorf("list tasks of house %d: %w", houseID, err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

// SaveTask inserts the task when it has no id yet and updates it otherwise.
// Existence of an updated row is established by the caller's locking read.
func (r *repository) SaveTask(ctx context.Context, task *domain.Task) error {
	if task.ID != 0 {
		_, err := r.tx.ExecContext(ctx, r.tx.Rebind(`
UPDATE tasks
SET task_list_id = ?, name = ?, description = ?, status = ?, completed_by = ?, completed_on = ?, updated_at = ?
WHERE id = ?`),
			task.TaskListID,
			task.Name,
			nullString(task.Description),
			string(task.Status),
			nullID(task.CompletedBy),
			nullTime(task.CompletedOn),
			task.UpdatedAt,
			task.ID,
		)
		return err
	}

	id, err := r.insert(ctx, `
INSERT INTO tasks (task_list_id, name, description, status, created_by, completed_by, completed_on, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.TaskListID,
		task.Name,
		nullString(task.Description),
		string(task.Status),
		nullID(task.CreatedBy),
		nullID(task.CompletedBy),
		nullTime(task.CompletedOn),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return err
	}
	task.ID = id
	return nil
}

func (r *repository) DeleteTask(ctx context.Context, id uint64) error {
	result, err := r.tx.ExecContext(ctx, r.tx.Rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *repository) lockSuffix() string {
	if !r.locking {
		return ""
	}
	return r.dialect.lockSuffix
}

func (r *repository) insert(ctx context.Context, query string, args ...any) (uint64, error) {
	if r.dialect.returningID {
		var id uint64
		if err := r.tx.GetContext(ctx, &id, r.tx.Rebind(query+" RETURNING id"), args...); err != nil {
			return 0, err
		}
		return id, nil
	}

	result, err := r.tx.ExecContext(ctx, r.tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:         row.ID,
		TaskListID: row.TaskListID,
		Name:       row.Name,
		Status:     domain.Status(row.Status),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.CreatedBy.Valid {
		value := uint64(row.CreatedBy.Int64)
		task.CreatedBy = &value
	}

	if row.CompletedBy.Valid {
		value := uint64(row.CompletedBy.Int64)
		task.CompletedBy = &value
	}

	if row.CompletedOn.Valid {
		value := row.CompletedOn.Time
		task.CompletedOn = &value
	}

	return task
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullID(value *uint64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
